// Package reconcile maps arbitrary spreadsheet column headers onto canonical
// fields with fuzzy matching. Fields with no acceptable match stay unmapped;
// that is expected for optional or absent columns, not an error.
package reconcile

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// Cutoff is the edit-distance-derived similarity a header must reach against
// a synonym before it is considered a candidate at all.
const Cutoff = 0.6

type claim struct {
	field  string
	header string
	score  float64
}

// Reconcile returns a mapping from canonical field name to the observed
// header that supplies it. Each observed header is claimed by at most one
// field: the highest-scoring one, with equal scores broken lexicographically
// by field name so identical inputs always produce identical mappings.
func Reconcile(s *schema.Schema, observed []string) map[string]string {
	normalized := make([]string, len(observed))
	for i, h := range observed {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	// Best (synonym, header) pair per field across all of its synonyms.
	claims := make([]claim, 0, len(s.Fields()))
	for _, field := range s.Fields() {
		best := claim{field: field.Name}
		for _, syn := range field.Synonyms {
			for i, header := range normalized {
				if header == "" {
					continue
				}
				if levenshtein.Similarity(syn, header, nil) < Cutoff {
					continue
				}
				score := jaccard(syn, header)
				if score > best.score {
					best.header = observed[i]
					best.score = score
				}
			}
		}
		if best.header != "" {
			claims = append(claims, best)
		}
	}

	// A header already claimed by a higher-scoring field is never reassigned
	// to a lower-scoring one; the losing field stays unmapped.
	sort.Slice(claims, func(i, j int) bool {
		if claims[i].score != claims[j].score {
			return claims[i].score > claims[j].score
		}
		return claims[i].field < claims[j].field
	})

	mapping := make(map[string]string, len(claims))
	taken := make(map[string]bool, len(claims))
	for _, c := range claims {
		if taken[c.header] {
			continue
		}
		mapping[c.field] = c.header
		taken[c.header] = true
	}
	return mapping
}

// jaccard scores two strings by the overlap of their character sets.
func jaccard(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	var inter int
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}
