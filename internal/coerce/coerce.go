// Package coerce converts raw, loosely-typed source scalars into the typed
// values of their canonical fields. Failure to parse is never an error: a
// malformed cell coerces to nil so one bad value cannot abort a whole row.
package coerce

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// currencyStripper removes currency symbols and thousands separators before
// decimal parsing.
var currencyStripper = strings.NewReplacer("$", "", ",", "", " ", "")

// Coerce converts raw into the typed representation for the field, or nil if
// the value is missing or unparseable. Returned non-nil values are:
// string (text), decimal.Decimal (currency), float64 (fraction_rate),
// time.Time (date), int (integer) and float64 (confidence_score, which
// defaults to 0.0 instead of nil).
func Coerce(field schema.Field, raw Raw) any {
	if field.Type == schema.TypeConfidence {
		return Confidence(raw)
	}
	if raw.IsNil() {
		return nil
	}
	switch field.Type {
	case schema.TypeText:
		return Text(raw)
	case schema.TypeCurrency:
		return Currency(raw)
	case schema.TypeRate:
		return Rate(raw)
	case schema.TypeDate:
		return Date(raw)
	case schema.TypeInteger:
		return Integer(raw)
	default:
		return Text(raw)
	}
}

// Text trims surrounding whitespace; an empty result is nil.
func Text(raw Raw) any {
	var s string
	switch raw.kind {
	case KindString:
		s = raw.str
	case KindNumber:
		s = strconv.FormatFloat(raw.num, 'f', -1, 64)
	case KindTime:
		s = raw.t.Format("2006-01-02")
	default:
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// Currency strips currency symbols and thousands separators and parses the
// remainder as a fixed-precision decimal. Non-numeric residue is nil.
func Currency(raw Raw) any {
	switch raw.kind {
	case KindNumber:
		return decimal.NewFromFloat(raw.num)
	case KindString:
		s := currencyStripper.Replace(strings.TrimSpace(raw.str))
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		return d
	default:
		return nil
	}
}

// Rate parses an interest rate and stores it as a fraction. A parsed value
// greater than 1 is assumed to be a percentage and divided by 100; values at
// or below 1 are stored as-is.
func Rate(raw Raw) any {
	f, ok := parseFloat(raw)
	if !ok {
		return nil
	}
	if f > 1 {
		f = f / 100
	}
	return f
}

// Date accepts an ISO YYYY-MM-DD string or a native time value, keeping only
// the date component. Any other shape is nil; no other date formats are
// guessed.
func Date(raw Raw) any {
	switch raw.kind {
	case KindTime:
		y, m, d := raw.t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case KindString:
		t, err := time.Parse("2006-01-02", strings.TrimSpace(raw.str))
		if err != nil {
			return nil
		}
		return t
	default:
		return nil
	}
}

// Integer parses through a float-then-truncate path so numeric-looking
// strings with decimal points still coerce.
func Integer(raw Raw) any {
	f, ok := parseFloat(raw)
	if !ok {
		return nil
	}
	return int(f)
}

// Confidence parses a float clamped to [0,1]. A missing or unparsable value
// defaults to 0.0 — absence of confidence must never read as certainty.
func Confidence(raw Raw) float64 {
	f, ok := parseFloat(raw)
	if !ok {
		return 0.0
	}
	if f < 0 {
		return 0.0
	}
	if f > 1 {
		return 1.0
	}
	return f
}

func parseFloat(raw Raw) (float64, bool) {
	switch raw.kind {
	case KindNumber:
		return raw.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
