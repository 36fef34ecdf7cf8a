package constants

import "strings"

// DocumentType is the canonical classification for an ingested legal document.
type DocumentType string

// Stable values (store these exact strings in DB).
const (
	DocTypeNote       DocumentType = "note"
	DocTypeMortgage   DocumentType = "mortgage"
	DocTypeAssignment DocumentType = "assignment"
	DocTypeAllonge    DocumentType = "allonge"
	DocTypeUnknown    DocumentType = "unknown"
)

var knownDocumentTypes = map[DocumentType]struct{}{
	DocTypeNote:       {},
	DocTypeMortgage:   {},
	DocTypeAssignment: {},
	DocTypeAllonge:    {},
	DocTypeUnknown:    {},
}

// CanonicalDocumentType lowercases a free-text label and maps it onto the
// known set; anything else is DocTypeUnknown with ok=false.
func CanonicalDocumentType(label string) (DocumentType, bool) {
	dt := DocumentType(strings.ToLower(strings.TrimSpace(label)))
	if _, ok := knownDocumentTypes[dt]; ok {
		return dt, true
	}
	return DocTypeUnknown, false
}
