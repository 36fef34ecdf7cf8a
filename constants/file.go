package constants

import "strings"

// AllowedExtensions holds the upload extensions the API accepts, keyed by the
// processing route they take.
var (
	ExcelExtensions = map[string]struct{}{
		"xlsx": {},
		"xls":  {},
	}
	PDFExtensions = map[string]struct{}{
		"pdf": {},
	}
)

// MaxUploadBytes caps upload size (50MB).
const MaxUploadBytes = 50 * 1024 * 1024

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// IsExcelExt reports whether ext (normalized) is an accepted spreadsheet
// extension.
func IsExcelExt(ext string) bool {
	_, ok := ExcelExtensions[NormalizeExt(ext)]
	return ok
}

// IsPDFExt reports whether ext (normalized) is an accepted document extension.
func IsPDFExt(ext string) bool {
	_, ok := PDFExtensions[NormalizeExt(ext)]
	return ok
}
