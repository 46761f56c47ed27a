package constants

// DocumentKind selects the keyword catalogue and extractor set for a parse.
type DocumentKind string

// Stable values (used in CLI flags, logs and exports).
const (
	KindContract DocumentKind = "contract"
	KindInvite   DocumentKind = "invite"
)

// ParseKind maps user input to a DocumentKind.
func ParseKind(s string) (DocumentKind, bool) {
	switch DocumentKind(s) {
	case KindContract, "contracts", "hotel":
		return KindContract, true
	case KindInvite, "invites", "invitation":
		return KindInvite, true
	}
	return "", false
}

// Extraction methods recorded in diagnostics.
const (
	MethodPDFText   = "pdf-text"
	MethodPDFOCR    = "pdf-ocr"
	MethodImageOCR  = "image-ocr"
	MethodPlainText = "plain-text"
)
