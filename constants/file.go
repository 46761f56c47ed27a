package constants

import "strings"

// Source formats reported by text acquisition.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// FileTypes holds the source formats the parser understands.
var FileTypes = []string{PDF, IMAGE}

// Media types accepted at the core boundary.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
	MediaTypeWebP = "image/webp"
)

// AllowedExtensions holds the default allowed file extensions for batch ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// NormalizeMediaType lowercases a media type, strips parameters and maps
// common aliases (image/jpg, image/pjpeg) to their canonical form.
func NormalizeMediaType(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case "image/jpg", "image/pjpeg":
		return MediaTypeJPEG
	case "application/x-pdf":
		return MediaTypePDF
	}
	return mt
}

// MapMediaTypeToFormat returns PDF or IMAGE for a supported media type, or ""
// when the type is not accepted. WebP is only accepted when allowWebP is set.
func MapMediaTypeToFormat(mt string, allowWebP bool) string {
	switch NormalizeMediaType(mt) {
	case MediaTypePDF:
		return PDF
	case MediaTypePNG, MediaTypeJPEG:
		return IMAGE
	case MediaTypeWebP:
		if allowWebP {
			return IMAGE
		}
	}
	return ""
}

// MediaTypeForExt maps a file extension to its media type ("" if unknown).
func MediaTypeForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return MediaTypePDF
	case "png":
		return MediaTypePNG
	case "jpg", "jpeg":
		return MediaTypeJPEG
	case "webp":
		return MediaTypeWebP
	}
	return ""
}
