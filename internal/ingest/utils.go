package ingest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/stayparse/constants"
)

// AllowedExt checks if a file extension is in the allowed set (pdf/jpg/jpeg/png/webp).
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

var reInviteName = regexp.MustCompile(`(?i)invit|rsvp|save[-_ ]?the[-_ ]?date|wedding|birthday|party`)

// GuessKind picks the document kind from a file name, falling back to def.
func GuessKind(path string, def constants.DocumentKind) constants.DocumentKind {
	base := filepath.Base(path)
	if reInviteName.MatchString(base) {
		return constants.KindInvite
	}
	if strings.Contains(strings.ToLower(base), "contract") {
		return constants.KindContract
	}
	return def
}
