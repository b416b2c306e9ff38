package util

import (
	"errors"
	"strings"
)

var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameLen = 200

// SanitizeFileName makes an uploaded file name safe to embed in a
// storage key. Traversal patterns are rejected outright; separators and
// control characters are replaced; overlong names are truncated while
// keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}

	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || r == 0:
			b.WriteByte('_')
		case r < 0x20:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "", ErrInvalidFileName
	}

	if len(s) > maxFileNameLen {
		ext := ""
		if idx := strings.LastIndexByte(s, '.'); idx > 0 && len(s)-idx <= 10 {
			ext = s[idx:]
		}
		s = s[:maxFileNameLen-len(ext)] + ext
	}
	return s, nil
}
