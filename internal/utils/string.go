package utils

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// NormalizeContentID strips whitespace and the angle brackets around a
// Content-ID header value.
func NormalizeContentID(contentID string) string {
	contentID = strings.TrimSpace(contentID)
	contentID = strings.TrimPrefix(contentID, "<")
	contentID = strings.TrimSuffix(contentID, ">")
	return strings.TrimSpace(contentID)
}

// DecodeUTF8 converts raw bytes to a string, replacing invalid sequences with
// U+FFFD instead of failing.
func DecodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return string(bytes.ToValidUTF8(data, []byte("�")))
}

// SanitizeFilename replaces characters that are unsafe in file paths
// and strips control characters to prevent header injection.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = "unnamed"
	}
	return name
}

// TrimNulls removes NUL padding and surrounding whitespace.
func TrimNulls(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
