package email_html

import "regexp"

// matches the charset value of <meta charset=x> and of
// <meta http-equiv="Content-Type" content="text/html; charset=x">
var metaCharsetRegex = regexp.MustCompile(`(?i)(<meta\b[^>]*?\bcharset\s*=\s*["']?)([a-z0-9_.:\-]+)`)

// DeclareUTF8 rewrites charset declarations left over from the original
// message. Parsed bodies are always decoded to UTF-8.
func DeclareUTF8(document string) string {
	return metaCharsetRegex.ReplaceAllString(document, "${1}utf-8")
}
