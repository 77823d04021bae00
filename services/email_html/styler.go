package email_html

import "regexp"

var headTagRegex = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)

const Stylesheet = `<style>
    body {
        font-family: Arial, sans-serif;
        font-size: 12px;
        margin: 0;
        padding: 10px;
        width: 100%;
        overflow: hidden;
    }
    pre, p {
        white-space: pre-wrap;
        word-wrap: break-word;
        overflow-wrap: break-word;
        max-width: 100%;
    }
    img {
        max-width: 100% !important;
        height: auto !important;
        display: block;
        margin: 0 auto;
    }
    table {
        width: 100% !important;
        max-width: 100% !important;
        border-collapse: collapse;
    }
    td, th {
        border: 1px solid #ddd;
        padding: 8px;
        word-wrap: break-word;
        max-width: 100%;
    }
    .email-header {
        margin-bottom: 20px;
    }
    .email-header p {
        margin: 5px 0;
    }
    * {
        box-sizing: border-box;
        max-width: 100% !important;
    }
</style>`

// InjectStylesheet inserts the print stylesheet right after the first
// opening head tag. Documents without a head tag are returned unchanged.
func InjectStylesheet(document string) string {
	loc := headTagRegex.FindStringIndex(document)
	if loc == nil {
		return document
	}
	return document[:loc[1]] + Stylesheet + document[loc[1]:]
}
