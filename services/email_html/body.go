package email_html

import (
	"fmt"
	"html"
	"regexp"

	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/utils"
)

var bodyTagRegex = regexp.MustCompile(`(?i)<body(\s[^>]*)?>`)

// The newline after <pre> is dropped by HTML parsers, so a body that starts
// with a newline keeps it.
const plainTextTemplate = `<html>
<head>
<title>Email</title>
</head>
<body>
%s
<pre>
%s</pre>
</body>
</html>`

// ResolveBody returns the HTML document for the email with the header
// fragment placed at the top of the body, exactly once.
func ResolveBody(email *models.ParsedEmail) string {
	header := HeaderFragment(email)

	if email.HasHTMLBody() {
		return insertAfterBodyTag(*email.BodyHTML, header)
	}

	text := html.EscapeString(utils.GetOrDefault(email.BodyText, ""))
	return fmt.Sprintf(plainTextTemplate, header, text)
}

func insertAfterBodyTag(document, fragment string) string {
	loc := bodyTagRegex.FindStringIndex(document)
	if loc == nil {
		return fragment + document
	}
	return document[:loc[1]] + fragment + document[loc[1]:]
}
