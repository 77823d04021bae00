package email_html

import (
	"fmt"
	"html"

	"github.com/customeros/mailpdf/internal/models"
)

const headerTemplate = `<div class="email-header">
    <p><strong>From:</strong> %s</p>
    <p><strong>To:</strong> %s</p>
    <p><strong>Subject:</strong> %s</p>
</div>`

// HeaderFragment renders the From/To/Subject block shown above the body.
// Field values are HTML-escaped; missing fields render empty.
func HeaderFragment(email *models.ParsedEmail) string {
	return fmt.Sprintf(headerTemplate,
		html.EscapeString(email.Sender),
		html.EscapeString(email.Recipient),
		html.EscapeString(email.Subject),
	)
}
