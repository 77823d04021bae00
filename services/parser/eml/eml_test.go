package eml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/internal/enum"
)

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func TestParse_SinglePartHTML(t *testing.T) {
	raw := crlf(`From: a@x.com
To: b@y.com
Subject: Test
MIME-Version: 1.0
Content-Type: text/html; charset=utf-8

<html><head></head><body><p>Hello</p></body></html>
`)

	email, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, enum.EmailFormatEml, email.Format)
	assert.Equal(t, "a@x.com", email.Sender)
	assert.Equal(t, "b@y.com", email.Recipient)
	assert.Equal(t, "Test", email.Subject)
	require.True(t, email.HasHTMLBody())
	assert.Contains(t, *email.BodyHTML, "<p>Hello</p>")
	assert.Empty(t, email.Attachments)
}

func TestParse_PlainTextOnly(t *testing.T) {
	raw := crlf(`From: =?UTF-8?B?SsO8cmdlbg==?= <j@example.com>
To: b@y.com
Subject: =?UTF-8?Q?Gr=C3=BC=C3=9Fe?=
Content-Type: text/plain; charset=utf-8

line one
  indented <tag>
`)

	email, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Jürgen <j@example.com>", email.Sender)
	assert.Equal(t, "Grüße", email.Subject)
	assert.False(t, email.HasHTMLBody())
	require.NotNil(t, email.BodyText)
	assert.Contains(t, *email.BodyText, "  indented <tag>")
}

func TestParse_AttachmentsInSourceOrder(t *testing.T) {
	raw := crlf(`From: a@x.com
To: b@y.com
Subject: Files
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/related; boundary="inner"

--inner
Content-Type: text/html; charset=utf-8

<html><body><img src="cid:logo@x"></body></html>
--inner
Content-Type: image/png
Content-ID: <logo@x>
Content-Disposition: inline
Content-Transfer-Encoding: base64

iVBORw0KGgo=
--inner--
--outer
Content-Type: application/pdf; name="report.pdf"
Content-Disposition: attachment; filename="report.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjQ=
--outer
Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
Content-Disposition: attachment; filename="numbers.xlsx"
Content-Transfer-Encoding: base64

UEsDBA==
--outer--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, email.Attachments, 3)

	logo := email.Attachments[0]
	assert.Equal(t, "logo@x", logo.CID())
	assert.Equal(t, enum.AttachmentImage, logo.Kind)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), logo.Data)

	assert.Equal(t, "report.pdf", email.Attachments[1].Name)
	assert.Equal(t, enum.AttachmentPdf, email.Attachments[1].Kind)
	assert.Equal(t, []byte("%PDF-1.4"), email.Attachments[1].Data)

	assert.Equal(t, "numbers.xlsx", email.Attachments[2].Name)
	assert.Equal(t, enum.AttachmentConvertibleDocument, email.Attachments[2].Kind)
}

func TestPartNameFallback(t *testing.T) {
	raw := crlf(`From: a@x.com
To: b@y.com
Subject: Inline
MIME-Version: 1.0
Content-Type: multipart/related; boundary="b"

--b
Content-Type: text/html

<img src="cid:chart">
--b
Content-Type: image/jpeg
Content-ID: <chart>
Content-Transfer-Encoding: base64

/9j/4AAQ
--b--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "chart.jpg", email.Attachments[0].Name)
	assert.Equal(t, "image/jpeg", email.Attachments[0].MimeType)
}
