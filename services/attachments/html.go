package attachments

import (
	"html"
	"strings"
)

const documentStyle = `<style>
    body { font-family: Arial, sans-serif; font-size: 11px; }
    table { border-collapse: collapse; margin-bottom: 16px; }
    td { border: 1px solid #ccc; padding: 4px 6px; vertical-align: top; white-space: pre-wrap; }
    h1 { font-size: 16px; }
    h2 { font-size: 14px; margin-top: 20px; }
    .slide { page-break-after: always; }
    .slide:last-child { page-break-after: auto; }
</style>`

// htmlBuilder accumulates an escaped HTML document.
type htmlBuilder struct {
	sb strings.Builder
}

func newHTMLBuilder(title string) *htmlBuilder {
	b := &htmlBuilder{}
	b.sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.sb.WriteString(html.EscapeString(title))
	b.sb.WriteString("</title>\n")
	b.sb.WriteString(documentStyle)
	b.sb.WriteString("\n</head>\n<body>\n")
	return b
}

func (b *htmlBuilder) element(tag, text string) {
	b.sb.WriteString("<" + tag + ">")
	b.sb.WriteString(html.EscapeString(text))
	b.sb.WriteString("</" + tag + ">\n")
}

func (b *htmlBuilder) raw(s string) {
	b.sb.WriteString(s)
}

func (b *htmlBuilder) table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	b.sb.WriteString("<table>\n")
	for _, row := range rows {
		b.sb.WriteString("<tr>")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.element("td", cell)
		}
		b.sb.WriteString("</tr>\n")
	}
	b.sb.WriteString("</table>\n")
}

func (b *htmlBuilder) String() string {
	return b.sb.String() + "</body>\n</html>\n"
}
