package msg

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var ansiCodepages = map[int]*charmap.Charmap{
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

// ExtractHTMLFromRTF recovers the original HTML from RTF that Outlook
// encapsulated with \fromhtml (MS-OXRTFEX). It returns "" for any other RTF.
func ExtractHTMLFromRTF(rtf []byte) string {
	if !bytes.Contains(rtf, []byte(`\fromhtml`)) {
		return ""
	}
	x := &rtfHTMLExtractor{src: rtf, codepage: charmap.Windows1252}
	x.run()
	return strings.TrimSpace(x.out.String())
}

type rtfHTMLExtractor struct {
	src      []byte
	pos      int
	out      strings.Builder
	codepage *charmap.Charmap

	// true between \htmlrtf and \htmlrtf0
	suppressed bool
	// text before the first htmltag group is RTF preamble
	seenTag bool
	// characters to skip after a \uN escape
	skip int
}

type controlWord struct {
	name     string
	param    int
	hasParam bool
}

func (x *rtfHTMLExtractor) run() {
	for x.pos < len(x.src) {
		c := x.src[x.pos]
		switch {
		case c == '{':
			x.openGroup()
		case c == '}':
			x.pos++
		case c == '\r' || c == '\n':
			x.pos++
		case c == '\\':
			x.control(false)
		default:
			x.pos++
			x.literal(c, false)
		}
	}
}

func (x *rtfHTMLExtractor) openGroup() {
	rest := x.src[x.pos:]
	switch {
	case bytes.HasPrefix(rest, []byte(`{\*\htmltag`)):
		x.pos += len(`{\*\htmltag`)
		x.digits()
		if x.pos < len(x.src) && x.src[x.pos] == ' ' {
			x.pos++
		}
		x.seenTag = true
		x.tagContent()
	case bytes.HasPrefix(rest, []byte(`{\*`)):
		// other destinations, including \mhtmltag alternates, are not content
		x.skipGroup()
	default:
		x.pos++
	}
}

// tagContent copies an htmltag group up to its closing brace.
func (x *rtfHTMLExtractor) tagContent() {
	depth := 1
	for x.pos < len(x.src) {
		c := x.src[x.pos]
		switch {
		case c == '{':
			depth++
			x.pos++
		case c == '}':
			depth--
			x.pos++
			if depth == 0 {
				return
			}
		case c == '\r' || c == '\n':
			x.pos++
		case c == '\\':
			x.control(true)
		default:
			x.pos++
			x.literal(c, true)
		}
	}
}

func (x *rtfHTMLExtractor) skipGroup() {
	depth := 0
	for x.pos < len(x.src) {
		switch x.src[x.pos] {
		case '\\':
			x.pos++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				x.pos++
				return
			}
		}
		x.pos++
	}
}

func (x *rtfHTMLExtractor) emitting(inTag bool) bool {
	return inTag || (x.seenTag && !x.suppressed)
}

func (x *rtfHTMLExtractor) literal(c byte, inTag bool) {
	if x.skip > 0 {
		x.skip--
		return
	}
	if x.emitting(inTag) {
		x.out.WriteByte(c)
	}
}

func (x *rtfHTMLExtractor) control(inTag bool) {
	x.pos++ // backslash
	if x.pos >= len(x.src) {
		return
	}

	c := x.src[x.pos]
	if !isLetter(c) {
		x.pos++
		x.symbol(c, inTag)
		return
	}

	word := x.word()
	switch word.name {
	case "ansicpg":
		if cm, ok := ansiCodepages[word.param]; ok {
			x.codepage = cm
		}
	case "htmlrtf":
		x.suppressed = !word.hasParam || word.param != 0
	case "par", "line":
		x.write("\r\n", inTag)
	case "tab":
		x.write("\t", inTag)
	case "u":
		r := rune(word.param)
		if r < 0 {
			r += 0x10000
		}
		if utf8.ValidRune(r) {
			x.write(string(r), inTag)
		}
		x.skip = 1
	}
}

func (x *rtfHTMLExtractor) symbol(c byte, inTag bool) {
	switch c {
	case '\\', '{', '}':
		x.literalRune(rune(c), inTag)
	case '~':
		x.write("&nbsp;", inTag)
	case '_':
		x.write("&#8209;", inTag)
	case '\'':
		if x.pos+2 > len(x.src) {
			x.pos = len(x.src)
			return
		}
		b, err := strconv.ParseUint(string(x.src[x.pos:x.pos+2]), 16, 8)
		x.pos += 2
		if err == nil {
			x.literalRune(x.codepage.DecodeByte(byte(b)), inTag)
		}
	}
}

func (x *rtfHTMLExtractor) literalRune(r rune, inTag bool) {
	if x.skip > 0 {
		x.skip--
		return
	}
	x.write(string(r), inTag)
}

func (x *rtfHTMLExtractor) write(s string, inTag bool) {
	if x.emitting(inTag) {
		x.out.WriteString(s)
	}
}

// word reads a control word with its optional numeric parameter and the
// single space delimiter.
func (x *rtfHTMLExtractor) word() controlWord {
	start := x.pos
	for x.pos < len(x.src) && isLetter(x.src[x.pos]) {
		x.pos++
	}
	w := controlWord{name: string(x.src[start:x.pos])}

	numStart := x.pos
	if x.pos < len(x.src) && x.src[x.pos] == '-' {
		x.pos++
	}
	digitsStart := x.pos
	x.digits()
	if x.pos > digitsStart {
		w.param, _ = strconv.Atoi(string(x.src[numStart:x.pos]))
		w.hasParam = true
	} else {
		x.pos = numStart
	}

	if x.pos < len(x.src) && x.src[x.pos] == ' ' {
		x.pos++
	}
	return w
}

func (x *rtfHTMLExtractor) digits() {
	for x.pos < len(x.src) && x.src[x.pos] >= '0' && x.src[x.pos] <= '9' {
		x.pos++
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
