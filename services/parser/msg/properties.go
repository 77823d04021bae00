package msg

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/customeros/mailpdf/internal/utils"
)

// MAPI property types
const (
	typeString8 uint16 = 0x001E
	typeUnicode uint16 = 0x001F
	typeBinary  uint16 = 0x0102
)

// MAPI property ids
const (
	propSubject                  uint16 = 0x0037
	propSentRepresentingName     uint16 = 0x0042
	propSentRepresentingEmail    uint16 = 0x0065
	propSenderName               uint16 = 0x0C1A
	propSenderEmail              uint16 = 0x0C1F
	propDisplayTo                uint16 = 0x0E04
	propBody                     uint16 = 0x1000
	propRTFCompressed            uint16 = 0x1009
	propBodyHTML                 uint16 = 0x1013
	propDisplayName              uint16 = 0x3001
	propEmailAddress             uint16 = 0x3003
	propAttachData               uint16 = 0x3701
	propAttachFilename           uint16 = 0x3704
	propAttachLongFilename       uint16 = 0x3707
	propAttachMimeTag            uint16 = 0x370E
	propAttachContentID          uint16 = 0x3712
	propSMTPAddress              uint16 = 0x39FE
	propSenderSMTPAddress        uint16 = 0x5D01
	propSentRepresentingSMTPAddr uint16 = 0x5D02
)

const (
	attachStoragePrefix    = "__attach_version1.0_#"
	recipientStoragePrefix = "__recip_version1.0_#"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func propertyStream(id, typ uint16) string {
	return fmt.Sprintf("__substg1.0_%04X%04X", id, typ)
}

// String reads a string property stored as PT_UNICODE or PT_STRING8.
func (s Streams) String(id uint16) (string, bool) {
	if raw, ok := s[propertyStream(id, typeUnicode)]; ok {
		decoded, err := utf16Decoder.NewDecoder().Bytes(raw)
		if err != nil {
			return utils.TrimNulls(utils.DecodeUTF8(raw)), true
		}
		return utils.TrimNulls(string(decoded)), true
	}
	if raw, ok := s[propertyStream(id, typeString8)]; ok {
		return utils.TrimNulls(utils.DecodeUTF8(raw)), true
	}
	return "", false
}

// StringValue is String without the presence flag.
func (s Streams) StringValue(id uint16) string {
	value, _ := s.String(id)
	return value
}

// Binary reads a PT_BINARY property.
func (s Streams) Binary(id uint16) ([]byte, bool) {
	raw, ok := s[propertyStream(id, typeBinary)]
	return raw, ok
}

// Text reads a body-like property that writers store either as a string or
// as binary. Binary content is decoded as UTF-8 with replacement.
func (s Streams) Text(id uint16) (string, bool) {
	if value, ok := s.String(id); ok {
		return value, true
	}
	if raw, ok := s.Binary(id); ok {
		return utils.TrimNulls(utils.DecodeUTF8(raw)), true
	}
	return "", false
}

// FirstString returns the first non-empty string among ids.
func (s Streams) FirstString(ids ...uint16) string {
	for _, id := range ids {
		if value := s.StringValue(id); value != "" {
			return value
		}
	}
	return ""
}

// isExchangeAddress reports whether addr is an X.500 distinguished name
// rather than an SMTP address.
func isExchangeAddress(addr string) bool {
	return strings.HasPrefix(addr, "/")
}

func formatAddress(name, email string) string {
	switch {
	case name != "" && email != "" && !strings.EqualFold(name, email):
		return fmt.Sprintf("%s <%s>", name, email)
	case email != "":
		return email
	default:
		return name
	}
}
