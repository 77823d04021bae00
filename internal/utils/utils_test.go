package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/internal/enum"
)

func TestNormalizeContentID(t *testing.T) {
	assert.Equal(t, "img1", NormalizeContentID("<img1>"))
	assert.Equal(t, "img1@host", NormalizeContentID("  <img1@host> "))
	assert.Equal(t, "plain", NormalizeContentID("plain"))
	assert.Equal(t, "", NormalizeContentID("<>"))
}

func TestDecodeUTF8_ReplacesInvalidBytes(t *testing.T) {
	assert.Equal(t, "héllo", DecodeUTF8([]byte("héllo")))
	assert.Equal(t, "a�b", DecodeUTF8([]byte{'a', 0xff, 0xfe, 'b'}))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal.pdf", "normal.pdf"},
		{"path/to/file.eml", "path_to_file.eml"},
		{"", "unnamed"},
		{"..", "unnamed"},
		{"a:b*c?d", "a_b_c_d"},
		{"bad\r\nname.msg", "badname.msg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.input), "SanitizeFilename(%q)", tt.input)
	}
}

func TestDocumentFamilyForExtension(t *testing.T) {
	assert.Equal(t, enum.DocumentSpreadsheet, DocumentFamilyForExtension(".XLSX"))
	assert.Equal(t, enum.DocumentSpreadsheet, DocumentFamilyForExtension("csv"))
	assert.Equal(t, enum.DocumentPresentation, DocumentFamilyForExtension(".pptx"))
	assert.Equal(t, enum.DocumentWordProcessing, DocumentFamilyForExtension(".docx"))
	assert.Equal(t, enum.DocumentNone, DocumentFamilyForExtension(".ppt"))
	assert.Equal(t, enum.DocumentNone, DocumentFamilyForExtension(""))
}

func TestContentTypeRoundTrip(t *testing.T) {
	assert.Equal(t, "image/png", GetContentTypeFromExtension(".png"))
	assert.Equal(t, "image/jpeg", GetContentTypeFromExtension("JPEG"))
	assert.Equal(t, "application/octet-stream", GetContentTypeFromExtension(".xyz"))
	assert.Equal(t, "png", GetFileExtensionFromContentType("image/png"))
	assert.Equal(t, "xlsx", GetFileExtensionFromContentType(GetContentTypeFromExtension("xlsx")))
	assert.Equal(t, "bin", GetFileExtensionFromContentType("application/x-unknown"))
}

func TestGenerateOutputID(t *testing.T) {
	a, err := GenerateOutputID()
	require.NoError(t, err)
	b, err := GenerateOutputID()
	require.NoError(t, err)

	assert.Len(t, a, 21)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[a-z0-9]+$`, a)
	assert.NotEmpty(t, GenerateRequestID())
}

func TestCustomContext(t *testing.T) {
	ctx := WithCustomContext(context.Background(), &CustomContext{AppSource: "mailpdf", RequestID: "req-1"})
	ctx2 := SetFileNameInContext(ctx, "mail.eml")

	assert.Equal(t, "mailpdf", GetAppSourceFromContext(ctx2))
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx2))
	assert.Equal(t, "mail.eml", GetFileNameFromContext(ctx2))
	assert.Equal(t, "", GetFileNameFromContext(ctx))
	assert.Equal(t, "", GetRequestIDFromContext(context.Background()))
}
