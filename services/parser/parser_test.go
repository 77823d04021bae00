package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/internal/enum"
	mperrors "github.com/customeros/mailpdf/internal/errors"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     enum.EmailFormat
		wantErr  bool
	}{
		{"eml", "mail.eml", enum.EmailFormatEml, false},
		{"upper case eml", "MAIL.EML", enum.EmailFormatEml, false},
		{"msg", "outlook.msg", enum.EmailFormatMsg, false},
		{"mixed case msg", "Outlook.Msg", enum.EmailFormatMsg, false},
		{"pdf", "report.pdf", "", true},
		{"no extension", "mail", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, mperrors.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailParser_Parse(t *testing.T) {
	p := NewEmailParser()
	ctx := context.Background()

	email, err := p.Parse(ctx, "Hello.EML", []byte("From: a@x.com\r\nTo: b@y.com\r\nSubject: Test\r\n\r\nbody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Test", email.Subject)

	_, err = p.Parse(ctx, "notes.txt", []byte("x"))
	assert.ErrorIs(t, err, mperrors.ErrUnsupportedFormat)

	_, err = p.Parse(ctx, "empty.eml", nil)
	assert.ErrorIs(t, err, mperrors.ErrEmptyUpload)

	_, err = p.Parse(ctx, "broken.msg", []byte("not ole"))
	assert.ErrorIs(t, err, mperrors.ErrInvalidMessage)
}
