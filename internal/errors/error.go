package errors

import "github.com/pkg/errors"

var (
	// upload errors
	ErrEmptyUpload        = errors.New("no file uploaded")
	ErrUnsupportedFormat  = errors.New("unsupported email format")
	ErrUnsupportedConvert = errors.New("unsupported attachment format")

	// parse errors
	ErrInvalidMessage = errors.New("invalid email message")

	// render errors
	ErrRenderFailed = errors.New("pdf rendering failed")
	ErrMergeFailed  = errors.New("pdf merge failed")
	ErrToolNotFound = errors.New("external conversion tool not found")

	// storage errors
	ErrOutputNotFound = errors.New("output not found")
)
