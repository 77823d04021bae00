package storage

import (
	"strings"

	"github.com/pkg/errors"

	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/utils"
)

const outputExtension = ".pdf"

// OutputKey returns the storage key for an output id.
func OutputKey(id string) string {
	return id + outputExtension
}

// NewOutputKey generates a fresh output id and its storage key.
func NewOutputKey() (id, key string, err error) {
	id, err = utils.GenerateOutputID()
	if err != nil {
		return "", "", errors.Wrap(err, "generate output id")
	}
	return id, OutputKey(id), nil
}

// validateKey rejects keys that could escape the storage namespace. Such
// keys can never have been issued, so they are reported as not found.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return errors.Wrapf(mperrors.ErrOutputNotFound, "invalid key %q", key)
	}
	return nil
}
