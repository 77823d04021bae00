package attachments

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	mperrors "github.com/customeros/mailpdf/internal/errors"
)

// convertWithSoffice converts input to PDF with LibreOffice in headless
// mode. Output and the LibreOffice profile stay inside workspace.
func convertWithSoffice(ctx context.Context, configured, input, workspace string) ([]byte, error) {
	soffice, found := findSoffice(configured)
	if !found {
		return nil, errors.Wrap(mperrors.ErrToolNotFound, "soffice")
	}

	profile := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(workspace, "profile"))}
	cmd := exec.CommandContext(ctx, soffice,
		"--headless",
		"--norestore",
		"--nolockcheck",
		"-env:UserInstallation="+profile.String(),
		"--convert-to", "pdf",
		"--outdir", workspace,
		input,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "soffice timed out")
		}
		return nil, errors.Wrapf(err, "soffice: %s", strings.TrimSpace(stderr.String()))
	}

	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	pdf, err := os.ReadFile(output)
	if err != nil {
		return nil, errors.Wrap(err, "soffice produced no pdf")
	}
	return pdf, nil
}
