package pdf

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/testutil"
)

func chromePath(t *testing.T) string {
	t.Helper()
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("chrome not installed")
	return ""
}

func TestPrintParams(t *testing.T) {
	body := printParams(models.BodyPage)
	assert.Equal(t, 16.54, body.PaperWidth)
	assert.Equal(t, 11.69, body.PaperHeight)
	assert.Equal(t, 0.3937, body.MarginLeft)
	assert.True(t, body.PrintBackground)

	def := printParams(models.DefaultPage)
	assert.Zero(t, def.PaperWidth)
	assert.Zero(t, def.MarginTop)
	assert.True(t, def.PrintBackground)
}

func TestChromeRenderer_Render(t *testing.T) {
	path := chromePath(t)
	r := NewChromeRenderer(RendererConfig{ChromePath: path, Timeout: time.Minute}, testutil.NewTestLogger())
	defer r.Close()

	pdf, err := r.Render(context.Background(), "<html><head></head><body><p>Hello</p></body></html>", models.BodyPage)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")

	count, err := NewPdfcpuMerger(testutil.NewTestLogger()).PageCount(pdf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBrowserFlags_NoLocalFileAccess(t *testing.T) {
	flags := browserFlags()
	assert.NotContains(t, flags, "allow-file-access-from-files")
	assert.NotContains(t, flags, "allow-file-access")
	assert.Contains(t, blockedURLPatterns, "file://*")
	assert.Equal(t, "about:blank", blankPage)
}

func TestLoadDocument_IgnoresDeclaredCharset(t *testing.T) {
	path := chromePath(t)
	r := NewChromeRenderer(RendererConfig{ChromePath: path, Timeout: time.Minute}, testutil.NewTestLogger())
	defer r.Close()

	browserCtx, err := r.browser()
	require.NoError(t, err)
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	html := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=iso-8859-1"></head>` +
		`<body><p id="word">café</p><iframe id="leak" src="file:///etc/hostname"></iframe></body></html>`

	var word, location string
	err = chromedp.Run(tabCtx,
		loadDocument(html),
		chromedp.Text("#word", &word, chromedp.ByID),
		chromedp.Evaluate(`window.location.href`, &location),
	)
	require.NoError(t, err)
	assert.Equal(t, "café", word)
	assert.Equal(t, "about:blank", location)
}

func TestChromeRenderer_CancelledContext(t *testing.T) {
	path := chromePath(t)
	r := NewChromeRenderer(RendererConfig{ChromePath: path, Timeout: time.Minute}, testutil.NewTestLogger())
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "<p>x</p>", models.DefaultPage)
	assert.ErrorIs(t, err, mperrors.ErrRenderFailed)
}
