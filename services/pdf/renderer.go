package pdf

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/tracing"
)

type RendererConfig struct {
	ChromePath string
	Timeout    time.Duration
}

const blankPage = "about:blank"

// Email markup is untrusted; it must never pull in local files.
var blockedURLPatterns = []string{"file://*"}

// ChromeRenderer prints HTML to PDF with headless Chrome. The browser is
// started on first use and shared; every render runs in its own blank tab.
type ChromeRenderer struct {
	cfg RendererConfig
	log logger.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
}

func NewChromeRenderer(cfg RendererConfig, log logger.Logger) *ChromeRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &ChromeRenderer{cfg: cfg, log: log}
}

func (r *ChromeRenderer) Render(ctx context.Context, html string, setup models.PageSetup) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ChromeRenderer.Render")
	defer span.Finish()
	tracing.SetDefaultRendererSpanTags(ctx, span)
	span.LogKV("htmlSize", len(html), "defaultPage", setup.IsDefault())

	pdf, err := r.render(ctx, html, setup)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(mperrors.ErrRenderFailed, err.Error())
	}

	span.LogKV("pdfSize", len(pdf))
	return pdf, nil
}

func (r *ChromeRenderer) render(ctx context.Context, html string, setup models.PageSetup) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "render cancelled")
	}

	browserCtx, err := r.browser()
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.cfg.Timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	started := time.Now()
	var pdf []byte
	err = chromedp.Run(tabCtx,
		loadDocument(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = printParams(setup).Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "render cancelled")
		}
		return nil, errors.Wrap(err, "chrome print to pdf")
	}

	r.log.Debugf("Rendered %d bytes of HTML to %d bytes of PDF in %s", len(html), len(pdf), time.Since(started))
	return pdf, nil
}

// loadDocument puts html into a blank tab. The markup is handed over as a
// decoded string, so charset declarations left in the email are ignored,
// and the page has no file origin to reach local files from.
func loadDocument(html string) chromedp.Tasks {
	return chromedp.Tasks{
		network.Enable(),
		network.SetBlockedURLS(blockedURLPatterns),
		chromedp.Navigate(blankPage),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	}
}

func printParams(setup models.PageSetup) *page.PrintToPDFParams {
	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false)
	if setup.IsDefault() {
		return params
	}
	return params.
		WithPaperWidth(setup.PaperWidth).
		WithPaperHeight(setup.PaperHeight).
		WithMarginTop(setup.MarginTop).
		WithMarginBottom(setup.MarginBottom).
		WithMarginLeft(setup.MarginLeft).
		WithMarginRight(setup.MarginRight)
}

// browser returns the shared browser context, starting Chrome if it is not
// running or has exited.
func (r *ChromeRenderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}
	if r.cancelBrowser != nil {
		r.cancelBrowser()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.WSURLReadTimeout(60*time.Second))
	for name, value := range browserFlags() {
		opts = append(opts, chromedp.Flag(name, value))
	}
	if r.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(r.log.Debugf),
		chromedp.WithErrorf(r.log.Errorf),
	)
	// an empty run starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, errors.Wrap(err, "start chrome")
	}

	r.browserCtx = browserCtx
	r.cancelBrowser = func() {
		cancelBrowser()
		cancelAlloc()
	}
	r.log.Infof("Started headless chrome")
	return browserCtx, nil
}

func browserFlags() map[string]interface{} {
	return map[string]interface{}{
		"disable-gpu":           true,
		"no-sandbox":            true,
		"disable-dev-shm-usage": true,
		"disable-extensions":    true,
	}
}

// Close stops the browser process if one was started.
func (r *ChromeRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelBrowser != nil {
		r.cancelBrowser()
		r.cancelBrowser = nil
		r.browserCtx = nil
	}
}
