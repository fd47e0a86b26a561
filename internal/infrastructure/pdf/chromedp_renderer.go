package pdf

import (
	"context"
	"fmt"
	"time"

	"obra_presupuestos/internal/domain/document"
	"obra_presupuestos/internal/usecase/interfaces"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultRenderTimeout = 30 * time.Second

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

type Options struct {
	// ExecPath points at a Chrome/Chromium binary. Empty lets chromedp look
	// it up on PATH.
	ExecPath string
	Timeout  time.Duration
}

// ChromeRenderer prints documents to PDF with headless Chrome. Each call
// starts its own browser, so the renderer is safe for concurrent use.
type ChromeRenderer struct {
	opts   Options
	logger *zap.Logger
}

var _ interfaces.IDocumentRenderer = (*ChromeRenderer)(nil)

func NewChromeRenderer(opts Options, logger *zap.Logger) *ChromeRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultRenderTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{opts: opts, logger: logger}
}

func (r *ChromeRenderer) Render(ctx context.Context, doc document.Document) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required in containers
		chromedp.Flag("enable-print-preview", true),
	)
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		r.logger.Error("[pdf][renderer] print failed", zap.String("file_name", doc.FileName), zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	r.logger.Debug("[pdf][renderer] printed",
		zap.String("file_name", doc.FileName),
		zap.Int("bytes", len(pdfBuf)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pdfBuf, nil
}
