// Package export renders a resume through a visual template and prints
// it to PDF with a headless browser. Requires Chrome/Chromium on the host.
package export

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/types"
)

// DefaultTimeout bounds a single PDF print.
const DefaultTimeout = 60 * time.Second

// ExportError represents a failed PDF export.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Exporter turns resumes into downloadable PDFs.
type Exporter struct {
	renderer *render.Renderer
	timeout  time.Duration
}

// New creates an exporter around a renderer.
func New(renderer *render.Renderer) *Exporter {
	return &Exporter{renderer: renderer, timeout: DefaultTimeout}
}

// SetTimeout overrides the per-export deadline.
func (e *Exporter) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// ExportPDF renders the resume in the given template and prints it to PDF.
// The returned slice holds the complete document; nothing is streamed, so a
// failure can never leave the caller with a partial file.
func (e *Exporter) ExportPDF(ctx context.Context, res *types.Resume, templateID string) ([]byte, error) {
	html, err := e.renderer.Render(res, templateID)
	if err != nil {
		return nil, err
	}
	return e.printToPDF(ctx, html)
}

// printToPDF loads the HTML in a headless browser and prints it.
func (e *Exporter) printToPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait with background colors so template styling survives.
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "pdf rendering failed", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &ExportError{Message: "pdf rendering produced no output"}
	}
	return pdf, nil
}
