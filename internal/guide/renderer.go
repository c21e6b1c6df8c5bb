package guide

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/raceprep/raceprep/internal/errors"
)

// Renderer turns the guide HTML into a PDF.
type Renderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// NoopRenderer skips PDF generation. Used in tests and when no browser
// is installed; the HTML guide still ships.
type NoopRenderer struct{}

func (NoopRenderer) RenderPDF(context.Context, []byte) ([]byte, error) {
	return nil, nil
}

const renderTimeout = 60 * time.Second

// PlaywrightRenderer prints the guide through headless Chromium.
type PlaywrightRenderer struct{}

// RenderPDF launches a browser, loads the HTML and prints it to PDF.
// The launch is bounded by a timeout because a missing or broken
// browser install otherwise hangs the pipeline.
func (PlaywrightRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	type result struct {
		pdf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		pdf, err := printPDF(html)
		done <- result{pdf: pdf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "render guide pdf")
	case r := <-done:
		if r.err != nil {
			return nil, errors.Wrap(r.err, "render guide pdf")
		}
		return r.pdf, nil
	}
}

func printPDF(html []byte) ([]byte, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "start playwright")
	}
	defer func() { _ = pw.Stop() }()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "launch chromium")
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.NewPage()
	if err != nil {
		return nil, errors.Wrap(err, "open page")
	}
	if err := page.SetContent(string(html), playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return nil, errors.Wrap(err, "load guide html")
	}
	pdf, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "print pdf")
	}
	return pdf, nil
}
