// Package thumbnail produces PNG previews of templates rendered with sample data.
package thumbnail

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Capturer turns an HTML document into a PNG image.
type Capturer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeCapturer screenshots HTML in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeCapturer struct {
	ExecPath string // empty uses the chromedp default lookup
	Timeout  time.Duration
	Width    int64
	Height   int64
}

// NewChromeCapturer returns a capturer with a letter-sized viewport.
func NewChromeCapturer(execPath string) *ChromeCapturer {
	return &ChromeCapturer{ExecPath: execPath, Timeout: 30 * time.Second, Width: 816, Height: 1056}
}

// Capture loads html into a blank page and screenshots the viewport.
func (c *ChromeCapturer) Capture(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(c.Width, c.Height),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.CaptureScreenshot(&png),
	)
	if err != nil {
		return nil, fmt.Errorf("thumbnail capture failed: %w", err)
	}
	return png, nil
}
