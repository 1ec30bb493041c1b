package scraper

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"pricewatch/internal/config"
	"pricewatch/internal/domain"
	"pricewatch/pkg/errcodes"
)

// BrowserDownloader navigates a headless browser reached over an external
// DevTools endpoint. It is the strategy for sites that assemble their markup
// client-side, where a plain GET returns no price.
type BrowserDownloader struct {
	controlURL string
	userAgent  string
}

func NewBrowserDownloader(cfg config.Scraper) *BrowserDownloader {
	return &BrowserDownloader{
		controlURL: cfg.WebdriverURL,
		userAgent:  cfg.UserAgent,
	}
}

// Download drives one browser session. The session and its page are scoped
// to this call and released on every exit path.
func (d *BrowserDownloader) Download(ctx context.Context, rawURL string) (Page, error) {
	if err := validateURL(rawURL); err != nil {
		return Page{}, err
	}

	browser := rod.New().ControlURL(d.controlURL).Context(ctx)

	if err := browser.Connect(); err != nil {
		return Page{}, domain.WrapError(err, errcodes.ClientCreationFailed, "cannot connect to the browser service")
	}

	defer browser.Close() //nolint:errcheck

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.ClientCreationFailed, "cannot open a browser page")
	}

	defer page.Close() //nolint:errcheck

	err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: d.userAgent})
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.ClientCreationFailed, "cannot set the session user-agent")
	}

	if err := page.Navigate(rawURL); err != nil {
		return Page{}, domain.WrapError(err, errcodes.DownloadFailed, "cannot navigate to the page")
	}

	if err := page.WaitLoad(); err != nil {
		return Page{}, domain.WrapError(err, errcodes.DownloadFailed, "page did not finish loading")
	}

	info, err := page.Info()
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.DownloadFailed, "cannot read the landed url")
	}

	document, err := page.HTML()
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.SourceExtractionFailed, "cannot read the page source")
	}

	return Page{
		Document:  document,
		LandedURL: info.URL,
	}, nil
}
