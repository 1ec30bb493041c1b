package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"pricewatch/internal/config"
	"pricewatch/internal/domain"
	"pricewatch/pkg/errcodes"
	"pricewatch/pkg/httpx"
)

// Page is a downloaded document plus the URL the client actually landed on.
// The landed URL may differ from the requested one when the site redirected.
type Page struct {
	Document  string
	LandedURL string
}

// Downloader fetches a page. Implementations must not follow the requested
// URL blindly: the landed URL is reported back so the pipeline can detect
// redirects.
type Downloader interface {
	Download(ctx context.Context, rawURL string) (Page, error)
}

// validateURL rejects malformed URLs before any network activity.
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidURL, "given url is not valid")
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return domain.NewError(errcodes.InvalidURL, "given url has no scheme or host")
	}

	return nil
}

// HTTPDownloader fetches pages with a single plain GET.
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
}

func NewHTTPDownloader(cfg config.Scraper) *HTTPDownloader {
	transport := http.DefaultTransport
	if cfg.HTTPDebug {
		transport = httpx.NewLoggingRoundTripper(transport)
	}

	return &HTTPDownloader{
		client: &http.Client{
			Timeout:   cfg.DownloadTimeout,
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
	}
}

func (d *HTTPDownloader) Download(ctx context.Context, rawURL string) (Page, error) {
	if err := validateURL(rawURL); err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.InvalidURL, "cannot build request")
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return Page{}, classifyRequestError(err)
	}

	defer resp.Body.Close()

	// resp.Request points at the last request of the redirect chain.
	landedURL := resp.Request.URL.String()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, domain.WrapError(err, errcodes.SourceExtractionFailed, "cannot read response body")
	}

	return Page{
		Document:  string(bodyBytes),
		LandedURL: landedURL,
	}, nil
}

func classifyRequestError(err error) error {
	var urlErr *url.Error

	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return domain.WrapError(err, errcodes.DownloadTimeout, "download timed out")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(err, errcodes.DownloadTimeout, "download timed out")
	}

	return domain.WrapError(err, errcodes.DownloadFailed, "cannot download page")
}
