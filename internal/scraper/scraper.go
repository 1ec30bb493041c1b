package scraper

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"pricewatch/internal/config"
	"pricewatch/internal/domain"
	"pricewatch/pkg/contextx"
	"pricewatch/pkg/errcodes"
	"pricewatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// fairnessThreshold is the relative deviation from the last known price above
// which a fresh reading is treated as suspicious and re-checked.
const fairnessThreshold = 0.10

// PriceScraper acquires the current price of a page: it picks a download
// strategy from the configured selector tables, downloads the page, extracts
// the price and wraps the whole pipeline with retry and fairness policies.
type PriceScraper struct {
	httpSelectors    map[string]string
	browserSelectors map[string]string

	httpDownloader    Downloader
	browserDownloader Downloader

	maxTries      int
	fairnessTries int
	backoffBase   time.Duration
}

func New(cfg config.Scraper, selectors config.Selectors) *PriceScraper {
	return &PriceScraper{
		httpSelectors:     selectors.HTTP,
		browserSelectors:  selectors.Browser,
		httpDownloader:    NewHTTPDownloader(cfg),
		browserDownloader: NewBrowserDownloader(cfg),
		maxTries:          cfg.MaxTries,
		fairnessTries:     cfg.FairnessTries,
		backoffBase:       cfg.BackoffBase,
	}
}

// WithDownloaders replaces both download strategies. Used by tests.
func (s *PriceScraper) WithDownloaders(httpDownloader, browserDownloader Downloader) *PriceScraper {
	s.httpDownloader = httpDownloader
	s.browserDownloader = browserDownloader
	return s
}

// GetPrice is the main entry point. It acquires the price with retries and,
// when a last known price exists, re-checks readings that deviate from it by
// more than the fairness threshold. A re-check budget that runs out accepts
// the last reading even if still suspicious; a confirmed drop is trusted.
func (s *PriceScraper) GetPrice(ctx context.Context, url string, lastKnownPrice *float64) (float64, error) {
	price, err := s.getPriceWithRetry(ctx, url)
	if err != nil || lastKnownPrice == nil {
		return price, err
	}

	delay := s.backoffBase
	lastPrice := *lastKnownPrice

	for try := 0; try < s.fairnessTries; try++ {
		deviation := math.Abs(price/lastPrice - 1)
		if deviation <= fairnessThreshold {
			break
		}

		logger(ctx).Warn(
			"price reading looks suspicious, re-checking",
			slog.String(logx.FieldURL, url),
			slog.Float64("price", price),
			slog.Float64("last_known_price", lastPrice),
		)

		if err := s.sleep(ctx, delay); err != nil {
			return 0, err
		}

		delay *= 2

		price, err = s.getPriceWithRetry(ctx, url)
		if err != nil {
			return 0, err
		}
	}

	return price, nil
}

// PotentialPriceBlocks downloads the page and returns the text of every block
// the configured selector matches. Debugging aid for writing selectors.
func (s *PriceScraper) PotentialPriceBlocks(ctx context.Context, url string) ([]string, error) {
	downloader, selector, err := s.resolve(url)
	if err != nil {
		return nil, err
	}

	page, err := downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	if !urlsEquivalent(url, page.LandedURL) {
		return nil, domain.NewError(errcodes.Redirected, "downloaded page comes from a different url than requested")
	}

	return matchBlocks(page.Document, selector)
}

// getPriceWithRetry runs the pipeline once and retries transient download
// failures up to maxTries more times with exponential backoff. Permanent
// failures (redirect, unsupported page, broken selector) surface immediately,
// as does a page that genuinely lacks the price element.
func (s *PriceScraper) getPriceWithRetry(ctx context.Context, url string) (float64, error) {
	delay := s.backoffBase

	price, err := s.getPriceOnce(ctx, url)

	for try := 0; try < s.maxTries && err != nil && isRetryable(err); try++ {
		logger(ctx).Warn(
			"cannot download page, will retry",
			slog.String(logx.FieldURL, url),
			slog.Duration("delay", delay),
			logx.Error(err),
		)

		if serr := s.sleep(ctx, delay); serr != nil {
			return 0, serr
		}

		delay *= 2

		price, err = s.getPriceOnce(ctx, url)
	}

	return price, err
}

func (s *PriceScraper) getPriceOnce(ctx context.Context, url string) (float64, error) {
	downloader, selector, err := s.resolve(url)
	if err != nil {
		return 0, err
	}

	page, err := downloader.Download(ctx, url)
	if err != nil {
		return 0, err
	}

	if !urlsEquivalent(url, page.LandedURL) {
		return 0, domain.NewError(errcodes.Redirected, "downloaded page comes from a different url than requested")
	}

	return extract(page.Document, selector)
}

// resolve picks the download strategy and extraction rule for a URL. The
// HTTP table is consulted before the browser table; when a URL could match
// both, the HTTP strategy wins.
func (s *PriceScraper) resolve(url string) (Downloader, string, error) {
	for key, selector := range s.httpSelectors {
		if strings.Contains(url, key) {
			return s.httpDownloader, selector, nil
		}
	}

	for key, selector := range s.browserSelectors {
		if strings.Contains(url, key) {
			return s.browserDownloader, selector, nil
		}
	}

	return nil, "", domain.NewError(errcodes.PageNotSupported, "no selector configured for this url")
}

func (s *PriceScraper) sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isRetryable(err error) bool {
	code, ok := domain.GetCode(err)
	return ok && errcodes.IsTransient(code)
}
