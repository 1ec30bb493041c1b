package config

import "time"

type Scraper struct {
	UserAgent string `env:"SCRAPER_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/103.0.0.0 Safari/537.36"`

	// WebdriverURL is the DevTools endpoint of the external headless-browser
	// service used by the browser download strategy.
	WebdriverURL string `env:"SCRAPER_WEBDRIVER_URL" envDefault:"ws://localhost:9222" validate:"uri"`

	DownloadTimeout time.Duration `env:"SCRAPER_DOWNLOAD_TIMEOUT" envDefault:"20s" validate:"gt=0"`
	MaxTries        int           `env:"SCRAPER_MAX_TRIES" envDefault:"3" validate:"gte=0"`
	FairnessTries   int           `env:"SCRAPER_FAIRNESS_TRIES" envDefault:"3" validate:"gte=0"`
	BackoffBase     time.Duration `env:"SCRAPER_BACKOFF_BASE" envDefault:"10s" validate:"gt=0"`

	// SelectorsFile holds the per-site extraction rule tables, see Selectors.
	SelectorsFile string `env:"SCRAPER_SELECTORS_FILE" envDefault:"selectors.json"`

	// HTTPDebug wraps the HTTP downloader transport with request/response
	// logging. Noisy; off by default.
	HTTPDebug bool `env:"SCRAPER_HTTP_DEBUG" envDefault:"false"`
}
