package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"pricewatch/internal/config"
	"pricewatch/internal/infrastructure/notifier"
	"pricewatch/internal/infrastructure/persistence"
	"pricewatch/internal/scraper"
	"pricewatch/internal/worker"
	"pricewatch/pkg/application/connectors"
	"pricewatch/pkg/application/modules"
	"pricewatch/pkg/contextx"
	"pricewatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const appName = "pricewatch"

// Run wires the whole service together and blocks until the context is
// canceled or, in single-cycle mode, until the cycle finishes.
func Run(ctx context.Context, version string) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	selectors, err := config.LoadSelectors(cfg.Scraper.SelectorsFile)
	if err != nil {
		return fmt.Errorf("load selectors: %w", err)
	}

	logger(ctx).Info(
		"selectors loaded",
		slog.Int("http", len(selectors.HTTP)),
		slog.Int("browser", len(selectors.Browser)),
	)

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)

	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	// 3. Repositories
	offerRepo := persistence.NewOfferRepository(db)
	priceRepo := persistence.NewPriceRepository(db)
	productRepo := persistence.NewProductRepository(db)

	// 4. Scraper and notifier
	priceScraper := scraper.New(cfg.Scraper, selectors)

	var priceNotifier worker.Notifier = notifier.NopNotifier{}
	if cfg.SMTP.Host != "" {
		priceNotifier = notifier.NewEmailNotifier(cfg.SMTP)
	}

	updater := worker.NewUpdater(priceScraper, offerRepo, priceRepo, productRepo, priceNotifier)
	workerMetrics := worker.NewMetrics(prometheus.DefaultRegisterer)

	// 5. Background servers and the update loop
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          appName,
		Version:       version,
		ListenAddress: cfg.App.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricAddress,
	}.Run(ctx, g)

	g.Go(func() error {
		defer cancel()

		return runCycles(ctx, cfg.App, updater, workerMetrics)
	})

	return g.Wait()
}

// cycleRunner is the slice of worker.Updater the cycle loop drives.
type cycleRunner interface {
	UpdateAllOffers(ctx context.Context) (worker.Stats, error)
}

func runCycles(ctx context.Context, cfg config.App, updater cycleRunner, metrics *worker.Metrics) error {
	for {
		traceID := contextx.TraceID(xid.New().String())

		// Every log line of the cycle carries the trace id through the
		// context logger.
		cycleCtx := contextx.WithTraceID(ctx, traceID)
		cycleCtx = contextx.WithLogger(
			cycleCtx,
			logger(ctx).With(slog.String(logx.FieldTraceID, traceID.String())),
		)

		started := time.Now()

		stats, err := updater.UpdateAllOffers(cycleCtx)
		if err != nil {
			logger(cycleCtx).Error("update cycle failed", logx.Error(err))
		} else {
			metrics.Observe(stats, time.Since(started))
			logger(cycleCtx).Info(
				"update cycle finished",
				slog.Duration("duration", time.Since(started)),
				slog.Any("stats", stats),
			)
		}

		if !cfg.RunInLoop {
			return err
		}

		logger(ctx).Info("sleeping until next cycle", slog.Duration("interval", cfg.Interval))

		select {
		case <-time.After(cfg.Interval):
		case <-ctx.Done():
			return nil
		}
	}
}
