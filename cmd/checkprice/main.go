// Command checkprice downloads one page with the configured strategy and
// prints every block the selector matches. Useful when writing a selector for
// a new site.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"

	"pricewatch/internal/config"
	"pricewatch/internal/scraper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(log)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: checkprice <url>")
		os.Exit(2)
	}

	if err := run(ctx, os.Args[1]); err != nil {
		log.Error("checkprice failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, url string) error {
	cfg, err := config.LoadScraper()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	selectors, err := config.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return fmt.Errorf("load selectors: %w", err)
	}

	priceScraper := scraper.New(cfg, selectors)

	blocks, err := priceScraper.PotentialPriceBlocks(ctx, url)
	if err != nil {
		return fmt.Errorf("find price blocks: %w", err)
	}

	fmt.Printf("%d matching block(s):\n", len(blocks))

	for i, block := range blocks {
		if value, err := scraper.ParsePrice(block); err == nil {
			fmt.Printf("%3d: %q -> %.2f\n", i, strings.TrimSpace(block), value)
		} else {
			fmt.Printf("%3d: %q -> not a number\n", i, strings.TrimSpace(block))
		}
	}

	price, err := priceScraper.GetPrice(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("get price: %w", err)
	}

	fmt.Printf("\nextracted price: %.2f\n", price)

	return nil
}
