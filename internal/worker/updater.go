package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"pricewatch/internal/domain"
	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/contextx"
	"pricewatch/pkg/errcodes"
	"pricewatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// priceHistoryWindow is how many recent history rows are loaded per offer.
// It covers both the notification trigger and the fairness baseline.
const priceHistoryWindow = 72

const (
	subscriberCacheTTL     = 5 * time.Minute
	subscriberCacheCleanup = 10 * time.Minute
)

type OfferRepository interface {
	List(ctx context.Context) ([]entity.Offer, error)
}

type PriceRepository interface {
	Create(ctx context.Context, offerID int64, value *float64, availability entity.Availability) (*entity.Price, error)
	ListRecent(ctx context.Context, offerID int64, limit int) ([]entity.Price, error)
}

type ProductRepository interface {
	ListByOffer(ctx context.Context, offerID int64) ([]entity.Product, error)
	SubscriberEmails(ctx context.Context, productID int64) ([]string, error)
}

type Notifier interface {
	SendPriceChange(
		ctx context.Context,
		product entity.Product,
		offer entity.Offer,
		previousPrice entity.Price,
		newPrice entity.Price,
		recipients []string,
	) error
}

type PriceGetter interface {
	GetPrice(ctx context.Context, url string, lastKnownPrice *float64) (float64, error)
}

// Updater runs one acquisition pass over every tracked offer: it scrapes the
// current price, appends a history row and notifies subscribers when the
// price dropped.
type Updater struct {
	scraper  PriceGetter
	offers   OfferRepository
	prices   PriceRepository
	products ProductRepository
	notifier Notifier

	subscriberCache *cache.Cache
}

func NewUpdater(
	scraper PriceGetter,
	offers OfferRepository,
	prices PriceRepository,
	products ProductRepository,
	notifier Notifier,
) *Updater {
	return &Updater{
		scraper:         scraper,
		offers:          offers,
		prices:          prices,
		products:        products,
		notifier:        notifier,
		subscriberCache: cache.New(subscriberCacheTTL, subscriberCacheCleanup),
	}
}

// UpdateAllOffers processes all offers concurrently, one task per offer, and
// folds the per-offer outcomes into Stats after every task has finished.
func (u *Updater) UpdateAllOffers(ctx context.Context) (Stats, error) {
	offers, err := u.offers.List(ctx)
	if err != nil {
		return Stats{}, domain.WrapError(err, errcodes.InternalServerError, "failed to list offers")
	}

	logger(ctx).Info("starting update", slog.Int("offers", len(offers)))

	outcomes := make([]outcome, len(offers))

	var g errgroup.Group

	for i, offer := range offers {
		i, offer := i, offer

		g.Go(func() error {
			outcomes[i] = u.updateOffer(ctx, offer)

			return nil
		})
	}

	g.Wait() //nolint:errcheck

	return foldStats(outcomes), nil
}

func (u *Updater) updateOffer(ctx context.Context, offer entity.Offer) outcome {
	log := logger(ctx).With(
		slog.Int64("offer-id", offer.ID),
		slog.String(logx.FieldURL, offer.URL),
	)

	history, err := u.prices.ListRecent(ctx, offer.ID, priceHistoryWindow)
	if err != nil {
		log.Error("could not load price history", logx.Error(err))

		return outcomeSkipped
	}

	products, err := u.products.ListByOffer(ctx, offer.ID)
	if err != nil {
		log.Error("could not load products", logx.Error(err))

		return outcomeSkipped
	}

	value, availability, result := u.acquire(ctx, offer, lastAvailableValue(history))
	if result == outcomePageNotSupported {
		return result
	}

	newPrice, err := u.prices.Create(ctx, offer.ID, value, availability)
	if err != nil {
		log.Error("could not store price", logx.Error(err))

		return result
	}

	log.Info(
		"offer updated",
		slog.String("availability", string(availability)),
		slog.Any("value", value),
	)

	u.maybeNotify(ctx, offer, append([]entity.Price{*newPrice}, history...), products)

	return result
}

// acquire scrapes the offer and maps the result onto an availability. A nil
// value with outcomePageNotSupported means no history row should be written.
func (u *Updater) acquire(
	ctx context.Context,
	offer entity.Offer,
	lastKnownPrice *float64,
) (*float64, entity.Availability, outcome) {
	price, err := u.scraper.GetPrice(ctx, offer.URL, lastKnownPrice)
	if err == nil {
		return &price, entity.Available, outcomeSuccess
	}

	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.PageNotSupported, errcodes.InvalidSelector:
		logger(ctx).Error(
			"offer cannot be scraped",
			slog.Int64("offer-id", offer.ID),
			slog.String(logx.FieldURL, offer.URL),
			logx.Error(err),
		)

		return nil, "", outcomePageNotSupported
	case errcodes.PriceNotFound, errcodes.UnparsablePrice:
		return nil, entity.PriceNotFound, outcomePriceNotFound
	case errcodes.Redirected:
		return nil, entity.SiteNotFound, outcomeRedirected
	default:
		return nil, entity.Unavailable, outcomeOtherError
	}
}

func lastAvailableValue(history []entity.Price) *float64 {
	for _, price := range history {
		if price.Availability == entity.Available && price.Value != nil {
			return price.Value
		}
	}

	return nil
}
