package worker

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/logx"
)

// maybeNotify sends a price-drop notification when the two most recent
// available readings in the history show the newer one strictly cheaper.
// History is ordered most recent first and already includes the row written
// in this pass.
func (u *Updater) maybeNotify(
	ctx context.Context,
	offer entity.Offer,
	history []entity.Price,
	products []entity.Product,
) {
	available := lo.Filter(history, func(price entity.Price, _ int) bool {
		return price.Availability == entity.Available && price.Value != nil
	})
	if len(available) < 2 {
		return
	}

	newest, previous := available[0], available[1]
	if *newest.Value >= *previous.Value {
		return
	}

	for _, product := range products {
		log := logger(ctx).With(
			slog.Int64("product-id", product.ID),
			slog.String(logx.FieldURL, offer.URL),
		)

		recipients, err := u.subscriberEmails(ctx, product.ID)
		if err != nil {
			log.Error("could not load subscribers", logx.Error(err))

			continue
		}

		if len(recipients) == 0 {
			continue
		}

		if err := u.notifier.SendPriceChange(ctx, product, offer, previous, newest, recipients); err != nil {
			log.Error("could not notify subscribers", logx.Error(err))
		}
	}
}

// subscriberEmails memoizes subscriber lookups for the cache TTL so a cycle
// over many offers of the same product hits the database once.
func (u *Updater) subscriberEmails(ctx context.Context, productID int64) ([]string, error) {
	key := strconv.FormatInt(productID, 10)

	if cached, ok := u.subscriberCache.Get(key); ok {
		return cached.([]string), nil //nolint:forcetypeassert
	}

	recipients, err := u.products.SubscriberEmails(ctx, productID)
	if err != nil {
		return nil, err
	}

	u.subscriberCache.Set(key, recipients, cache.DefaultExpiration)

	return recipients, nil
}
