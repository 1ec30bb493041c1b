package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pricewatch/internal/domain"
	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/errcodes"
)

type PriceRepository struct {
	db *sqlx.DB
}

func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Create appends one row to an offer's price history. Price rows are never
// updated or deleted afterwards.
func (r *PriceRepository) Create(ctx context.Context, offerID int64, value *float64, availability entity.Availability) (*entity.Price, error) {
	if (value != nil) != (availability == entity.Available) {
		return nil, domain.NewError(errcodes.ValidationError, "price value must be set exactly when the offer is available")
	}

	query := `
		INSERT INTO prices (offer_id, value, availability)
		VALUES ($1, $2, $3)
		RETURNING id, offer_id, value, created_at, availability`

	var schema priceSchema
	if err := r.db.GetContext(ctx, &schema, query, offerID, value, string(availability)); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to insert price")
	}

	price := schema.toDomain()

	return &price, nil
}

// ListRecent returns the newest rows of an offer's history, most recent
// first.
func (r *PriceRepository) ListRecent(ctx context.Context, offerID int64, limit int) ([]entity.Price, error) {
	query := `
		SELECT id, offer_id, value, created_at, availability
		FROM prices
		WHERE offer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	var schemas []priceSchema
	if err := r.db.SelectContext(ctx, &schemas, query, offerID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list prices")
	}

	prices := make([]entity.Price, 0, len(schemas))
	for _, s := range schemas {
		prices = append(prices, s.toDomain())
	}

	return prices, nil
}
