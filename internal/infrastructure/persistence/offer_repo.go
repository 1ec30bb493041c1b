package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pricewatch/internal/domain"
	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/errcodes"
)

type OfferRepository struct {
	db *sqlx.DB
}

func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// List returns every tracked offer.
func (r *OfferRepository) List(ctx context.Context) ([]entity.Offer, error) {
	query := `SELECT id, url FROM offers ORDER BY id`

	var schemas []offerSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list offers")
	}

	offers := make([]entity.Offer, 0, len(schemas))
	for _, s := range schemas {
		offers = append(offers, s.toDomain())
	}

	return offers, nil
}
