package persistence

import (
	"database/sql"
	"time"

	"pricewatch/internal/domain/entity"
)

type offerSchema struct {
	ID  int64  `db:"id"`
	URL string `db:"url"`
}

func (s *offerSchema) toDomain() entity.Offer {
	return entity.Offer{
		ID:  s.ID,
		URL: s.URL,
	}
}

type priceSchema struct {
	ID           int64           `db:"id"`
	OfferID      int64           `db:"offer_id"`
	Value        sql.NullFloat64 `db:"value"`
	CreatedAt    time.Time       `db:"created_at"`
	Availability string          `db:"availability"`
}

func (s *priceSchema) toDomain() entity.Price {
	price := entity.Price{
		ID:           s.ID,
		OfferID:      s.OfferID,
		CreatedAt:    s.CreatedAt,
		Availability: entity.Availability(s.Availability),
	}

	if s.Value.Valid {
		value := s.Value.Float64
		price.Value = &value
	}

	return price
}

type productSchema struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

func (s *productSchema) toDomain() entity.Product {
	return entity.Product{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
	}
}
