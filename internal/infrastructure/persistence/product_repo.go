package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pricewatch/internal/domain"
	"pricewatch/internal/domain/entity"
	"pricewatch/pkg/errcodes"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListByOffer returns the products sold under an offer.
func (r *ProductRepository) ListByOffer(ctx context.Context, offerID int64) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.description
		FROM products p
		JOIN product_offers po ON po.product_id = p.id
		WHERE po.offer_id = $1
		ORDER BY p.id`

	var schemas []productSchema
	if err := r.db.SelectContext(ctx, &schemas, query, offerID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list products of offer")
	}

	products := make([]entity.Product, 0, len(schemas))
	for _, s := range schemas {
		products = append(products, s.toDomain())
	}

	return products, nil
}

// SubscriberEmails returns the addresses of users notified about a product.
func (r *ProductRepository) SubscriberEmails(ctx context.Context, productID int64) ([]string, error) {
	query := `
		SELECT u.email
		FROM users u
		JOIN notified_products np ON np.user_id = u.id
		WHERE np.product_id = $1
		ORDER BY u.email`

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query, productID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list product subscribers")
	}

	return emails, nil
}
