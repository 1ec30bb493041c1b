package entity

// Product groups offers that sell the same thing. Many-to-many with Offer.
type Product struct {
	ID          int64
	Name        string
	Description string
}
