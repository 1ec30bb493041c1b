package entity

import "time"

// Availability classifies the outcome of one price acquisition.
type Availability string

const (
	Available              Availability = "available"
	TemporarilyUnavailable Availability = "temporarily_unavailable"
	Unavailable            Availability = "unavailable"
	PriceNotFound          Availability = "price_not_found"
	SiteNotFound           Availability = "site_not_found"
)

// String returns the human-readable name used in notifications.
func (a Availability) String() string {
	switch a {
	case Available:
		return "Available"
	case TemporarilyUnavailable:
		return "Temporarily unavailable"
	case Unavailable:
		return "Unavailable"
	case PriceNotFound:
		return "Price not found"
	case SiteNotFound:
		return "Site not found"
	default:
		return string(a)
	}
}

// Price is one append-only row of an offer's price history.
// Value is set if and only if Availability is Available.
type Price struct {
	ID           int64
	OfferID      int64
	Value        *float64
	CreatedAt    time.Time
	Availability Availability
}
