package entity

// Offer is a monitored product page at a specific URL.
type Offer struct {
	ID  int64
	URL string
}
