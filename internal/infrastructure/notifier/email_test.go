package notifier

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/domain/entity"
)

func TestCropString(t *testing.T) {
	rq := require.New(t)

	rq.Equal("Hello...", cropString("Hello World", 5))
	rq.Equal("Hello", cropString("Hello", 5))
	rq.Equal("", cropString("", 8))
	rq.Equal("...", cropString("Hello World", 0))
}

func TestCropStringMultiByte(t *testing.T) {
	rq := require.New(t)

	rq.Equal("Żół...", cropString("Żółwik", 3))
	rq.Equal("Żółwik", cropString("Żółwik", 6))

	cropped := cropString(strings.Repeat("ż", 30), 25)
	rq.True(utf8.ValidString(cropped))
	rq.Equal(strings.Repeat("ż", 25)+"...", cropped)
}

func TestPriceState(t *testing.T) {
	rq := require.New(t)

	value := 19.99

	rq.Equal("19.99 PLN", priceState(entity.Price{
		Value:        &value,
		Availability: entity.Available,
	}))

	rq.Equal("Price not found", priceState(entity.Price{
		Availability: entity.PriceNotFound,
	}))
}

func TestRenderBody(t *testing.T) {
	rq := require.New(t)

	previousValue, newValue := 100.0, 90.0
	createdAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	product := entity.Product{Name: "Mechanical keyboard"}
	offer := entity.Offer{URL: "https://shop.example/item"}

	previous := entity.Price{
		Value:        &previousValue,
		CreatedAt:    createdAt,
		Availability: entity.Available,
	}
	current := entity.Price{
		Value:        &newValue,
		CreatedAt:    createdAt.Add(time.Hour),
		Availability: entity.Available,
	}

	body, err := renderBody(product, offer, previous, current)
	rq.NoError(err)
	rq.Contains(body, "Price of Mechanical keyboard has changed")
	rq.Contains(body, "100.00 PLN")
	rq.Contains(body, "90.00 PLN")
	rq.Contains(body, "2024-05-01 12:30:00")
	rq.Contains(body, `href="https://shop.example/item"`)

	// Same availability on both sides: the price changed, not availability.
	rq.NotContains(body, "Availability of")

	current.Value = nil
	current.Availability = entity.Unavailable

	body, err = renderBody(product, offer, previous, current)
	rq.NoError(err)
	rq.Contains(body, "Availability of Mechanical keyboard has changed")
	rq.Contains(body, "Unavailable")
}
