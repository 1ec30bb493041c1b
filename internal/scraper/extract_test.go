package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/domain"
	"pricewatch/pkg/errcodes"
)

func TestParsePrice(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input string
		want  float64
	}{
		{input: "12,99", want: 12.99},
		{input: "12,99 PLN", want: 12.99},
		{input: "99", want: 99},
		{input: "1 299,00 zł", want: 1299},
		{input: "1.234,56", want: 1.23456},
		{input: "1.234.567,89", want: 1.23456789},
		{input: "price: 49.90", want: 49.90},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parsePrice(tc.input)
			rq.NoError(err)
			rq.InDelta(tc.want, got, 1e-9)
		})
	}
}

func TestParsePriceUnparsable(t *testing.T) {
	rq := require.New(t)

	for _, input := range []string{"", "free", ".", "-,-"} {
		_, err := parsePrice(input)
		rq.Error(err, "input %q", input)
	}
}

func TestExtract(t *testing.T) {
	rq := require.New(t)

	const document = `<html><body>
		<div class="ad">199,99</div>
		<span class="price">19,99</span>
		<span class="price">unrelated</span>
	</body></html>`

	price, err := extract(document, ".price")
	rq.NoError(err)
	rq.InDelta(19.99, price, 1e-9)

	// Pure function: same inputs, same result.
	again, err := extract(document, ".price")
	rq.NoError(err)
	rq.Equal(price, again)
}

func TestExtractFirstMatchWins(t *testing.T) {
	rq := require.New(t)

	// The first matched block is unparsable; the parsable second one must
	// not be tried.
	const document = `<html><body>
		<span class="price">call us</span>
		<span class="price">19,99</span>
	</body></html>`

	_, err := extract(document, ".price")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.UnparsablePrice, code)
}

func TestExtractNoMatches(t *testing.T) {
	rq := require.New(t)

	_, err := extract(`<html><body><p>sold out</p></body></html>`, ".price")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.PriceNotFound, code)
}

func TestExtractInvalidSelector(t *testing.T) {
	rq := require.New(t)

	_, err := extract(`<html></html>`, "..not-a-selector")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InvalidSelector, code)
}

func TestURLsEquivalent(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		url1 string
		url2 string
		want bool
	}{
		{
			name: "scheme and punctuation ignored",
			url1: "http://Ex.com/a",
			url2: "https://ex.com/a!",
			want: true,
		},
		{
			name: "trailing slash ignored",
			url1: "https://shop.example/item?x=1",
			url2: "https://shop.example/item/?x=1",
			want: true,
		},
		{
			name: "different path",
			url1: "https://shop.example/item",
			url2: "https://shop.example/removed",
			want: false,
		},
		{
			name: "different host",
			url1: "https://shop.example/item",
			url2: "https://other.example/item",
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq.Equal(tc.want, urlsEquivalent(tc.url1, tc.url2))
		})
	}
}
