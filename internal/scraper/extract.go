package scraper

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"pricewatch/internal/domain"
	"pricewatch/pkg/errcodes"
)

// matchBlocks runs a CSS selector against an HTML document and returns the
// text of every matched element, in document order.
func matchBlocks(document, selector string) ([]string, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidSelector, "cannot parse css selector")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceExtractionFailed, "cannot parse html document")
	}

	var blocks []string

	doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, sel.Text())
	})

	return blocks, nil
}

// extract finds the blocks matching the selector and parses the first one as
// a price. Later blocks are not tried even when the first is unparsable; on
// real markup secondary matches are usually unrelated numbers.
func extract(document, selector string) (float64, error) {
	blocks, err := matchBlocks(document, selector)
	if err != nil {
		return 0, err
	}

	if len(blocks) == 0 {
		return 0, domain.NewError(errcodes.PriceNotFound, "no element matches the price selector")
	}

	price, err := parsePrice(blocks[0])
	if err != nil {
		return 0, domain.WrapError(err, errcodes.UnparsablePrice, "matched block holds no parsable number")
	}

	return price, nil
}

// ParsePrice exposes the numeric normalization for tooling that wants to show
// what a matched block would parse to.
func ParsePrice(s string) (float64, error) {
	return parsePrice(s)
}

// parsePrice normalizes a scraped text fragment into a decimal number. Every
// comma becomes a dot, then only digits and the first dot survive; later dots
// are dropped outright, not treated as thousand separators. "1.234.567,89"
// therefore parses as 1.23456789.
func parsePrice(s string) (float64, error) {
	var b strings.Builder

	firstDot := true
	for _, r := range s {
		if r == ',' {
			r = '.'
		}

		switch {
		case r == '.':
			if firstDot {
				firstDot = false
				b.WriteRune(r)
			}
		case unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, err
	}

	return value, nil
}
