package usecase

import (
	"regexp"
	"strconv"
)

// nonPriceCharsRegex strips currency symbols, thousands separators and
// whitespace, leaving digits and the decimal point.
var nonPriceCharsRegex = regexp.MustCompile(`[^0-9.]`)

// ParsePrice extracts a numeric price from a loosely formatted price string
// such as "$1,234.56" or "USD 49". It never fails: an empty or unparsable
// string yields 0, the universal sentinel for "no usable price".
func ParsePrice(raw string) float64 {
	cleaned := nonPriceCharsRegex.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if price < 0 {
		return 0
	}
	return price
}
