package formatter

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"productsearch/internal/models"
)

// NoPrice is shown for products without a price.
const NoPrice = "-"

// PriceText returns the price as given by the backend, or NoPrice.
func PriceText(p models.NormalizedProduct) string {
	if strings.TrimSpace(p.Price) == "" {
		return NoPrice
	}

	return p.Price
}

// RatingText renders the rating against its ceiling, e.g. "4.5/5".
func RatingText(p models.NormalizedProduct) string {
	return trimFloat(p.Rating) + "/" + trimFloat(p.MaxRating)
}

// ReviewsText renders the review count with thousands separators.
func ReviewsText(p models.NormalizedProduct) string {
	return message.NewPrinter(language.English).Sprintf("%d", p.Reviews)
}

// StockText renders availability.
func StockText(p models.NormalizedProduct) string {
	if p.InStock {
		return "in stock"
	}

	return "out of stock"
}

// Summary describes how many products were shown and dropped.
func Summary(results *models.SearchResults) string {
	noun := "products"
	if len(results.Products) == 1 {
		noun = "product"
	}

	s := strconv.Itoa(len(results.Products)) + " " + noun
	if results.Dropped > 0 {
		s += " (" + strconv.Itoa(results.Dropped) + " unusable records dropped)"
	}

	return s
}

// trimFloat prints at most two decimals without trailing zeros.
func trimFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
