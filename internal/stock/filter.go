package stock

import (
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

// Accepted reports whether candidate becomes a feed product.
// Only resolved products and variants with positive quantity are accepted.
func Accepted(candidate *Candidate) bool {
	if candidate.Type != models.EntryTypeProduct && candidate.Type != models.EntryTypeVariant {
		return false
	}
	return candidate.Resolved && candidate.Quantity.IsPositive()
}

// Filter drops not accepted candidates and converts the rest into aggregated products.
// Output order is not guaranteed.
func Filter(candidates []Candidate) []models.AggregatedProduct {
	accepted := lo.Filter(candidates, func(_ Candidate, ix int) bool {
		return Accepted(&candidates[ix])
	})

	return lo.Map(accepted, func(c Candidate, _ int) models.AggregatedProduct {
		return models.AggregatedProduct{
			ExternalID: c.ExternalID,
			Name:       c.Name,
			Price:      c.Price,
			Quantity:   c.Quantity,
		}
	})
}
