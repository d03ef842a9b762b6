package stock

import (
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// minorUnitsExponent converts prices in minor currency units (kopecks, cents) to major units.
const minorUnitsExponent = -2

// Candidate is catalog entry with resolved quantity, waiting for aggregation and filtering.
type Candidate struct {
	ExternalID string
	Name       string
	Type       models.EntryType
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	// Resolved is false when quantity couldn't be determined for the scope.
	Resolved bool
}

// NewCandidate resolves entry's quantity for scope and converts its price to major units.
func NewCandidate(entry *models.CatalogEntry, scope models.Scope) Candidate {
	quantity, ok := Resolve(entry, scope)

	price := decimal.Zero
	if entry.SalePrice != nil {
		price = entry.SalePrice.Shift(minorUnitsExponent)
	}

	return Candidate{
		ExternalID: entry.ExternalID,
		Name:       entry.Name,
		Type:       entry.Type,
		Price:      price,
		Quantity:   quantity,
		Resolved:   ok,
	}
}

// Resolve derives single quantity of entry for provided scope.
// It returns false when quantity can't be determined and entry should be excluded.
//
// For ALL scope scalar stock is used as is, per-warehouse stock is summed.
// For single warehouse scope matching per-warehouse quantity is used; scalar stock is treated
// as quantity of that warehouse because fetcher narrows the query to it.
func Resolve(entry *models.CatalogEntry, scope models.Scope) (decimal.Decimal, bool) {
	raw := entry.Stock

	if scope.All {
		if raw.Scalar != nil {
			return *raw.Scalar, true
		}
		if len(raw.ByWarehouse) == 0 {
			return decimal.Zero, false
		}
		sum := decimal.Zero
		for ix := range raw.ByWarehouse {
			sum = sum.Add(raw.ByWarehouse[ix].Quantity)
		}
		return sum, true
	}

	if len(raw.ByWarehouse) > 0 {
		for ix := range raw.ByWarehouse {
			if raw.ByWarehouse[ix].WarehouseID == scope.WarehouseID {
				return raw.ByWarehouse[ix].Quantity, true
			}
		}
		return decimal.Zero, false
	}

	if raw.Scalar != nil {
		return *raw.Scalar, true
	}

	return decimal.Zero, false
}
