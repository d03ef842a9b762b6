package stock_test

import (
	"testing"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-feed-sync/internal/stock"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitResolve(t *testing.T) {
	byWarehouse := modelstesting.WithWarehouseStock(
		models.WarehouseStock{WarehouseID: "A", Quantity: decimal.NewFromInt(5)},
		models.WarehouseStock{WarehouseID: "B", Quantity: decimal.NewFromInt(3)},
	)

	tests := map[string]struct {
		entry        models.CatalogEntry
		scope        models.Scope
		wantQuantity decimal.Decimal
		wantOK       bool
	}{
		"all warehouses sums per-warehouse stock": {
			entry:        modelstesting.FakeEntry(byWarehouse),
			scope:        models.ScopeAll,
			wantQuantity: decimal.NewFromInt(8),
			wantOK:       true,
		},
		"single warehouse picks matching quantity": {
			entry:        modelstesting.FakeEntry(byWarehouse),
			scope:        models.SingleWarehouse("B"),
			wantQuantity: decimal.NewFromInt(3),
			wantOK:       true,
		},
		"single warehouse not listed is excluded": {
			entry:  modelstesting.FakeEntry(byWarehouse),
			scope:  models.SingleWarehouse("C"),
			wantOK: false,
		},
		"all warehouses uses scalar stock": {
			entry:        modelstesting.FakeEntry(modelstesting.WithStock(11)),
			scope:        models.ScopeAll,
			wantQuantity: decimal.NewFromInt(11),
			wantOK:       true,
		},
		"single warehouse treats scalar as warehouse stock": {
			entry:        modelstesting.FakeEntry(modelstesting.WithStock(4)),
			scope:        models.SingleWarehouse("A"),
			wantQuantity: decimal.NewFromInt(4),
			wantOK:       true,
		},
		"negative scalar is returned as is": {
			entry:        modelstesting.FakeEntry(modelstesting.WithStock(-2)),
			scope:        models.ScopeAll,
			wantQuantity: decimal.NewFromInt(-2),
			wantOK:       true,
		},
		"fractional quantities are summed exactly": {
			entry: modelstesting.FakeEntry(modelstesting.WithWarehouseStock(
				models.WarehouseStock{WarehouseID: "A", Quantity: decimal.RequireFromString("0.1")},
				models.WarehouseStock{WarehouseID: "B", Quantity: decimal.RequireFromString("0.2")},
			)),
			scope:        models.ScopeAll,
			wantQuantity: decimal.RequireFromString("0.3"),
			wantOK:       true,
		},
		"no stock information": {
			entry:  modelstesting.FakeEntry(func(e *models.CatalogEntry) { e.Stock = models.RawStock{} }),
			scope:  models.ScopeAll,
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			quantity, ok := stock.Resolve(&tt.entry, tt.scope)

			assert.Equal(t, tt.wantOK, ok, "should correctly report if quantity was resolved")
			if tt.wantOK {
				assert.Truef(t, tt.wantQuantity.Equal(quantity),
					"should resolve quantity %s, got %s", tt.wantQuantity, quantity)
			}
		})
	}
}

func TestUnitNewCandidate(t *testing.T) {
	entry := modelstesting.FakeEntry(
		modelstesting.WithStock(7),
		func(e *models.CatalogEntry) { e.SalePrice = lo.ToPtr(decimal.NewFromInt(12345)) },
	)

	candidate := stock.NewCandidate(&entry, models.ScopeAll)

	assert.Equal(t, entry.ExternalID, candidate.ExternalID, "should keep external id")
	assert.Equal(t, entry.Name, candidate.Name, "should keep name")
	assert.True(t, candidate.Resolved, "should resolve quantity")
	assert.True(t, decimal.NewFromInt(7).Equal(candidate.Quantity), "should resolve quantity")
	assert.True(t, decimal.RequireFromString("123.45").Equal(candidate.Price), "should convert price to major units")

	entry.SalePrice = nil
	candidate = stock.NewCandidate(&entry, models.ScopeAll)

	assert.True(t, candidate.Price.IsZero(), "should use zero price when entry has no sale price")
}
