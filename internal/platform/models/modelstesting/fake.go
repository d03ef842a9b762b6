package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakeAccount returns models.Account with fake data and ALL scope.
func FakeAccount(ops ...func(a *models.Account)) models.Account {
	account := models.Account{
		AccountID:  faker.UUIDHyphenated(),
		SupplierID: faker.Word(),
		Token:      faker.Password(),
		Scope:      models.ScopeAll,
	}

	for _, op := range ops {
		op(&account)
	}

	return account
}

// FakeEntry returns product models.CatalogEntry with fake data, fake price and positive scalar stock.
func FakeEntry(ops ...func(e *models.CatalogEntry)) models.CatalogEntry {
	entry := models.CatalogEntry{
		ExternalID: faker.UUIDHyphenated(),
		Name:       faker.Word(),
		Type:       models.EntryTypeProduct,
		SalePrice:  lo.ToPtr(decimal.NewFromInt(rand.Int63n(1_000_000) + 1)),
		Stock: models.RawStock{
			Scalar: lo.ToPtr(decimal.NewFromInt(rand.Int63n(100) + 1)),
		},
	}

	for _, op := range ops {
		op(&entry)
	}

	return entry
}

// FakeRow returns models.SupplierProductRow with fake data.
func FakeRow(ops ...func(r *models.SupplierProductRow)) models.SupplierProductRow {
	price := decimal.NewFromInt(rand.Int63n(100_000)).Shift(-2)
	row := models.SupplierProductRow{
		SupplierID:  faker.Word(),
		ExternalID:  faker.UUIDHyphenated(),
		ProductName: faker.Word(),
		PriceMin:    price,
		PriceMax:    price,
		Stock:       decimal.NewFromInt(rand.Int63n(100) + 1),
	}

	for _, op := range ops {
		op(&row)
	}

	return row
}

// WithStock sets entry's scalar stock.
func WithStock(quantity int64) func(e *models.CatalogEntry) {
	return func(e *models.CatalogEntry) {
		e.Stock = models.RawStock{Scalar: lo.ToPtr(decimal.NewFromInt(quantity))}
	}
}

// WithWarehouseStock sets entry's per-warehouse stock.
func WithWarehouseStock(stocks ...models.WarehouseStock) func(e *models.CatalogEntry) {
	return func(e *models.CatalogEntry) {
		e.Stock = models.RawStock{ByWarehouse: stocks}
	}
}
