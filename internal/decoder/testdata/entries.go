package testdata

import (
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Entries are entries of assortment.json decoded with "Цена продажи" price type.
var Entries = []models.CatalogEntry{
	{
		ExternalID: "7944ef04-f831-11e5-7a69-971500188b19",
		Name:       "Чай зеленый 100 г",
		Type:       models.EntryTypeProduct,
		SalePrice:  lo.ToPtr(decimal.NewFromInt(19990)),
		Stock: models.RawStock{
			Scalar: lo.ToPtr(decimal.NewFromInt(12)),
		},
	},
	{
		ExternalID: "0b5d1b1e-08de-11e6-9464-e4de0000006b",
		Name:       "Футболка (XL, синяя)",
		Type:       models.EntryTypeVariant,
		SalePrice:  lo.ToPtr(decimal.NewFromInt(99900)),
		Stock: models.RawStock{
			ByWarehouse: []models.WarehouseStock{
				{WarehouseID: "a1", Quantity: decimal.RequireFromString("2.5")},
				{WarehouseID: "b2", Quantity: decimal.NewFromInt(-1)},
			},
		},
	},
	{
		ExternalID: "5ad1f6b4-08de-11e6-9464-e4de00000080",
		Name:       "Доставка",
		Type:       models.EntryTypeOther,
		SalePrice:  lo.ToPtr(decimal.NewFromInt(50000)),
	},
	{
		ExternalID: "c02e3a5c-007e-11e6-9464-e4de00000068",
		Name:       "Без цены",
		Type:       models.EntryTypeProduct,
		Stock: models.RawStock{
			Scalar: lo.ToPtr(decimal.Zero),
		},
	},
}
