package decoder

import (
	"fmt"
	"path"
	"strings"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// Entry is model for assortment rows returned by catalog API.
type Entry struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Meta         Meta             `json:"meta"`
	SalePrices   []SalePrice      `json:"salePrices"`
	Stock        *decimal.Decimal `json:"stock"`
	StockByStore []StoreStock     `json:"stockByStore"`
}

// Meta is catalog API object metadata.
type Meta struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

// SalePrice is entry price of one price type. Value is in minor currency units.
type SalePrice struct {
	Value     decimal.Decimal `json:"value"`
	PriceType struct {
		Name string `json:"name"`
	} `json:"priceType"`
}

// StoreStock is entry stock in one warehouse.
type StoreStock struct {
	Meta  Meta            `json:"meta"`
	ID    string          `json:"id"`
	Stock decimal.Decimal `json:"stock"`
}

func (s *StoreStock) warehouseID() string {
	if s.ID != "" {
		return s.ID
	}
	if s.Meta.Href == "" {
		return ""
	}
	return path.Base(strings.TrimRight(s.Meta.Href, "/"))
}

func toAppEntry(entry *Entry, priceType string) (*models.CatalogEntry, error) {
	if entry.ID == "" {
		return nil, fmt.Errorf("%w: entry has no id", platform.ErrSchema)
	}

	stock, err := toAppStock(entry)
	if err != nil {
		return nil, err
	}

	return &models.CatalogEntry{
		ExternalID: entry.ID,
		Name:       strings.TrimSpace(entry.Name),
		Type:       toEntryType(entry.Meta.Type),
		SalePrice:  pickSalePrice(entry.SalePrices, priceType),
		Stock:      stock,
	}, nil
}

func toEntryType(metaType string) models.EntryType {
	switch models.EntryType(metaType) {
	case models.EntryTypeProduct:
		return models.EntryTypeProduct
	case models.EntryTypeVariant:
		return models.EntryTypeVariant
	default:
		return models.EntryTypeOther
	}
}

// pickSalePrice returns value of price named priceType, or of the first price when there's no such price.
func pickSalePrice(prices []SalePrice, priceType string) *decimal.Decimal {
	if len(prices) == 0 {
		return nil
	}

	if priceType != "" {
		for ix := range prices {
			if prices[ix].PriceType.Name == priceType {
				return &prices[ix].Value
			}
		}
	}

	return &prices[0].Value
}

func toAppStock(entry *Entry) (models.RawStock, error) {
	if entry.StockByStore == nil {
		return models.RawStock{Scalar: entry.Stock}, nil
	}

	byWarehouse := make([]models.WarehouseStock, 0, len(entry.StockByStore))
	for ix := range entry.StockByStore {
		warehouseID := entry.StockByStore[ix].warehouseID()
		if warehouseID == "" {
			return models.RawStock{}, fmt.Errorf("%w: stock of entry %s has no warehouse", platform.ErrSchema, entry.ID)
		}
		byWarehouse = append(byWarehouse, models.WarehouseStock{
			WarehouseID: warehouseID,
			Quantity:    entry.StockByStore[ix].Stock,
		})
	}

	return models.RawStock{
		Scalar:      entry.Stock,
		ByWarehouse: byWarehouse,
	}, nil
}
