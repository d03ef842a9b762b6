package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is catalog object kind.
type EntryType string

// Catalog object kinds accepted by the feed. Everything else is EntryTypeOther.
const (
	EntryTypeProduct EntryType = "product"
	EntryTypeVariant EntryType = "variant"
	EntryTypeOther   EntryType = "other"
)

// Scope selects which warehouses contribute to product stock.
type Scope struct {
	All         bool
	WarehouseID string
}

// ScopeAll is scope summing stock of all warehouses.
var ScopeAll = Scope{All: true}

// SingleWarehouse returns scope restricted to one warehouse.
func SingleWarehouse(warehouseID string) Scope {
	return Scope{WarehouseID: warehouseID}
}

// String returns stored representation of scope.
func (s Scope) String() string {
	if s.All {
		return "ALL"
	}
	return s.WarehouseID
}

// Account is catalog API account linked to a supplier.
type Account struct {
	AccountID  string
	SupplierID string
	Token      string
	Scope      Scope
}

// Store is catalog API warehouse.
type Store struct {
	ID       string
	Name     string
	Archived bool
}

// SecurityContext is catalog API token introspection result.
type SecurityContext struct {
	EmployeeID   string
	EmployeeName string
	AccountID    string
}

// WarehouseStock is quantity of entry in one warehouse.
type WarehouseStock struct {
	WarehouseID string
	Quantity    decimal.Decimal
}

// RawStock is stock as reported by catalog API: either scalar quantity or per-warehouse list.
// Both fields are empty when the entry carries no stock information.
type RawStock struct {
	Scalar      *decimal.Decimal
	ByWarehouse []WarehouseStock
}

// CatalogEntry is single assortment row fetched from catalog API.
type CatalogEntry struct {
	ExternalID string
	Name       string
	Type       EntryType
	// SalePrice is price in minor currency units, nil when entry has no sale price.
	SalePrice *decimal.Decimal
	Stock     RawStock
}

// ParsingResult contains decoded catalog entry with decoding error if there is any.
type ParsingResult struct {
	Entry CatalogEntry
	Error error
}

// AggregatedProduct is catalog product with resolved positive stock.
type AggregatedProduct struct {
	ExternalID string
	Name       string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
}

// SupplierProductRow is product row of supplier's marketplace feed.
type SupplierProductRow struct {
	SupplierID  string
	ExternalID  string
	ProductName string
	PriceMin    decimal.Decimal
	PriceMax    decimal.Decimal
	Stock       decimal.Decimal
	UpdatedAt   time.Time
}

// Run is synchronization run model.
type Run struct {
	ID             int
	SupplierID     string
	AccountID      string
	CreatedAt      time.Time
	FinishedAt     *time.Time
	IsSuccess      *bool
	StatusMessage  *string
	ErrorKind      *string
	FetchedEntries *int32
	SkippedEntries *int32
	StoredProducts *int32
}
