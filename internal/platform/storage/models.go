package storage

import (
	"strings"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/model"
)

//go:generate jet -dsn=${DATABASE_URL} -schema=public -path=./gen

// scopeAll is stored warehouse scope of accounts summing stock of all warehouses.
const scopeAll = "ALL"

func toDBRun(run *models.Run) *pgmodels.SyncRun {
	return &pgmodels.SyncRun{
		ID:             int32(run.ID),
		SupplierID:     run.SupplierID,
		AccountID:      run.AccountID,
		CreatedAt:      run.CreatedAt,
		FinishedAt:     run.FinishedAt,
		Success:        run.IsSuccess,
		StatusMessage:  run.StatusMessage,
		ErrorKind:      run.ErrorKind,
		FetchedEntries: run.FetchedEntries,
		SkippedEntries: run.SkippedEntries,
		StoredProducts: run.StoredProducts,
	}
}

// ToAppRun converts postgres sync run model into models.Run.
func ToAppRun(run *pgmodels.SyncRun) *models.Run {
	return &models.Run{
		ID:             int(run.ID),
		SupplierID:     run.SupplierID,
		AccountID:      run.AccountID,
		CreatedAt:      run.CreatedAt,
		FinishedAt:     run.FinishedAt,
		IsSuccess:      run.Success,
		StatusMessage:  run.StatusMessage,
		ErrorKind:      run.ErrorKind,
		FetchedEntries: run.FetchedEntries,
		SkippedEntries: run.SkippedEntries,
		StoredProducts: run.StoredProducts,
	}
}

// ToDBProduct converts models.SupplierProductRow into postgres supplier product model.
func ToDBProduct(row *models.SupplierProductRow) *pgmodels.SupplierProduct {
	return &pgmodels.SupplierProduct{
		SupplierID:  row.SupplierID,
		ExternalID:  row.ExternalID,
		ProductName: row.ProductName,
		PriceMin:    row.PriceMin,
		PriceMax:    row.PriceMax,
		Stock:       row.Stock,
		UpdatedAt:   row.UpdatedAt,
	}
}

// ToAppProduct converts postgres supplier product model into models.SupplierProductRow.
func ToAppProduct(product *pgmodels.SupplierProduct) *models.SupplierProductRow {
	return &models.SupplierProductRow{
		SupplierID:  product.SupplierID,
		ExternalID:  product.ExternalID,
		ProductName: product.ProductName,
		PriceMin:    product.PriceMin,
		PriceMax:    product.PriceMax,
		Stock:       product.Stock,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toAppAccount(account *pgmodels.Account) *models.Account {
	return &models.Account{
		AccountID:  account.AccountID,
		SupplierID: strings.TrimSpace(lo.FromPtr(account.SupplierID)),
		Token:      strings.TrimSpace(lo.FromPtr(account.AccessToken)),
		Scope:      toAppScope(account.WarehouseScope),
	}
}

func toAppScope(scope string) models.Scope {
	scope = strings.TrimSpace(scope)
	if scope == "" || strings.EqualFold(scope, scopeAll) {
		return models.ScopeAll
	}
	return models.SingleWarehouse(scope)
}

// ToDBScope converts models.Scope into stored warehouse scope.
func ToDBScope(scope models.Scope) string {
	if scope.All {
		return scopeAll
	}
	return scope.WarehouseID
}
