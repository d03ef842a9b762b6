package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	pgmodels "github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/model"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertAccounts is a helper test function to insert accounts.
func InsertAccounts(t *testing.T, exc qrm.Executable, accounts ...pgmodels.Account) {
	t.Helper()

	if len(accounts) == 0 {
		return
	}

	_, err := table.Account.INSERT(table.Account.AllColumns).MODELS(accounts).Exec(exc)
	if err != nil {
		t.Fatal("can't insert accounts", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SyncRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.SyncRun.INSERT(table.SyncRun.AllColumns).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertProducts is a helper test function to insert supplier products.
func InsertProducts(t *testing.T, exc qrm.Executable, products ...pgmodels.SupplierProduct) {
	t.Helper()

	if len(products) == 0 {
		return
	}

	_, err := table.SupplierProduct.INSERT(table.SupplierProduct.AllColumns.Except(table.SupplierProduct.ID)).
		MODELS(products).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert products", err)
	}
}

// GetAccount is a helper test function to get account by id.
func GetAccount(t *testing.T, queryable qrm.Queryable, accountID string) pgmodels.Account {
	t.Helper()

	var account pgmodels.Account
	err := table.Account.SELECT(table.Account.AllColumns).
		WHERE(table.Account.AccountID.EQ(pg.String(accountID))).
		Query(queryable, &account)
	if err != nil {
		t.Fatal("can't get account", err)
	}

	return account
}

// GetRuns is a helper test function to get all runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetRunsBySupplierID is a helper test function to get runs of supplier ordered by id.
func GetRunsBySupplierID(t *testing.T, queryable qrm.Queryable, supplierID string) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.SupplierID.EQ(pg.String(supplierID))).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetProductsBySupplierID is a helper test function to get products of supplier ordered by external id.
func GetProductsBySupplierID(t *testing.T, queryable qrm.Queryable, supplierID string) []pgmodels.SupplierProduct {
	t.Helper()

	products := []pgmodels.SupplierProduct{}
	err := table.SupplierProduct.SELECT(table.SupplierProduct.AllColumns).
		WHERE(table.SupplierProduct.SupplierID.EQ(pg.String(supplierID))).
		ORDER_BY(table.SupplierProduct.ExternalID.ASC()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// CleanupData is a helper test function to delete all stored data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.SupplierProduct.DELETE().WHERE(table.SupplierProduct.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete products data", err)
	}

	_, err = table.SyncRun.DELETE().WHERE(table.SyncRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}

	_, err = table.Account.DELETE().WHERE(table.Account.AccountID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete accounts data", err)
	}
}
