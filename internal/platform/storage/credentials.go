package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Credentials is account credential store backed by postgres.
type Credentials struct {
	db *sql.DB
}

// NewCredentials returns new Credentials.
func NewCredentials(db *sql.DB) Credentials {
	return Credentials{db: db}
}

// Get returns account with its access token and warehouse scope.
// It returns ErrCredentialMissing when account or its token doesn't exist
// and ErrAccountNotLinked when account has no supplier.
func (c Credentials) Get(ctx context.Context, accountID string) (*models.Account, error) {
	var account pgmodels.Account
	err := table.Account.SELECT(table.Account.AllColumns).
		WHERE(table.Account.AccountID.EQ(pg.String(accountID))).
		QueryContext(ctx, c.db, &account)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrCredentialMissing
	}
	if err != nil {
		return nil, fmt.Errorf("can't get account %s: %w", accountID, err)
	}

	result := toAppAccount(&account)
	if result.Token == "" {
		return nil, platform.ErrCredentialMissing
	}
	if result.SupplierID == "" {
		return nil, platform.ErrAccountNotLinked
	}

	return result, nil
}

// ListAccounts returns ids of all stored accounts ordered by id.
func (c Credentials) ListAccounts(ctx context.Context) ([]string, error) {
	var accounts []pgmodels.Account
	err := table.Account.SELECT(table.Account.AccountID).
		ORDER_BY(table.Account.AccountID.ASC()).
		QueryContext(ctx, c.db, &accounts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't list accounts: %w", err)
	}

	return lo.Map(accounts, func(account pgmodels.Account, _ int) string {
		return account.AccountID
	}), nil
}

// MarkReauthRequired flags account whose access token was rejected.
func (c Credentials) MarkReauthRequired(ctx context.Context, accountID string) error {
	_, err := table.Account.UPDATE().
		SET(
			table.Account.NeedsReauth.SET(pg.Bool(true)),
			table.Account.UpdatedAt.SET(pg.NOW()),
		).
		WHERE(table.Account.AccountID.EQ(pg.String(accountID))).
		ExecContext(ctx, c.db)
	if err != nil {
		return fmt.Errorf("can't mark account %s for reauthorization: %w", accountID, err)
	}

	return nil
}

// SaveAccount upserts account with its credentials and clears reauthorization flag.
func (c Credentials) SaveAccount(ctx context.Context, account *models.Account) error {
	dbAccount := pgmodels.Account{
		AccountID:      account.AccountID,
		AccessToken:    lo.EmptyableToPtr(account.Token),
		WarehouseScope: ToDBScope(account.Scope),
		SupplierID:     lo.EmptyableToPtr(account.SupplierID),
	}

	columnList := table.Account.AllColumns.Except(table.Account.AccountName, table.Account.UpdatedAt)
	_, err := table.Account.INSERT(columnList).
		MODEL(dbAccount).
		ON_CONFLICT(table.Account.AccountID).
		DO_UPDATE(
			pg.SET(
				table.Account.AccessToken.SET(table.Account.EXCLUDED.AccessToken),
				table.Account.WarehouseScope.SET(table.Account.EXCLUDED.WarehouseScope),
				table.Account.SupplierID.SET(table.Account.EXCLUDED.SupplierID),
				table.Account.NeedsReauth.SET(table.Account.EXCLUDED.NeedsReauth),
				table.Account.UpdatedAt.SET(pg.NOW()),
			),
		).
		ExecContext(ctx, c.db)
	if err != nil {
		return fmt.Errorf("can't save account %s: %w", account.AccountID, err)
	}

	return nil
}
