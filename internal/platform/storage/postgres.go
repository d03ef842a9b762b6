package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const (
	// DefaultStaleRunAfter is age after which unfinished run no longer blocks new runs of the supplier.
	DefaultStaleRunAfter = time.Hour
	// DefaultInsertBatchSize is max number of products inserted with single statement.
	DefaultInsertBatchSize = 500

	staleRunMessage = "run abandoned before finishing"
)

// Postgres is storage for synchronization runs and supplier products.
type Postgres struct {
	db              *sql.DB
	staleRunAfter   time.Duration
	insertBatchSize int
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...func(p *Postgres)) Postgres {
	p := Postgres{
		db:              db,
		staleRunAfter:   DefaultStaleRunAfter,
		insertBatchSize: DefaultInsertBatchSize,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// StartRun creates new unfinished run of supplier in database and returns it.
// It returns ErrAlreadyRunning if previous run of supplier is not finished yet.
// Unfinished runs older than stale threshold are marked as failed instead.
func (p Postgres) StartRun(ctx context.Context, supplierID, accountID string) (*models.Run, error) {
	run := &models.Run{
		SupplierID: supplierID,
		AccountID:  accountID,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := advisoryLock(ctx, tx, "run:"+supplierID); err != nil {
			return fmt.Errorf("can't lock supplier runs: %w", err)
		}

		lastRun, err := getLastRun(ctx, tx, supplierID)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil {
			abandoned, err := abandonStaleRun(ctx, tx, lastRun.ID, p.staleRunAfter)
			if err != nil {
				return fmt.Errorf("can't finish stale run: %w", err)
			}
			if !abandoned {
				return platform.ErrAlreadyRunning
			}
		}

		newRun := toDBRun(run)
		err = table.SyncRun.INSERT(
			table.SyncRun.SupplierID,
			table.SyncRun.AccountID,
		).
			MODEL(newRun).
			RETURNING(table.SyncRun.ID, table.SyncRun.CreatedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.CreatedAt = newRun.CreatedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.SyncRun.AllColumns.Except(
		table.SyncRun.ID,
		table.SyncRun.CreatedAt,
		table.SyncRun.SupplierID,
		table.SyncRun.AccountID,
	)

	result, err := table.SyncRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.SyncRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("can't update run: run %d not found", run.ID)
	}

	return nil
}

// ReplaceAll replaces all products of supplier with rows in single transaction.
// Readers see either previous or new products of supplier, never a mix.
// It returns number of stored products or *platform.RepositoryWriteError.
func (p Postgres) ReplaceAll(ctx context.Context, supplierID string, rows []models.SupplierProductRow) (int32, error) {
	var stored int64

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := advisoryLock(ctx, tx, "products:"+supplierID); err != nil {
			return fmt.Errorf("can't lock supplier products: %w", err)
		}

		_, err := table.SupplierProduct.DELETE().
			WHERE(table.SupplierProduct.SupplierID.EQ(pg.String(supplierID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete previous products: %w", err)
		}

		for _, chunk := range lo.Chunk(rows, p.insertBatchSize) {
			count, err := insertProducts(ctx, tx, supplierID, chunk)
			if err != nil {
				return fmt.Errorf("can't insert products: %w", err)
			}
			stored += count
		}

		return nil
	})
	if err != nil {
		return 0, &platform.RepositoryWriteError{SupplierID: supplierID, Err: err}
	}

	return int32(stored), nil
}

// Products returns stored products of supplier ordered by external id.
func (p Postgres) Products(ctx context.Context, supplierID string) ([]models.SupplierProductRow, error) {
	var products []pgmodels.SupplierProduct
	err := table.SupplierProduct.SELECT(table.SupplierProduct.AllColumns).
		WHERE(table.SupplierProduct.SupplierID.EQ(pg.String(supplierID))).
		ORDER_BY(table.SupplierProduct.ExternalID.ASC()).
		QueryContext(ctx, p.db, &products)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get supplier products: %w", err)
	}

	return lo.Map(products, func(_ pgmodels.SupplierProduct, ix int) models.SupplierProductRow {
		return *ToAppProduct(&products[ix])
	}), nil
}

func insertProducts(ctx context.Context, db qrm.DB, supplierID string, rows []models.SupplierProductRow) (int64, error) {
	dbProducts := make([]pgmodels.SupplierProduct, 0, len(rows))
	for ix := range rows {
		product := ToDBProduct(&rows[ix])
		product.SupplierID = supplierID
		dbProducts = append(dbProducts, *product)
	}

	result, err := table.SupplierProduct.INSERT(table.SupplierProduct.AllColumns.Except(table.SupplierProduct.ID)).
		MODELS(dbProducts).
		ExecContext(ctx, db)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func getLastRun(ctx context.Context, db qrm.DB, supplierID string) (*pgmodels.SyncRun, error) {
	var run pgmodels.SyncRun
	err := table.SyncRun.SELECT(
		table.SyncRun.ID,
		table.SyncRun.CreatedAt,
		table.SyncRun.FinishedAt,
		table.SyncRun.Success,
	).
		WHERE(table.SyncRun.SupplierID.EQ(pg.String(supplierID))).
		ORDER_BY(table.SyncRun.CreatedAt.DESC(), table.SyncRun.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// abandonStaleRun marks run as failed if it was created more than staleAfter ago.
// Age is measured with database clock, the same one which set created_at.
func abandonStaleRun(ctx context.Context, db qrm.DB, runID int32, staleAfter time.Duration) (bool, error) {
	result, err := table.SyncRun.UPDATE().
		SET(
			table.SyncRun.FinishedAt.SET(pg.NOW()),
			table.SyncRun.Success.SET(pg.Bool(false)),
			table.SyncRun.StatusMessage.SET(pg.String(staleRunMessage)),
		).
		WHERE(
			table.SyncRun.ID.EQ(pg.Int32(runID)).
				AND(table.SyncRun.CreatedAt.LT_EQ(pg.NOW().SUB(pg.INTERVALd(staleAfter)))),
		).
		ExecContext(ctx, db)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// advisoryLock takes transaction scoped lock on key, released on commit or rollback.
func advisoryLock(ctx context.Context, db qrm.DB, key string) error {
	_, err := pg.RawStatement(
		"SELECT pg_advisory_xact_lock(hashtext(#key))",
		pg.RawArgs{"#key": key},
	).ExecContext(ctx, db)

	return err
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

// WithStaleRunAfter sets age after which unfinished run no longer blocks new runs.
func WithStaleRunAfter(d time.Duration) func(p *Postgres) {
	return func(p *Postgres) {
		if d > 0 {
			p.staleRunAfter = d
		}
	}
}

// WithInsertBatchSize sets max number of products inserted with single statement.
func WithInsertBatchSize(size int) func(p *Postgres) {
	return func(p *Postgres) {
		if size > 0 {
			p.insertBatchSize = size
		}
	}
}
