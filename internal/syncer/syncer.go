package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/internal/catalog"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/stock"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name CredentialStore --filename credential_store.go
//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name Storage --filename storage.go

// Strategy is the way per-warehouse stock is fetched from catalog API.
type Strategy string

const (
	// StrategyEmbedded fetches assortment once with stock embedded in entries.
	StrategyEmbedded Strategy = "embedded"
	// StrategyPerWarehouse fetches assortment once per warehouse and sums the results.
	StrategyPerWarehouse Strategy = "per_warehouse"
)

// ParseStrategy returns Strategy named s.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyEmbedded, StrategyPerWarehouse:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown stock strategy %q", s)
	}
}

// CredentialStore stores catalog API accounts.
type CredentialStore interface {
	// Get returns account with its token and scope.
	Get(ctx context.Context, accountID string) (*models.Account, error)
	// ListAccounts returns ids of all accounts to synchronize.
	ListAccounts(ctx context.Context) ([]string, error)
	// MarkReauthRequired flags account whose token was rejected by catalog API.
	MarkReauthRequired(ctx context.Context, accountID string) error
}

// Catalog fetches account's data from catalog API.
type Catalog interface {
	FetchAssortmentPage(
		ctx context.Context,
		token string,
		query catalog.AssortmentQuery,
		offset int,
	) ([]json.RawMessage, error)
	ListStores(ctx context.Context, token string) ([]models.Store, error)
	SecurityContext(ctx context.Context, token string) (*models.SecurityContext, error)
}

// Decoder decodes raw assortment rows into parsing results.
type Decoder interface {
	Decode(context.Context, []json.RawMessage, chan<- models.ParsingResult) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
	// Since returns time elapsed since start.
	Since(start time.Time) time.Duration
}

// Storage is supplier products and runs storage.
type Storage interface {
	// StartRun creates new run if there is no unfinished run for provided supplier.
	StartRun(ctx context.Context, supplierID, accountID string) (run *models.Run, err error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
	// ReplaceAll atomically replaces all products of supplier with rows.
	// Returns number of stored products.
	ReplaceAll(ctx context.Context, supplierID string, rows []models.SupplierProductRow) (int32, error)
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer synchronizes supplier products with catalog API accounts.
type Syncer struct {
	credentials CredentialStore
	catalog     Catalog
	decoder     Decoder
	storage     Storage
	clock       Clock
	logger      *zerolog.Logger
	strategy    Strategy
	tokenCheck  bool
	concurrency int
	locks       *supplierLocks
}

// NewSyncer returns new Syncer.
func NewSyncer(
	credentials CredentialStore,
	catalogAPI Catalog,
	decoder Decoder,
	storage Storage,
	ops ...Option,
) *Syncer {
	nop := zerolog.Nop()
	s := &Syncer{
		credentials: credentials,
		catalog:     catalogAPI,
		decoder:     decoder,
		storage:     storage,
		clock:       systemClock{},
		logger:      &nop,
		strategy:    StrategyEmbedded,
		concurrency: 8,
		locks:       newSupplierLocks(),
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// syncError is account synchronization failure of known kind.
type syncError struct {
	kind models.ErrorKind
	err  error
}

func (e *syncError) Error() string {
	return e.err.Error()
}

func (e *syncError) Unwrap() error {
	return e.err
}

func fail(kind models.ErrorKind, err error) error {
	return &syncError{kind: kind, err: err}
}

// kindOf returns kind of synchronization failure.
func kindOf(err error) models.ErrorKind {
	var se *syncError
	if errors.As(err, &se) {
		return se.kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.KindCanceled
	}
	return models.KindFetch
}

// fetchPass is single paginated walk over account's assortment.
type fetchPass struct {
	query catalog.AssortmentQuery
	scope models.Scope
}

// SyncAccount synchronizes products of account's supplier.
// It never returns error; failure is described by returned outcome.
func (s *Syncer) SyncAccount(ctx context.Context, accountID string) models.Outcome {
	start := *s.clock.Now()
	outcome := models.Outcome{
		AccountID: accountID,
		State:     models.StateLoadCredentials,
	}

	err := s.syncAccount(ctx, &outcome)
	outcome.Duration = s.clock.Since(start)

	logger := s.logger.With().
		Str("accountId", outcome.AccountID).
		Str("supplierId", outcome.SupplierID).
		Logger()

	if err != nil {
		outcome.FailedAt = outcome.State
		outcome.State = models.StateFailed
		outcome.Kind = kindOf(err)
		outcome.Error = err.Error()

		logger.Warn().
			Err(err).
			Str("errorKind", string(outcome.Kind)).
			Str("failedAt", string(outcome.FailedAt)).
			Msg("synchronization failed")

		return outcome
	}

	outcome.State = models.StateDone

	logger.Info().
		Int("fetchedEntries", outcome.FetchedEntries).
		Int("skippedEntries", outcome.SkippedEntries).
		Int("storedProducts", outcome.StoredProducts).
		Dur("duration", outcome.Duration).
		Msg("synchronization finished")

	return outcome
}

func (s *Syncer) syncAccount(ctx context.Context, outcome *models.Outcome) error {
	// load credentials.
	account, err := s.loadAccount(ctx, outcome.AccountID)
	if err != nil {
		return err
	}
	outcome.SupplierID = account.SupplierID

	if s.tokenCheck {
		if err := s.checkToken(ctx, account); err != nil {
			return err
		}
	}

	// only one synchronization of supplier at once.
	unlock, err := s.locks.lock(ctx, account.SupplierID)
	if err != nil {
		return fail(models.KindCanceled, fmt.Errorf("can't lock supplier: %w", err))
	}
	defer unlock()

	run, err := s.storage.StartRun(ctx, account.SupplierID, account.AccountID)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return fail(models.KindAlreadyRunning, fmt.Errorf("can't start run: %w", err))
		}
		return fail(models.KindRepositoryWrite, fmt.Errorf("can't start run: %w", err))
	}

	err = s.replaceProducts(ctx, account, outcome)

	return s.finishRun(ctx, run, outcome, err)
}

func (s *Syncer) loadAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.credentials.Get(ctx, accountID)
	switch {
	case err == nil && account.Token == "":
		err = platform.ErrCredentialMissing
	case err == nil && account.SupplierID == "":
		err = platform.ErrAccountNotLinked
	}
	if err == nil {
		return account, nil
	}

	err = fmt.Errorf("can't load credentials: %w", err)
	switch {
	case ctx.Err() != nil:
		return nil, fail(models.KindCanceled, err)
	case errors.Is(err, platform.ErrCredentialMissing):
		return nil, fail(models.KindCredentialMissing, err)
	case errors.Is(err, platform.ErrAccountNotLinked):
		return nil, fail(models.KindNotLinked, err)
	default:
		return nil, fail(models.KindCredentialStore, err)
	}
}

// checkToken asks catalog API who owns the token before fetching anything.
func (s *Syncer) checkToken(ctx context.Context, account *models.Account) error {
	sc, err := s.catalog.SecurityContext(ctx, account.Token)
	if err != nil {
		return s.fetchFailed(ctx, account, fmt.Errorf("can't check token: %w", err))
	}

	s.logger.Debug().
		Str("accountId", account.AccountID).
		Str("employee", sc.EmployeeName).
		Msg("token checked")

	return nil
}

func (s *Syncer) replaceProducts(ctx context.Context, account *models.Account, outcome *models.Outcome) error {
	// fetch assortment, resolve and aggregate stock.
	outcome.State = models.StateFetch
	candidates, err := s.fetchCandidates(ctx, account, outcome)
	if err != nil {
		return err
	}

	// drop products without stock.
	outcome.State = models.StateFilter
	products := stock.Filter(candidates)

	// build rows.
	outcome.State = models.StateStage
	rows := s.stage(account.SupplierID, products)

	if err := ctx.Err(); err != nil {
		return fail(models.KindCanceled, fmt.Errorf("synchronization canceled before swap: %w", err))
	}

	// swap supplier products.
	outcome.State = models.StateSwap
	stored, err := s.storage.ReplaceAll(ctx, account.SupplierID, rows)
	if err != nil {
		if ctx.Err() != nil {
			return fail(models.KindCanceled, fmt.Errorf("can't replace products: %w", err))
		}
		return fail(models.KindRepositoryWrite, fmt.Errorf("can't replace products: %w", err))
	}
	outcome.StoredProducts = int(stored)

	return nil
}

func (s *Syncer) fetchCandidates(
	ctx context.Context,
	account *models.Account,
	outcome *models.Outcome,
) ([]stock.Candidate, error) {
	passes, err := s.passes(ctx, account)
	if err != nil {
		return nil, s.fetchFailed(ctx, account, err)
	}

	agg := stock.NewAggregator()
	for _, pass := range passes {
		if err := s.runPass(ctx, account, pass, agg, outcome); err != nil {
			return nil, s.fetchFailed(ctx, account, err)
		}
	}

	outcome.State = models.StateResolveAggregate

	return agg.Candidates(), nil
}

// passes returns assortment walks needed to resolve account's stock with configured strategy.
func (s *Syncer) passes(ctx context.Context, account *models.Account) ([]fetchPass, error) {
	if s.strategy != StrategyPerWarehouse {
		pass := fetchPass{scope: account.Scope}
		if !account.Scope.All {
			pass.query.StoreID = account.Scope.WarehouseID
		}
		return []fetchPass{pass}, nil
	}

	stores, err := s.catalog.ListStores(ctx, account.Token)
	if err != nil {
		return nil, fmt.Errorf("can't list stores: %w", err)
	}

	stores = lo.Filter(stores, func(store models.Store, _ int) bool {
		if store.Archived {
			return false
		}
		return account.Scope.All || store.ID == account.Scope.WarehouseID
	})

	return lo.Map(stores, func(store models.Store, _ int) fetchPass {
		return fetchPass{
			query: catalog.AssortmentQuery{StoreID: store.ID},
			scope: models.SingleWarehouse(store.ID),
		}
	}), nil
}

// runPass fetches and decodes all pages of pass, adding resolved candidates to agg.
// Entries repeated within one pass are taken once.
func (s *Syncer) runPass(
	ctx context.Context,
	account *models.Account,
	pass fetchPass,
	agg *stock.Aggregator,
	outcome *models.Outcome,
) error {
	results := make(chan models.ParsingResult)
	errGroup, egCtx := errgroup.WithContext(ctx)

	// fetch and decode pages.
	errGroup.Go(func() error {
		defer close(results)

		pager := catalog.NewPager(s.catalog, account.Token, pass.query)
		for !pager.Done() {
			rows, err := pager.Next(egCtx)
			if err != nil {
				return err
			}
			if err := s.decoder.Decode(egCtx, rows, results); err != nil {
				return fmt.Errorf("can't decode assortment page: %w", err)
			}
		}

		return nil
	})

	// resolve and aggregate entries.
	errGroup.Go(func() error {
		seen := make(map[string]struct{})
		for result := range results {
			if result.Error != nil {
				outcome.SkippedEntries++
				s.logger.Debug().
					Err(result.Error).
					Str("accountId", account.AccountID).
					Msg("skipping malformed entry")
				continue
			}

			outcome.FetchedEntries++
			if _, ok := seen[result.Entry.ExternalID]; ok {
				continue
			}
			seen[result.Entry.ExternalID] = struct{}{}

			agg.Add(stock.NewCandidate(&result.Entry, pass.scope))
		}

		return nil
	})

	return errGroup.Wait()
}

// fetchFailed classifies catalog API failure. Accounts with rejected token are marked for reauthorization.
func (s *Syncer) fetchFailed(ctx context.Context, account *models.Account, err error) error {
	switch {
	case ctx.Err() != nil:
		return fail(models.KindCanceled, err)
	case catalog.IsAuthError(err):
		if markErr := s.credentials.MarkReauthRequired(ctx, account.AccountID); markErr != nil {
			s.logger.Error().
				Err(markErr).
				Str("accountId", account.AccountID).
				Msg("can't mark account for reauthorization")
		}
		return fail(models.KindAuth, err)
	default:
		return fail(models.KindFetch, err)
	}
}

func (s *Syncer) stage(supplierID string, products []models.AggregatedProduct) []models.SupplierProductRow {
	now := *s.clock.Now()

	return lo.Map(products, func(p models.AggregatedProduct, _ int) models.SupplierProductRow {
		return models.SupplierProductRow{
			SupplierID:  supplierID,
			ExternalID:  p.ExternalID,
			ProductName: p.Name,
			PriceMin:    p.Price,
			PriceMax:    p.Price,
			Stock:       p.Quantity,
			UpdatedAt:   now,
		}
	})
}

func (s *Syncer) finishRun(ctx context.Context, run *models.Run, outcome *models.Outcome, status error) error {
	run.FetchedEntries = lo.ToPtr(int32(outcome.FetchedEntries))
	run.SkippedEntries = lo.ToPtr(int32(outcome.SkippedEntries))
	run.StoredProducts = lo.ToPtr(int32(outcome.StoredProducts))
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
		run.ErrorKind = lo.ToPtr(string(kindOf(status)))
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = s.clock.Now()

	// canceled runs are still recorded.
	err := s.storage.FinishRun(context.WithoutCancel(ctx), run)
	if err != nil && status == nil {
		return fail(models.KindRepositoryWrite, fmt.Errorf("can't finish run: %w", err))
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed run: %w (fail reason: %w)", err, status)
	}

	return status
}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// WithLogger sets Syncer's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// WithStrategy sets the way per-warehouse stock is fetched.
func WithStrategy(strategy Strategy) Option {
	return func(s *Syncer) {
		s.strategy = strategy
	}
}

// WithTokenCheck makes Syncer check account's token with catalog API before fetching assortment.
func WithTokenCheck(enabled bool) Option {
	return func(s *Syncer) {
		s.tokenCheck = enabled
	}
}

// WithConcurrency sets number of accounts synchronized at once by RunBatch.
func WithConcurrency(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}
