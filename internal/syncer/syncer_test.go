package syncer_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/internal/catalog"
	"github.com/MichalMitros/catalog-feed-sync/internal/catalog/catalogtesting"
	"github.com/MichalMitros/catalog-feed-sync/internal/decoder"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-feed-sync/internal/syncer"
	"github.com/MichalMitros/catalog-feed-sync/internal/syncer/mocks"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	loc = func() *time.Location {
		loc, err := time.LoadLocation("Etc/UTC")
		if err != nil {
			panic(err)
		}
		return loc
	}()
	createdAt = time.Date(2020, time.April, 1, 1, 1, 1, 0, loc)
	now       = time.Date(2022, time.April, 1, 1, 1, 1, 0, loc)
	elapsed   = 3 * time.Second
	// assortment is single page of assortment rows. Only rows "1" and "4" become products.
	assortment = []json.RawMessage{
		catalogtesting.ProductRow("1", "one", 12345, 5),
		catalogtesting.ProductRow("2", "two", 100, 0),
		catalogtesting.Row("3", "delivery", "service", 100, map[string]any{"stock": 10}),
		json.RawMessage(`{"id": 12}`),
		catalogtesting.ProductRowByStore("4", "four", 200,
			catalogtesting.StoreStock{StoreID: "A", Stock: 1},
			catalogtesting.StoreStock{StoreID: "B", Stock: 2},
		),
	}
	wantAssortmentRows = []rowView{
		{ExternalID: "1", Name: "one", PriceMin: "123.45", PriceMax: "123.45", Stock: "5"},
		{ExternalID: "4", Name: "four", PriceMin: "2", PriceMax: "2", Stock: "3"},
	}
	unauthorized = &catalog.FetchError{Status: http.StatusUnauthorized, Body: "token expired"}
)

func TestUnitSyncAccount(t *testing.T) {
	account := modelstesting.FakeAccount()
	run := newRun(&account)

	credentials := mocks.NewCredentialStore(t)
	catalogAPI := mocks.NewCatalog(t)
	storage := mocks.NewStorage(t)

	mockCredentialsGet(credentials, &account, nil)
	mockStorageStartRun(storage, &account, run, nil)
	mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, 0, assortment, nil)
	stored := mockStorageReplaceAll(storage, account.SupplierID, nil)
	mockStorageFinishRun(storage, run, nil)

	outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

	assert.Equal(t, models.Outcome{
		AccountID:      account.AccountID,
		SupplierID:     account.SupplierID,
		State:          models.StateDone,
		FetchedEntries: 4,
		SkippedEntries: 1,
		StoredProducts: 2,
		Duration:       elapsed,
	}, outcome, "should return correct outcome")
	assert.ElementsMatch(t, wantAssortmentRows, views(*stored), "should store only products with stock")
	for _, row := range *stored {
		assert.Equal(t, account.SupplierID, row.SupplierID, "rows should belong to supplier")
		assert.Equal(t, now, row.UpdatedAt, "rows should have update time")
	}

	assert.Equal(t, &models.Run{
		ID:             run.ID,
		SupplierID:     account.SupplierID,
		AccountID:      account.AccountID,
		CreatedAt:      createdAt,
		FinishedAt:     &now,
		IsSuccess:      lo.ToPtr(true),
		FetchedEntries: lo.ToPtr(int32(4)),
		SkippedEntries: lo.ToPtr(int32(1)),
		StoredProducts: lo.ToPtr(int32(2)),
	}, run, "should finish run with statistics")
}

func TestUnitSyncAccountIdempotent(t *testing.T) {
	account := modelstesting.FakeAccount()

	credentials := mocks.NewCredentialStore(t)
	catalogAPI := mocks.NewCatalog(t)
	storage := mocks.NewStorage(t)

	credentials.On("Get", mock.Anything, account.AccountID).Return(&account, nil).Twice()
	storage.On("StartRun", mock.Anything, account.SupplierID, account.AccountID).
		Return(func(context.Context, string, string) (*models.Run, error) { return newRun(&account), nil }).
		Twice()
	catalogAPI.On("FetchAssortmentPage", mock.Anything, account.Token, catalog.AssortmentQuery{}, 0).
		Return(assortment, nil).
		Twice()
	storage.On("FinishRun", mock.Anything, mock.Anything).Return(nil).Twice()

	var replaced [][]rowView
	storage.On("ReplaceAll", mock.Anything, account.SupplierID, mock.Anything).
		Run(func(args mock.Arguments) {
			replaced = append(replaced, views(args.Get(2).([]models.SupplierProductRow)))
		}).
		Return(int32(2), nil).
		Twice()

	syn := newSyncer(credentials, catalogAPI, storage)
	first := syn.SyncAccount(context.TODO(), account.AccountID)
	second := syn.SyncAccount(context.TODO(), account.AccountID)

	assert.Equal(t, first, second, "repeated synchronization should have same outcome")
	require.Len(t, replaced, 2, "should replace products twice")
	assert.ElementsMatch(t, replaced[0], replaced[1], "repeated synchronization should store same products")
}

func TestUnitSyncAccountSingleWarehouse(t *testing.T) {
	account := modelstesting.FakeAccount(func(a *models.Account) { a.Scope = models.SingleWarehouse("B") })
	run := newRun(&account)

	rows := []json.RawMessage{
		catalogtesting.ProductRow("1", "one", 100, 5),
		catalogtesting.ProductRowByStore("4", "four", 200,
			catalogtesting.StoreStock{StoreID: "A", Stock: 1},
			catalogtesting.StoreStock{StoreID: "B", Stock: 2},
		),
		catalogtesting.ProductRowByStore("5", "five", 300, catalogtesting.StoreStock{StoreID: "A", Stock: 3}),
	}

	credentials := mocks.NewCredentialStore(t)
	catalogAPI := mocks.NewCatalog(t)
	storage := mocks.NewStorage(t)

	mockCredentialsGet(credentials, &account, nil)
	mockStorageStartRun(storage, &account, run, nil)
	mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{StoreID: "B"}, 0, rows, nil)
	stored := mockStorageReplaceAll(storage, account.SupplierID, nil)
	mockStorageFinishRun(storage, run, nil)

	outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

	require.True(t, outcome.Succeeded(), "should succeed")
	assert.ElementsMatch(t, []rowView{
		{ExternalID: "1", Name: "one", PriceMin: "1", PriceMax: "1", Stock: "5"},
		{ExternalID: "4", Name: "four", PriceMin: "2", PriceMax: "2", Stock: "2"},
	}, views(*stored), "should store only stock of selected warehouse")
}

func TestUnitSyncAccountPerWarehouse(t *testing.T) {
	stores := []models.Store{
		{ID: "A", Name: "Main"},
		{ID: "B", Name: "Second"},
		{ID: "C", Name: "Closed", Archived: true},
	}
	passA := []json.RawMessage{
		catalogtesting.ProductRow("1", "one", 100, 5),
		catalogtesting.ProductRow("2", "two", 200, 1),
	}
	passB := []json.RawMessage{
		catalogtesting.ProductRow("1", "other name", 999, 3),
		catalogtesting.ProductRow("3", "three", 300, 0),
	}

	tests := map[string]struct {
		scope    models.Scope
		passes   map[string][]json.RawMessage
		wantRows []rowView
	}{
		"all warehouses": {
			scope:  models.ScopeAll,
			passes: map[string][]json.RawMessage{"A": passA, "B": passB},
			wantRows: []rowView{
				{ExternalID: "1", Name: "one", PriceMin: "1", PriceMax: "1", Stock: "8"},
				{ExternalID: "2", Name: "two", PriceMin: "2", PriceMax: "2", Stock: "1"},
			},
		},
		"single warehouse": {
			scope:  models.SingleWarehouse("B"),
			passes: map[string][]json.RawMessage{"B": passB},
			wantRows: []rowView{
				{ExternalID: "1", Name: "other name", PriceMin: "9.99", PriceMax: "9.99", Stock: "3"},
			},
		},
		"archived warehouse": {
			scope:    models.SingleWarehouse("C"),
			passes:   map[string][]json.RawMessage{},
			wantRows: []rowView{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			account := modelstesting.FakeAccount(func(a *models.Account) { a.Scope = tt.scope })
			run := newRun(&account)

			credentials := mocks.NewCredentialStore(t)
			catalogAPI := mocks.NewCatalog(t)
			storage := mocks.NewStorage(t)

			mockCredentialsGet(credentials, &account, nil)
			mockStorageStartRun(storage, &account, run, nil)
			catalogAPI.On("ListStores", mock.Anything, account.Token).Return(stores, nil)
			for storeID, rows := range tt.passes {
				mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{StoreID: storeID}, 0, rows, nil)
			}
			stored := mockStorageReplaceAll(storage, account.SupplierID, nil)
			mockStorageFinishRun(storage, run, nil)

			outcome := newSyncer(
				credentials,
				catalogAPI,
				storage,
				syncer.WithStrategy(syncer.StrategyPerWarehouse),
			).SyncAccount(context.TODO(), account.AccountID)

			require.True(t, outcome.Succeeded(), "should succeed")
			assert.ElementsMatch(t, tt.wantRows, views(*stored), "should store aggregated products")
		})
	}
}

func TestUnitSyncAccountCredentialsError(t *testing.T) {
	tests := map[string]struct {
		account  *models.Account
		err      error
		wantKind models.ErrorKind
	}{
		"missing credential": {
			err:      platform.ErrCredentialMissing,
			wantKind: models.KindCredentialMissing,
		},
		"empty token": {
			account:  lo.ToPtr(modelstesting.FakeAccount(func(a *models.Account) { a.Token = "" })),
			wantKind: models.KindCredentialMissing,
		},
		"not linked account": {
			err:      platform.ErrAccountNotLinked,
			wantKind: models.KindNotLinked,
		},
		"account without supplier": {
			account:  lo.ToPtr(modelstesting.FakeAccount(func(a *models.Account) { a.SupplierID = "" })),
			wantKind: models.KindNotLinked,
		},
		"credential store error": {
			err:      assert.AnError,
			wantKind: models.KindCredentialStore,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			accountID := "account-" + name

			credentials := mocks.NewCredentialStore(t)
			catalogAPI := mocks.NewCatalog(t)
			storage := mocks.NewStorage(t)

			credentials.On("Get", mock.Anything, accountID).Return(tt.account, tt.err)

			outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), accountID)

			assert.Equal(t, models.StateFailed, outcome.State, "should fail")
			assert.Equal(t, models.StateLoadCredentials, outcome.FailedAt, "should fail when loading credentials")
			assert.Equal(t, tt.wantKind, outcome.Kind, "should return correct error kind")
			assert.Contains(t, outcome.Error, "can't load credentials", "should describe error")
			catalogAPI.AssertNotCalled(t, "FetchAssortmentPage")
			storage.AssertNotCalled(t, "StartRun")
		})
	}
}

func TestUnitSyncAccountFetchError(t *testing.T) {
	fullPage := catalogtesting.Rows("p", catalog.PageSize)

	tests := map[string]struct {
		err        error
		wantKind   models.ErrorKind
		wantReauth bool
	}{
		"rejected token": {
			err:        unauthorized,
			wantKind:   models.KindAuth,
			wantReauth: true,
		},
		"forbidden": {
			err:        &catalog.FetchError{Status: http.StatusForbidden},
			wantKind:   models.KindAuth,
			wantReauth: true,
		},
		"exhausted retries": {
			err:      &catalog.FetchError{Status: http.StatusServiceUnavailable},
			wantKind: models.KindFetch,
		},
		"network error": {
			err:      assert.AnError,
			wantKind: models.KindFetch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			account := modelstesting.FakeAccount()
			run := newRun(&account)

			credentials := mocks.NewCredentialStore(t)
			catalogAPI := mocks.NewCatalog(t)
			storage := mocks.NewStorage(t)

			mockCredentialsGet(credentials, &account, nil)
			mockStorageStartRun(storage, &account, run, nil)
			mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, 0, fullPage, nil)
			mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, catalog.PageSize, nil, tt.err)
			if tt.wantReauth {
				credentials.On("MarkReauthRequired", mock.Anything, account.AccountID).Return(nil)
			}
			mockStorageFinishRun(storage, run, nil)

			outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

			assert.Equal(t, models.StateFailed, outcome.State, "should fail")
			assert.Equal(t, models.StateFetch, outcome.FailedAt, "should fail when fetching")
			assert.Equal(t, tt.wantKind, outcome.Kind, "should return correct error kind")
			storage.AssertNotCalled(t, "ReplaceAll")

			assert.Equal(t, lo.ToPtr(false), run.IsSuccess, "should finish failed run")
			assert.Equal(t, lo.ToPtr(string(tt.wantKind)), run.ErrorKind, "should store error kind")
			assert.Equal(t, lo.ToPtr(int32(catalog.PageSize)), run.FetchedEntries, "should store fetched entries")
			require.NotNil(t, run.StatusMessage, "should store error message")
			assert.Contains(t, *run.StatusMessage, tt.err.Error(), "should store error message")
		})
	}
}

func TestUnitSyncAccountTokenCheck(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		account := modelstesting.FakeAccount()
		run := newRun(&account)

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		catalogAPI.On("SecurityContext", mock.Anything, account.Token).
			Return(&models.SecurityContext{AccountID: account.AccountID, EmployeeName: "admin"}, nil)
		mockStorageStartRun(storage, &account, run, nil)
		mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, 0, assortment, nil)
		mockStorageReplaceAll(storage, account.SupplierID, nil)
		mockStorageFinishRun(storage, run, nil)

		outcome := newSyncer(credentials, catalogAPI, storage, syncer.WithTokenCheck(true)).
			SyncAccount(context.TODO(), account.AccountID)

		assert.True(t, outcome.Succeeded(), "should succeed")
	})

	t.Run("rejected token", func(t *testing.T) {
		account := modelstesting.FakeAccount()

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		catalogAPI.On("SecurityContext", mock.Anything, account.Token).Return(nil, unauthorized)
		credentials.On("MarkReauthRequired", mock.Anything, account.AccountID).Return(assert.AnError)

		outcome := newSyncer(credentials, catalogAPI, storage, syncer.WithTokenCheck(true)).
			SyncAccount(context.TODO(), account.AccountID)

		assert.Equal(t, models.KindAuth, outcome.Kind, "should return auth error kind")
		assert.Equal(t, models.StateLoadCredentials, outcome.FailedAt, "should fail before fetching")
		catalogAPI.AssertNotCalled(t, "FetchAssortmentPage")
		storage.AssertNotCalled(t, "StartRun")
	})
}

func TestUnitSyncAccountStorageError(t *testing.T) {
	t.Run("already running", func(t *testing.T) {
		account := modelstesting.FakeAccount()

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		mockStorageStartRun(storage, &account, nil, platform.ErrAlreadyRunning)

		outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

		assert.Equal(t, models.KindAlreadyRunning, outcome.Kind, "should return correct error kind")
		assert.Equal(t, models.StateLoadCredentials, outcome.FailedAt, "should fail before fetching")
		catalogAPI.AssertNotCalled(t, "FetchAssortmentPage")
	})

	t.Run("start run error", func(t *testing.T) {
		account := modelstesting.FakeAccount()

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		mockStorageStartRun(storage, &account, nil, assert.AnError)

		outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

		assert.Equal(t, models.KindRepositoryWrite, outcome.Kind, "should return correct error kind")
		assert.Contains(t, outcome.Error, "can't start run", "should describe error")
	})

	t.Run("replace products error", func(t *testing.T) {
		account := modelstesting.FakeAccount()
		run := newRun(&account)

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		mockStorageStartRun(storage, &account, run, nil)
		mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, 0, assortment, nil)
		mockStorageReplaceAll(storage, account.SupplierID,
			&platform.RepositoryWriteError{SupplierID: account.SupplierID, Err: assert.AnError},
		)
		mockStorageFinishRun(storage, run, nil)

		outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

		assert.Equal(t, models.KindRepositoryWrite, outcome.Kind, "should return correct error kind")
		assert.Equal(t, models.StateSwap, outcome.FailedAt, "should fail when swapping")
		assert.Zero(t, outcome.StoredProducts, "shouldn't report stored products")
		assert.Equal(t, lo.ToPtr(false), run.IsSuccess, "should finish failed run")
		assert.Equal(t, lo.ToPtr(string(models.KindRepositoryWrite)), run.ErrorKind, "should store error kind")
	})

	t.Run("finish run error", func(t *testing.T) {
		account := modelstesting.FakeAccount()
		run := newRun(&account)

		credentials := mocks.NewCredentialStore(t)
		catalogAPI := mocks.NewCatalog(t)
		storage := mocks.NewStorage(t)

		mockCredentialsGet(credentials, &account, nil)
		mockStorageStartRun(storage, &account, run, nil)
		mockCatalogPage(catalogAPI, account.Token, catalog.AssortmentQuery{}, 0, nil, unauthorized)
		credentials.On("MarkReauthRequired", mock.Anything, account.AccountID).Return(nil)
		mockStorageFinishRun(storage, run, assert.AnError)

		outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(context.TODO(), account.AccountID)

		assert.Equal(t, models.KindAuth, outcome.Kind, "should keep original error kind")
		assert.Contains(t, outcome.Error, "can't finish failed run", "should describe finishing error")
	})
}

func TestUnitSyncAccountCanceled(t *testing.T) {
	account := modelstesting.FakeAccount()
	run := newRun(&account)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	credentials := mocks.NewCredentialStore(t)
	catalogAPI := mocks.NewCatalog(t)
	storage := mocks.NewStorage(t)

	mockCredentialsGet(credentials, &account, nil)
	mockStorageStartRun(storage, &account, run, nil)
	catalogAPI.On("FetchAssortmentPage", mock.Anything, account.Token, catalog.AssortmentQuery{}, 0).
		Run(func(mock.Arguments) { cancel() }).
		Return(catalogtesting.Rows("p", catalog.PageSize), nil)
	mockStorageFinishRun(storage, run, nil)

	outcome := newSyncer(credentials, catalogAPI, storage).SyncAccount(ctx, account.AccountID)

	assert.Equal(t, models.KindCanceled, outcome.Kind, "should return canceled error kind")
	assert.Equal(t, models.StateFetch, outcome.FailedAt, "should stop when fetching")
	catalogAPI.AssertNumberOfCalls(t, "FetchAssortmentPage", 1)
	storage.AssertNotCalled(t, "ReplaceAll")
	assert.Equal(t, lo.ToPtr(string(models.KindCanceled)), run.ErrorKind, "should record canceled run")
}

func TestUnitParseStrategy(t *testing.T) {
	strategy, err := syncer.ParseStrategy("per_warehouse")
	require.NoError(t, err)
	assert.Equal(t, syncer.StrategyPerWarehouse, strategy, "should parse strategy")

	strategy, err = syncer.ParseStrategy("embedded")
	require.NoError(t, err)
	assert.Equal(t, syncer.StrategyEmbedded, strategy, "should parse strategy")

	_, err = syncer.ParseStrategy("mixed")
	assert.Error(t, err, "should reject unknown strategy")
}

func newSyncer(
	credentials *mocks.CredentialStore,
	catalogAPI *mocks.Catalog,
	storage *mocks.Storage,
	ops ...syncer.Option,
) *syncer.Syncer {
	ops = append([]syncer.Option{syncer.WithClock(fakeClock{now: &now, elapsed: elapsed})}, ops...)
	return syncer.NewSyncer(credentials, catalogAPI, decoder.Decoder{}, storage, ops...)
}

func newRun(account *models.Account) *models.Run {
	return &models.Run{
		ID:         rand.Int(),
		SupplierID: account.SupplierID,
		AccountID:  account.AccountID,
		CreatedAt:  createdAt,
	}
}

func mockCredentialsGet(credentials *mocks.CredentialStore, account *models.Account, err error) {
	credentials.On("Get", mock.Anything, account.AccountID).Return(account, err)
}

func mockStorageStartRun(storage *mocks.Storage, account *models.Account, run *models.Run, err error) {
	storage.On("StartRun", mock.Anything, account.SupplierID, account.AccountID).Return(run, err)
}

func mockStorageFinishRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("FinishRun", mock.Anything, run).Return(err)
}

// mockStorageReplaceAll mocks ReplaceAll and returns pointer to rows it receives.
func mockStorageReplaceAll(storage *mocks.Storage, supplierID string, err error) *[]models.SupplierProductRow {
	rows := &[]models.SupplierProductRow{}
	storage.On("ReplaceAll", mock.Anything, supplierID, mock.Anything).
		Run(func(args mock.Arguments) {
			*rows = args.Get(2).([]models.SupplierProductRow)
		}).
		Return(func(_ context.Context, _ string, rows []models.SupplierProductRow) (int32, error) {
			if err != nil {
				return 0, err
			}
			return int32(len(rows)), nil
		})
	return rows
}

func mockCatalogPage(
	catalogAPI *mocks.Catalog,
	token string,
	query catalog.AssortmentQuery,
	offset int,
	rows []json.RawMessage,
	err error,
) {
	catalogAPI.On("FetchAssortmentPage", mock.Anything, token, query, offset).Return(rows, err)
}

// rowView is comparable representation of product row with decimals as strings.
type rowView struct {
	ExternalID string
	Name       string
	PriceMin   string
	PriceMax   string
	Stock      string
}

func views(rows []models.SupplierProductRow) []rowView {
	return lo.Map(rows, func(r models.SupplierProductRow, _ int) rowView {
		return rowView{
			ExternalID: r.ExternalID,
			Name:       r.ProductName,
			PriceMin:   r.PriceMin.String(),
			PriceMax:   r.PriceMax.String(),
			Stock:      r.Stock.String(),
		}
	})
}

type fakeClock struct {
	now     *time.Time
	elapsed time.Duration
}

func (c fakeClock) Now() *time.Time {
	return c.now
}

func (c fakeClock) Since(time.Time) time.Duration {
	return c.elapsed
}
