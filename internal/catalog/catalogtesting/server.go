package catalogtesting

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
)

// Request is request received by Server.
type Request struct {
	Path    string
	Offset  int
	StoreID string
	Header  http.Header
}

// Server is fake catalog API serving assortment fixtures per token.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[string]*account
	failures   []int
	gzip       bool
	requests   []Request
	stopOffset int
}

type account struct {
	id     string
	stores []models.Store
	// rows are keyed by store id, "" holds unfiltered assortment.
	rows map[string][]json.RawMessage
}

// NewServer starts fake catalog API. It's closed on test cleanup.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		accounts:   map[string]*account{},
		stopOffset: -1,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

// AddAccount registers token with unfiltered assortment rows.
func (s *Server) AddAccount(token, accountID string, rows ...json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[token] = &account{
		id:   accountID,
		rows: map[string][]json.RawMessage{"": rows},
	}
}

// SetStoreAssortment registers warehouse of token with rows returned when filtered by this warehouse.
func (s *Server) SetStoreAssortment(token string, store models.Store, rows ...json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[token]
	if !ok {
		acc = &account{rows: map[string][]json.RawMessage{}}
		s.accounts[token] = acc
	}
	acc.stores = append(acc.stores, store)
	acc.rows[store.ID] = rows
}

// FailNext makes next requests respond with given statuses, one per request.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, statuses...)
}

// FailFromOffset makes every assortment request at or after offset respond with 500.
func (s *Server) FailFromOffset(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopOffset = offset
}

// UseGzip makes server compress responses of clients accepting gzip.
func (s *Server) UseGzip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gzip = true
}

// Requests returns all received requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// AssortmentOffsets returns offsets of assortment requests filtered by storeID, "" for unfiltered.
func (s *Server) AssortmentOffsets(storeID string) []int {
	var offsets []int
	for _, req := range s.Requests() {
		if req.Path == "/entity/assortment" && req.StoreID == storeID {
			offsets = append(offsets, req.Offset)
		}
	}
	return offsets
}

func (s *Server) handle(wrt http.ResponseWriter, req *http.Request) {
	offset, _ := strconv.Atoi(req.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(req.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 1000
	}
	storeID := ""
	if filter := req.URL.Query().Get("filter"); strings.HasPrefix(filter, "stockStore=") {
		storeID = path.Base(strings.TrimPrefix(filter, "stockStore="))
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Path:    req.URL.Path,
		Offset:  offset,
		StoreID: storeID,
		Header:  req.Header.Clone(),
	})
	var status int
	if len(s.failures) > 0 {
		status, s.failures = s.failures[0], s.failures[1:]
	}
	if s.stopOffset >= 0 && req.URL.Path == "/entity/assortment" && offset >= s.stopOffset {
		status = http.StatusInternalServerError
	}
	useGzip := s.gzip && strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
	acc, ok := s.accounts[strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")]
	s.mu.Unlock()

	if status == 0 && !ok {
		status = http.StatusUnauthorized
	}
	if status != 0 {
		writeJSON(wrt, status, useGzip, map[string]any{
			"errors": []map[string]any{{"error": http.StatusText(status), "code": status}},
		})
		return
	}

	switch req.URL.Path {
	case "/entity/assortment":
		rows := acc.rows[storeID]
		from, to := min(offset, len(rows)), min(offset+limit, len(rows))
		writeJSON(wrt, http.StatusOK, useGzip, map[string]any{
			"meta": map[string]any{"size": len(rows), "limit": limit, "offset": offset},
			"rows": rows[from:to],
		})
	case "/entity/store":
		stores := make([]map[string]any, 0, len(acc.stores))
		for _, store := range acc.stores {
			stores = append(stores, map[string]any{
				"meta":     map[string]any{"href": s.URL + "/entity/store/" + store.ID, "type": "store"},
				"id":       store.ID,
				"name":     store.Name,
				"archived": store.Archived,
			})
		}
		writeJSON(wrt, http.StatusOK, useGzip, map[string]any{"rows": stores})
	case "/security/context":
		writeJSON(wrt, http.StatusOK, useGzip, map[string]any{
			"accountId": acc.id,
			"employee":  map[string]any{"id": "employee-" + acc.id, "name": "Admin"},
		})
	default:
		writeJSON(wrt, http.StatusNotFound, useGzip, map[string]any{"errors": []string{"not found"}})
	}
}

func writeJSON(wrt http.ResponseWriter, status int, useGzip bool, body any) {
	wrt.Header().Set("Content-Type", "application/json;charset=utf-8")
	if !useGzip {
		wrt.WriteHeader(status)
		_ = json.NewEncoder(wrt).Encode(body)
		return
	}

	wrt.Header().Set("Content-Encoding", "gzip")
	wrt.WriteHeader(status)
	compressed := gzip.NewWriter(wrt)
	_ = json.NewEncoder(compressed).Encode(body)
	_ = compressed.Close()
}

// ProductRow returns assortment row of product with scalar stock. Price is in minor units.
func ProductRow(id, name string, price int64, stock float64) json.RawMessage {
	return Row(id, name, "product", price, map[string]any{"stock": stock})
}

// StoreStock is quantity of row in one warehouse.
type StoreStock struct {
	StoreID string
	Stock   float64
}

// ProductRowByStore returns assortment row of product with per-warehouse stock list.
func ProductRowByStore(id, name string, price int64, stocks ...StoreStock) json.RawMessage {
	byStore := make([]map[string]any, 0, len(stocks))
	for _, st := range stocks {
		byStore = append(byStore, map[string]any{
			"meta":  map[string]any{"href": "https://catalog.test/entity/store/" + st.StoreID, "type": "store"},
			"stock": st.Stock,
		})
	}
	return Row(id, name, "product", price, map[string]any{"stockByStore": byStore})
}

// Row returns assortment row of given type with extra fields merged in.
func Row(id, name, entryType string, price int64, extra map[string]any) json.RawMessage {
	row := map[string]any{
		"meta": map[string]any{"type": entryType},
		"id":   id,
		"name": name,
		"salePrices": []map[string]any{{
			"value":     price,
			"priceType": map[string]any{"name": "Цена продажи"},
		}},
	}
	for k, v := range extra {
		row[k] = v
	}

	raw, err := json.Marshal(row)
	if err != nil {
		panic(fmt.Sprintf("can't marshal row: %v", err))
	}
	return raw
}

// Rows returns n product rows with ids "<prefix>-<i>", price 100 and stock 1.
func Rows(prefix string, n int) []json.RawMessage {
	rows := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, ProductRow(fmt.Sprintf("%s-%d", prefix, i), fmt.Sprintf("%s %d", prefix, i), 100, 1))
	}
	return rows
}
