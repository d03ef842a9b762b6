package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

const (
	// PageSize is number of assortment rows requested per page.
	PageSize = 1000
	// DefaultBaseURL is catalog API base URL.
	DefaultBaseURL = "https://api.moysklad.ru/api/remap/1.2"

	assortmentPath      = "/entity/assortment"
	storePath           = "/entity/store"
	securityContextPath = "/security/context"
	assortmentExpand    = "salePrices,stock"
)

var errMalformedResponse = errors.New("malformed catalog API response")

// Option is custom configuration of Client.
type Option func(c *Client)

// Client builds catalog API requests and fetches assortment, stores and token context.
// It is safe for concurrent use; the request limiter is shared by all callers.
type Client struct {
	client        *http.Client
	baseURL       string
	userAgent     string
	limiter       *rate.Limiter
	retryAttempts uint64
	retryInterval time.Duration
}

// NewClient returns new Client.
func NewClient(client *http.Client, baseURL, userAgent string, ops ...Option) *Client {
	c := &Client{
		client:        client,
		baseURL:       strings.TrimRight(baseURL, "/"),
		userAgent:     userAgent,
		limiter:       rate.NewLimiter(rate.Inf, 1),
		retryAttempts: 3,
		retryInterval: 500 * time.Millisecond,
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// AssortmentQuery narrows assortment request.
type AssortmentQuery struct {
	// StoreID limits reported stock to one warehouse when not empty.
	StoreID string
}

type rowsEnvelope[T any] struct {
	Rows []T `json:"rows"`
}

type storeRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

type securityContext struct {
	AccountID string `json:"accountId"`
	Employee  struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"employee"`
}

// FetchAssortmentPage returns raw assortment rows starting at offset.
func (c *Client) FetchAssortmentPage(
	ctx context.Context,
	token string,
	query AssortmentQuery,
	offset int,
) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("expand", assortmentExpand)
	if query.StoreID != "" {
		params.Set("filter", "stockStore="+c.StoreHref(query.StoreID))
	}

	var page rowsEnvelope[json.RawMessage]
	if err := c.get(ctx, token, assortmentPath, params, &page); err != nil {
		return nil, fmt.Errorf("can't fetch assortment page at offset %d: %w", offset, err)
	}

	return page.Rows, nil
}

// ListStores returns all warehouses of account.
func (c *Client) ListStores(ctx context.Context, token string) ([]models.Store, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(PageSize))

	var page rowsEnvelope[storeRow]
	if err := c.get(ctx, token, storePath, params, &page); err != nil {
		return nil, fmt.Errorf("can't fetch stores: %w", err)
	}

	return lo.Map(page.Rows, func(row storeRow, _ int) models.Store {
		return models.Store{
			ID:       row.ID,
			Name:     row.Name,
			Archived: row.Archived,
		}
	}), nil
}

// SecurityContext returns identity behind token.
func (c *Client) SecurityContext(ctx context.Context, token string) (*models.SecurityContext, error) {
	var sc securityContext
	if err := c.get(ctx, token, securityContextPath, nil, &sc); err != nil {
		return nil, fmt.Errorf("can't fetch security context: %w", err)
	}

	return &models.SecurityContext{
		EmployeeID:   sc.Employee.ID,
		EmployeeName: sc.Employee.Name,
		AccountID:    sc.AccountID,
	}, nil
}

// StoreHref returns catalog API reference of warehouse.
func (c *Client) StoreHref(storeID string) string {
	return c.baseURL + storePath + "/" + storeID
}

// get requests path and decodes JSON response into out.
// Transient failures are retried with exponential backoff.
func (c *Client) get(ctx context.Context, token, path string, params url.Values, out any) error {
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("can't wait for rate limiter: %w", err))
		}

		err := c.getOnce(ctx, token, path, params, out)
		if err == nil {
			return nil
		}

		if ctx.Err() != nil || !isTransient(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	return backoff.Retry(operation, c.backOff(ctx))
}

func (c *Client) getOnce(ctx context.Context, token, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Accept", "application/json;charset=utf-8")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	body, err := responseBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
		return &FetchError{
			Status: resp.StatusCode,
			Body:   string(msg),
		}
	}

	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType != "application/json" {
		return ErrContentTypeNotSupported
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		var (
			syntaxErr *json.SyntaxError
			typeErr   *json.UnmarshalTypeError
		)
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %w", errMalformedResponse, err)
		}
		return fmt.Errorf("can't read http response: %w", err)
	}

	return nil
}

func (c *Client) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryInterval
	exp.MaxElapsedTime = 0

	retries := uint64(0)
	if c.retryAttempts > 1 {
		retries = c.retryAttempts - 1
	}

	return backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)
}

// isTransient reports whether failed request is worth repeating.
// Network errors, timeouts, interrupted bodies, 429 and 5xx responses are transient.
func isTransient(err error) bool {
	var fetchErr *FetchError
	switch {
	case errors.As(err, &fetchErr):
		return fetchErr.IsTransient()
	case errors.Is(err, errMalformedResponse), errors.Is(err, ErrContentTypeNotSupported):
		return false
	default:
		return true
	}
}

// responseBody returns response body, decompressed when server used gzip encoding.
func responseBody(resp *http.Response) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return io.NopCloser(resp.Body), nil
	}
	return decompressResponse(resp.Body)
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser wraps decompressed Reader and compressed ReadCloser.
// It reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

// Read reads uncompressed bytes from underlying Reader into p.
// Returns number of read bytes and error.
func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

// Close closes underlying compressed ReadCloser.
func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}

// WithRateLimit limits number of requests per second sent by Client.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}
}

// WithRetry sets number of attempts made for transient failures and initial backoff interval.
func WithRetry(attempts uint64, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.retryAttempts = attempts
		c.retryInterval = initialInterval
	}
}
