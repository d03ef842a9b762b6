package catalog

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoMorePages is returned by Pager.Next after the last page was fetched.
var ErrNoMorePages = errors.New("no more assortment pages")

// PageFetcher fetches single assortment page.
type PageFetcher interface {
	FetchAssortmentPage(ctx context.Context, token string, query AssortmentQuery, offset int) ([]json.RawMessage, error)
}

// Pager walks assortment pages of one account sequentially.
// It is finite and can't be restarted; a fetch error ends the sequence.
type Pager struct {
	fetcher PageFetcher
	token   string
	query   AssortmentQuery
	offset  int
	done    bool
}

// NewPager returns Pager over account's assortment. No request is made until Next is called.
func NewPager(fetcher PageFetcher, token string, query AssortmentQuery) *Pager {
	return &Pager{
		fetcher: fetcher,
		token:   token,
		query:   query,
	}
}

// Pages returns Pager over account's assortment fetched by c.
func (c *Client) Pages(token string, query AssortmentQuery) *Pager {
	return NewPager(c, token, query)
}

// Done reports whether there are no more pages to fetch.
func (p *Pager) Done() bool {
	return p.done
}

// Next fetches next page of raw assortment rows.
// Pager is done after the first page shorter than PageSize.
func (p *Pager) Next(ctx context.Context) ([]json.RawMessage, error) {
	if p.done {
		return nil, ErrNoMorePages
	}

	if err := ctx.Err(); err != nil {
		p.done = true
		return nil, err
	}

	rows, err := p.fetcher.FetchAssortmentPage(ctx, p.token, p.query, p.offset)
	if err != nil {
		p.done = true
		return nil, err
	}

	p.offset += PageSize
	if len(rows) < PageSize {
		p.done = true
	}

	return rows, nil
}
