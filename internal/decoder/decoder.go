package decoder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
)

// Decoder decodes catalog API assortment rows into catalog entries.
type Decoder struct {
	// PriceType is name of sale price used as entry price. The first sale price is used when empty or missing.
	PriceType string
}

// Decode decodes each row independently and sends every entry with its decoding error into output channel.
// Malformed row yields result with error wrapping platform.ErrSchema and doesn't stop decoding.
func (d Decoder) Decode(ctx context.Context, rows []json.RawMessage, output chan<- models.ParsingResult) error {
	for _, row := range rows {
		entry, err := d.decodeRow(row)

		result := models.ParsingResult{Error: err}
		if entry != nil {
			result.Entry = *entry
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- result:
		}
	}

	return nil
}

func (d Decoder) decodeRow(row json.RawMessage) (*models.CatalogEntry, error) {
	var entry Entry
	if err := json.Unmarshal(row, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", platform.ErrSchema, err)
	}

	return toAppEntry(&entry, d.PriceType)
}
