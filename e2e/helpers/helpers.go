package helpers

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/internal/catalog/catalogtesting"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 30 * time.Second

// Product is catalog product served by fake catalog API together with row expected in storage.
type Product struct {
	ID       string
	Name     string
	Price    int64
	Quantity int64
}

// Row returns assortment row of product.
func (p Product) Row() json.RawMessage {
	return catalogtesting.ProductRow(p.ID, p.Name, p.Price, float64(p.Quantity))
}

// WaitForRunsToBeFinished is blocking helper function, returns runs of supplier after n of them are finished.
func WaitForRunsToBeFinished(t *testing.T, queryable qrm.Queryable, supplierID string, n int) []models.Run {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "runs weren't finished in time", "supplier %s", supplierID)
		case <-time.After(250 * time.Millisecond):
		}

		runs := storagetesting.GetRunsBySupplierID(t, queryable, supplierID)
		finished := make([]models.Run, 0, len(runs))
		for ix := range runs {
			if runs[ix].FinishedAt != nil {
				finished = append(finished, *storage.ToAppRun(&runs[ix]))
			}
		}
		if len(finished) >= n {
			return finished
		}
	}
}

// GetProducts is helper function for getting products of supplier ordered by external id.
func GetProducts(t *testing.T, queryable qrm.Queryable, supplierID string) []models.SupplierProductRow {
	t.Helper()

	dbProducts := storagetesting.GetProductsBySupplierID(t, queryable, supplierID)

	products := make([]models.SupplierProductRow, len(dbProducts))
	for ix := range dbProducts {
		products[ix] = *storage.ToAppProduct(&dbProducts[ix])
	}

	return products
}

// GenerateProducts generates n products with ids "<prefix>-<i>", i in [10;10+n), price i and quantity i.
// Ids are zero padded, so they are ordered the same way as generated.
func GenerateProducts(prefix string, n int) []Product {
	products := make([]Product, n)
	for ix := range n {
		num := int64(ix + 10)
		products[ix] = Product{
			ID:       fmt.Sprintf("%s-%06d", prefix, num),
			Name:     fmt.Sprintf("%s product %d", prefix, num),
			Price:    num * 100,
			Quantity: num,
		}
	}
	return products
}

// Rows returns assortment rows of products.
func Rows(products []Product) []json.RawMessage {
	rows := make([]json.RawMessage, len(products))
	for ix := range products {
		rows[ix] = products[ix].Row()
	}
	return rows
}

// AssertProducts is helper function comparing stored products with catalog products.
func AssertProducts(t *testing.T, expected []Product, actual []models.SupplierProductRow) {
	t.Helper()

	require.Len(t, actual, len(expected), "incorrect number of products")

	for ix, exp := range expected {
		price := decimal.NewFromInt(exp.Price).Shift(-2)
		require.Equalf(t, exp.ID, actual[ix].ExternalID, "product at index %d has incorrect id", ix)
		require.Equalf(t, exp.Name, actual[ix].ProductName, "product at index %d has incorrect name", ix)
		require.Truef(t, price.Equal(actual[ix].PriceMin), "product at index %d has incorrect min price", ix)
		require.Truef(t, price.Equal(actual[ix].PriceMax), "product at index %d has incorrect max price", ix)
		require.Truef(t, decimal.NewFromInt(exp.Quantity).Equal(actual[ix].Stock),
			"product at index %d has incorrect stock", ix)
	}
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}
