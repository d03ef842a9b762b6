package stock_test

import (
	"testing"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warehousePasses are candidates of three per-warehouse fetch passes.
var warehousePasses = [][]stock.Candidate{
	{
		candidate("1", "first name", "10.00", 5),
		candidate("2", "two", "20.00", 1),
	},
	{
		candidate("1", "second name", "99.00", 3),
		candidate("3", "three", "30.00", 2),
	},
	{
		candidate("2", "two again", "21.00", 4),
		{ExternalID: "3", Name: "three", Type: models.EntryTypeProduct},
	},
}

func TestUnitAggregatorFirstWriteWins(t *testing.T) {
	agg := stock.NewAggregator()
	for _, pass := range warehousePasses {
		for _, c := range pass {
			agg.Add(c)
		}
	}

	require.Equal(t, 3, agg.Len(), "should merge candidates by external id")

	got := byID(agg.Candidates())
	assert.Equal(t, "first name", got["1"].Name, "first occurrence should set name")
	assert.True(t, decimal.RequireFromString("10").Equal(got["1"].Price), "first occurrence should set price")
	assert.True(t, decimal.NewFromInt(8).Equal(got["1"].Quantity), "should sum quantities")
	assert.True(t, decimal.NewFromInt(5).Equal(got["2"].Quantity), "should sum quantities")
	assert.True(t, decimal.NewFromInt(2).Equal(got["3"].Quantity), "unresolved candidate should contribute nothing")
	assert.True(t, got["3"].Resolved, "should stay resolved")
}

func TestUnitAggregatorCommutative(t *testing.T) {
	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	var want map[string]stock.Candidate
	for _, perm := range permutations {
		agg := stock.NewAggregator()
		for _, passIx := range perm {
			for _, c := range warehousePasses[passIx] {
				agg.Add(c)
			}
		}

		got := byID(agg.Candidates())
		if want == nil {
			want = got
			continue
		}

		require.Len(t, got, len(want), "permutation %v should yield same products", perm)
		for id, c := range want {
			assert.Truef(t, c.Quantity.Equal(got[id].Quantity),
				"permutation %v should yield same quantity of %s", perm, id)
			assert.Equalf(t, c.Resolved, got[id].Resolved,
				"permutation %v should yield same resolution of %s", perm, id)
		}
	}
}

func TestUnitAggregatorUnresolvedFirst(t *testing.T) {
	agg := stock.NewAggregator()
	agg.Add(stock.Candidate{ExternalID: "1", Name: "name", Type: models.EntryTypeVariant})
	agg.Add(candidate("1", "other", "1", 6))

	got := agg.Candidates()

	require.Len(t, got, 1, "should merge candidates")
	assert.Equal(t, "name", got[0].Name, "first occurrence should set name")
	assert.Equal(t, models.EntryTypeVariant, got[0].Type, "first occurrence should set type")
	assert.True(t, got[0].Resolved, "should become resolved")
	assert.True(t, decimal.NewFromInt(6).Equal(got[0].Quantity), "should take resolved quantity")
}

func candidate(id, name, price string, quantity int64) stock.Candidate {
	return stock.Candidate{
		ExternalID: id,
		Name:       name,
		Type:       models.EntryTypeProduct,
		Price:      decimal.RequireFromString(price),
		Quantity:   decimal.NewFromInt(quantity),
		Resolved:   true,
	}
}

func byID(candidates []stock.Candidate) map[string]stock.Candidate {
	result := make(map[string]stock.Candidate, len(candidates))
	for _, c := range candidates {
		result[c.ExternalID] = c
	}
	return result
}
