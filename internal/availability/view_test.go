package availability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sample = []Record{
	{ID: 1, Name: "Burger", Quantity: 7, Price: 10, BrandName: "Rock"},
	{ID: 2, Name: "Cola", Quantity: 0, Price: 3, BrandName: "Acme"},
	{ID: 3, Name: "Fries", Quantity: 3, Price: 4, BrandName: "Rock"},
}

func TestFilterMatchesNameAndBrand(t *testing.T) {
	require.Len(t, Filter(sample, "burger"), 1)
	require.Len(t, Filter(sample, "ROCK"), 2)
	require.Len(t, Filter(sample, "  "), 3)
	require.Empty(t, Filter(sample, "pizza"))
}

func TestFilterReturnsCopy(t *testing.T) {
	out := Filter(sample, "")
	out[0].Name = "changed"
	require.Equal(t, "Burger", sample[0].Name)
}

func TestSortByName(t *testing.T) {
	out := SortBy(sample, SortByName, false)
	require.Equal(t, []int64{1, 2, 3}, ids(out))

	out = SortBy(sample, SortByName, true)
	require.Equal(t, []int64{3, 2, 1}, ids(out))
}

func TestSortByQuantityAndPrice(t *testing.T) {
	require.Equal(t, []int64{2, 3, 1}, ids(SortBy(sample, SortByQuantity, false)))
	require.Equal(t, []int64{1, 3, 2}, ids(SortBy(sample, SortByPrice, true)))
}

func TestSortUnknownFieldFallsBackToName(t *testing.T) {
	require.Equal(t, []int64{1, 2, 3}, ids(SortBy(sample, "bogus", false)))
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, StatusOut, StatusFor(0))
	require.Equal(t, StatusLow, StatusFor(1))
	require.Equal(t, StatusLow, StatusFor(5))
	require.Equal(t, StatusOK, StatusFor(6))
}

func ids(records []Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
