package replen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repleniq/backend-go/internal/domain"
)

func TestProjectLinearDrawdown(t *testing.T) {
	products := []domain.Product{
		{WH: domain.Float(100), PASD: domain.Float(10)},
	}

	points := Project(products, 15).Points()
	require.Len(t, points, 15)

	assert.Equal(t, domain.ForecastPoint{Day: 1, Stock: 90}, points[0])
	assert.Equal(t, domain.ForecastPoint{Day: 5, Stock: 50}, points[4])
	assert.Equal(t, domain.ForecastPoint{Day: 10, Stock: 0}, points[9])
	// Depleted stock floors at zero, never goes negative.
	assert.Equal(t, domain.ForecastPoint{Day: 15, Stock: 0}, points[14])
}

func TestProjectAggregatesAcrossProducts(t *testing.T) {
	products := []domain.Product{
		{WH: domain.Float(100), PASD: domain.Float(10)},
		{WH: domain.Float(30), PASD: domain.Float(5)},
	}

	points := Project(products, 8).Points()
	require.Len(t, points, 8)

	// Day 4: (100-40) + (30-20) = 70.
	assert.Equal(t, 70.0, points[3].Stock)
	// Day 7: the second product has bottomed out, only 30 remains.
	assert.Equal(t, 30.0, points[6].Stock)
}

func TestProjectSkipsProductsMissingInputs(t *testing.T) {
	products := []domain.Product{
		{WH: domain.Float(100)},
		{PASD: domain.Float(10)},
		{WH: domain.Float(50), PASD: domain.Float(10)},
	}

	points := Project(products, 3).Points()
	assert.Equal(t, 40.0, points[0].Stock)
}

func TestProjectDefaultsHorizon(t *testing.T) {
	points := Project(nil, 0).Points()
	assert.Len(t, points, DefaultHorizonDays)
}

func TestCurveIsLazyAndFinite(t *testing.T) {
	curve := Project([]domain.Product{{WH: domain.Float(10), PASD: domain.Float(1)}}, 3)

	p1, ok := curve.Next()
	require.True(t, ok)
	assert.Equal(t, 1, p1.Day)

	p2, ok := curve.Next()
	require.True(t, ok)
	assert.Equal(t, 2, p2.Day)

	_, ok = curve.Next()
	require.True(t, ok)

	// Horizon exhausted.
	_, ok = curve.Next()
	assert.False(t, ok)
	_, ok = curve.Next()
	assert.False(t, ok)
}

func TestCurvePointsResumesFromCursor(t *testing.T) {
	curve := Project([]domain.Product{{WH: domain.Float(10), PASD: domain.Float(1)}}, 5)

	_, _ = curve.Next()
	_, _ = curve.Next()

	rest := curve.Points()
	require.Len(t, rest, 3)
	assert.Equal(t, 3, rest[0].Day)
}

func TestReorderSuggestions(t *testing.T) {
	products := []domain.Product{
		// Reorder point 4 x 10 x 1.5 = 60; 20 on hand qualifies.
		// Qty = ceil(4 x 10 x 2 - 20) = 60.
		{ID: "a", Name: "A", SKU: "SKU-A", WH: domain.Float(20), PASD: domain.Float(4), LeadTime: domain.Float(10)},
		// At exactly the reorder point, not flagged.
		{ID: "b", Name: "B", SKU: "SKU-B", WH: domain.Float(60), PASD: domain.Float(4), LeadTime: domain.Float(10)},
		// Missing lead time, out of scope.
		{ID: "c", Name: "C", SKU: "SKU-C", WH: domain.Float(0), PASD: domain.Float(4)},
		// Qty = ceil(2 x 5 x 2 - 1) = 19.
		{ID: "d", Name: "D", SKU: "SKU-D", WH: domain.Float(1), PASD: domain.Float(2), LeadTime: domain.Float(5)},
	}

	suggestions := ReorderSuggestions(products)
	require.Len(t, suggestions, 2)

	// Sorted by quantity descending.
	assert.Equal(t, "a", suggestions[0].ProductID)
	assert.Equal(t, 60.0, suggestions[0].ReorderQty)
	assert.Equal(t, "d", suggestions[1].ProductID)
	assert.Equal(t, 19.0, suggestions[1].ReorderQty)
}
