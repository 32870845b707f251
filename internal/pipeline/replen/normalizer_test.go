package replen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repleniq/backend-go/internal/domain"
)

func TestNormalizeEmptyDataset(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = Normalize([]domain.RawRow{})
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestNormalizeHeaderAliases(t *testing.T) {
	rows := []domain.RawRow{
		{
			{Header: "Brand", Value: "Acme"},
			{Header: "Product", Value: "Vitamin C"},
			{Header: "Variant", Value: "60 Tablets"},
			{Header: "WH", Value: float64(120)},
			{Header: "Lead Time", Value: float64(10)},
			{Header: "PASD", Value: float64(4)},
			{Header: "Order_Frequ", Value: float64(30)},
			{Header: "MP Demand", Value: float64(200)},
			{Header: "days inv in hand", Value: float64(12.5)},
		},
		{
			{Header: "brand", Value: "Acme"},
			{Header: "product", Value: "Vitamin C"},
			{Header: "variant", Value: "120 Tablets"},
			{Header: "wh", Value: float64(60)},
			{Header: "Reorder Time", Value: float64(10)},
			{Header: "pasd", Value: float64(2)},
		},
	}

	products, err := Normalize(rows)
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "Acme", first.Brand)
	assert.Equal(t, "Vitamin C", first.Product)
	assert.Equal(t, "60 Tablets", first.Variant)
	assert.Equal(t, 120.0, domain.FloatOr(first.WH, -1))
	assert.Equal(t, 10.0, domain.FloatOr(first.LeadTime, -1))
	assert.Equal(t, 30.0, domain.FloatOr(first.OrderFreq, -1))
	assert.Equal(t, 200.0, domain.FloatOr(first.MPDemand, -1))
	assert.Equal(t, 12.5, domain.FloatOr(first.DaysInvInHand, -1))

	// "Reorder Time" is a legacy header for lead time.
	assert.Equal(t, 10.0, domain.FloatOr(products[1].LeadTime, -1))
}

func TestNormalizeAbsenceIsNotZero(t *testing.T) {
	rows := []domain.RawRow{
		{{Header: "Brand", Value: "Acme"}, {Header: "WH", Value: float64(0)}},
		{{Header: "Brand", Value: "Acme"}},
	}

	products, err := Normalize(rows)
	require.NoError(t, err)

	require.NotNil(t, products[0].WH)
	assert.Equal(t, 0.0, *products[0].WH)
	assert.Nil(t, products[1].WH)
	assert.Nil(t, products[0].PASD)
}

func TestNormalizeNumericCoercion(t *testing.T) {
	rows := []domain.RawRow{
		{
			{Header: "WH", Value: "1,250"},
			{Header: "PASD", Value: "3.5"},
			{Header: "Transit", Value: "n/a"},
			{Header: "To Order", Value: ""},
		},
	}

	products, err := Normalize(rows)
	require.NoError(t, err)

	assert.Equal(t, 1250.0, domain.FloatOr(products[0].WH, -1))
	assert.Equal(t, 3.5, domain.FloatOr(products[0].PASD, -1))
	// Unparsable text degrades to absence, never to zero.
	assert.Nil(t, products[0].Transit)
	assert.Nil(t, products[0].ToOrder)
}

func TestNormalizeIdentityFallbacks(t *testing.T) {
	rows := []domain.RawRow{
		{{Header: "Product Name", Value: "Listed Name"}, {Header: "SKU", Value: "ABC-1"}},
		{
			{Header: "Brand", Value: "Acme"},
			{Header: "Product", Value: "Zinc"},
			{Header: "Variant", Value: "30 Caps"},
		},
		{{Header: "Unrecognized", Value: "value"}},
	}

	products, err := Normalize(rows)
	require.NoError(t, err)

	assert.Equal(t, "Listed Name", products[0].Name)
	assert.Equal(t, "ABC-1", products[0].SKU)

	assert.Equal(t, "Acme Zinc 30 Caps", products[1].Name)
	assert.Equal(t, "SKU-"+products[1].ID, products[1].SKU)

	// A row with nothing recognizable still yields a product.
	assert.Equal(t, "Product "+products[2].ID, products[2].Name)
	assert.NotEmpty(t, products[2].ID)
	assert.Len(t, products[2].ID, 8)
}

func TestNormalizePreservesRowOrderAndCount(t *testing.T) {
	rows := []domain.RawRow{
		{{Header: "Product Name", Value: "A"}},
		{{Header: "Product Name", Value: "B"}},
		{{Header: "Product Name", Value: "C"}},
	}

	products, err := Normalize(rows)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "A", products[0].Name)
	assert.Equal(t, "B", products[1].Name)
	assert.Equal(t, "C", products[2].Name)
}

func TestNormalizeCollidingHeadersLeftmostColumnWins(t *testing.T) {
	// "Lead Time" and "lead_time" normalize to the same key; resolution must
	// follow column order, not chance.
	rows := []domain.RawRow{
		{
			{Header: "Lead Time", Value: float64(5)},
			{Header: "lead_time", Value: float64(7)},
		},
	}

	for i := 0; i < 100; i++ {
		products, err := Normalize(rows)
		require.NoError(t, err)
		assert.Equal(t, 5.0, domain.FloatOr(products[0].LeadTime, -1))
	}

	// Swapping the columns swaps the winner.
	swapped := []domain.RawRow{
		{
			{Header: "lead_time", Value: float64(7)},
			{Header: "Lead Time", Value: float64(5)},
		},
	}

	products, err := Normalize(swapped)
	require.NoError(t, err)
	assert.Equal(t, 7.0, domain.FloatOr(products[0].LeadTime, -1))
}
