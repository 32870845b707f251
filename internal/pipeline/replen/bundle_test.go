package replen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repleniq/backend-go/internal/domain"
)

func TestExtractPackSize(t *testing.T) {
	tests := []struct {
		variant string
		want    int
	}{
		{"60 Tablets", 60},
		{"Pack of 120", 120},
		{"1.5L Bottle", 1},
		{"No digits here", 0},
		{"", 0},
		{"30x2 Strips", 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPackSize(tt.variant), "variant %q", tt.variant)
	}
}

func packFamily() []domain.Product {
	return []domain.Product{
		{ID: "p60", SKU: "SKU-60", Product: "Vitamin C", Variant: "60 Tablets",
			MPDemand: domain.Float(10), Transit: domain.Float(0), WH: domain.Float(0)},
		{ID: "p120", SKU: "SKU-120", Product: "Vitamin C", Variant: "120 Tablets",
			MPDemand: domain.Float(4), Transit: domain.Float(0), WH: domain.Float(0)},
		{ID: "p180", SKU: "SKU-180", Product: "Vitamin C", Variant: "180 Tablets",
			MPDemand: domain.Float(2), Transit: domain.Float(0), WH: domain.Float(0)},
	}
}

func TestAggregateBundlesFamilyRollup(t *testing.T) {
	classifier := NewClassifier("")

	out := AggregateBundles(packFamily(), classifier)
	require.Len(t, out, 3)

	base := out[0]
	require.NotNil(t, base.Bundle)
	assert.True(t, base.Bundle.IsBaseUnit)
	assert.Equal(t, 60, base.Bundle.PackSize)
	assert.Equal(t, 1, base.Bundle.ConversionMultiplier)
	assert.ElementsMatch(t, []string{"SKU-120", "SKU-180"}, base.Bundle.BundledSKUs)

	// 10x1 + 4x2 + 2x3 = 24 base units.
	require.NotNil(t, base.Bundle.FinalToOrderBase)
	assert.Equal(t, 24.0, *base.Bundle.FinalToOrderBase)

	require.NotNil(t, out[1].Bundle)
	assert.False(t, out[1].Bundle.IsBaseUnit)
	assert.Equal(t, 2, out[1].Bundle.ConversionMultiplier)
	assert.Equal(t, "p60", out[1].Bundle.BaseUnitID)
	assert.Nil(t, out[1].Bundle.FinalToOrderBase)

	require.NotNil(t, out[2].Bundle)
	assert.Equal(t, 3, out[2].Bundle.ConversionMultiplier)
}

func TestAggregateBundlesNegativeNeedReducesRollup(t *testing.T) {
	products := packFamily()
	// The 120-pack sits on surplus warehouse stock: need 4 - 0 - 20 = -16,
	// contributing -32 base units to the family total.
	products[1].WH = domain.Float(20)

	out := AggregateBundles(products, NewClassifier(""))

	require.NotNil(t, out[0].Bundle.FinalToOrderBase)
	assert.Equal(t, 10.0+(-16.0)*2+2.0*3, *out[0].Bundle.FinalToOrderBase)
}

func TestAggregateBundlesSingletonPassesThrough(t *testing.T) {
	products := []domain.Product{
		{ID: "solo", Product: "Omega 3", Variant: "90 Softgels", MPDemand: domain.Float(5)},
	}

	out := AggregateBundles(products, NewClassifier(""))
	assert.Nil(t, out[0].Bundle)
}

func TestAggregateBundlesNoFamilyNamePassesThrough(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Variant: "60 Tablets", MPDemand: domain.Float(5)},
		{ID: "b", Variant: "120 Tablets", MPDemand: domain.Float(5)},
	}

	out := AggregateBundles(products, NewClassifier(""))
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Bundle)
	assert.Nil(t, out[1].Bundle)
}

func TestAggregateBundlesNoUsablePackSize(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Product: "Gift Set", Variant: "Standard"},
		{ID: "b", Product: "Gift Set", Variant: "Deluxe"},
	}

	out := AggregateBundles(products, NewClassifier(""))
	assert.Nil(t, out[0].Bundle)
	assert.Nil(t, out[1].Bundle)
}

func TestAggregateBundlesZeroPackMemberContributesAtBaseRate(t *testing.T) {
	products := packFamily()
	products = append(products, domain.Product{
		ID: "pNA", SKU: "SKU-NA", Product: "Vitamin C", Variant: "Sampler",
		MPDemand: domain.Float(3),
	})

	out := AggregateBundles(products, NewClassifier(""))

	sampler := out[3]
	require.NotNil(t, sampler.Bundle)
	assert.Equal(t, 1, sampler.Bundle.ConversionMultiplier)
	assert.Equal(t, "p60", sampler.Bundle.BaseUnitID)
	assert.False(t, sampler.Bundle.IsBaseUnit)

	// The sampler contributes x1 but is not listed among bundled pack SKUs.
	base := out[0]
	assert.NotContains(t, base.Bundle.BundledSKUs, "SKU-NA")
	assert.Equal(t, 27.0, *base.Bundle.FinalToOrderBase)
}

func TestAggregateBundlesPreservesInputOrder(t *testing.T) {
	products := []domain.Product{
		{ID: "z", Product: "Zinc", Variant: "30"},
		{ID: "c1", Product: "Vitamin C", Variant: "120 Tablets"},
		{ID: "m", Product: "Magnesium", Variant: "60"},
		{ID: "c2", Product: "Vitamin C", Variant: "60 Tablets"},
	}

	out := AggregateBundles(products, NewClassifier(""))
	require.Len(t, out, 4)
	assert.Equal(t, "z", out[0].ID)
	assert.Equal(t, "c1", out[1].ID)
	assert.Equal(t, "m", out[2].ID)
	assert.Equal(t, "c2", out[3].ID)

	// Base election is by smallest pack, not input position.
	assert.True(t, out[3].Bundle.IsBaseUnit)
	assert.False(t, out[1].Bundle.IsBaseUnit)
}

func TestAggregateBundlesTieGoesToFirstListed(t *testing.T) {
	products := []domain.Product{
		{ID: "first", Product: "Vitamin C", Variant: "60 Tablets"},
		{ID: "second", Product: "Vitamin C", Variant: "60 Caps"},
	}

	out := AggregateBundles(products, NewClassifier(""))
	assert.True(t, out[0].Bundle.IsBaseUnit)
	assert.False(t, out[1].Bundle.IsBaseUnit)
	assert.Equal(t, "first", out[1].Bundle.BaseUnitID)
}
