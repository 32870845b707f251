package replen

import (
	"math"
	"unicode"

	"github.com/repleniq/backend-go/internal/domain"
)

// ExtractPackSize pulls the first integer literal out of a variant label,
// e.g. "60 Tablets" -> 60. No digits yields 0, which bundling treats as invalid.
func ExtractPackSize(variant string) int {
	value := 0
	found := false
	for _, r := range variant {
		if unicode.IsDigit(r) {
			value = value*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}
	if !found {
		return 0
	}
	return value
}

// replenishmentNeed is the raw per-record order need: marketplace demand less
// stock already in transit or on hand. Negative values are deliberate; a
// variant sitting on excess stock reduces its family's rolled-up total.
func replenishmentNeed(p *domain.Product) float64 {
	return domain.FloatOr(p.MPDemand, 0) - domain.FloatOr(p.Transit, 0) - domain.FloatOr(p.WH, 0)
}

// AggregateBundles groups products by family name, elects a base unit per
// multi-variant family, and rolls every member's replenishment need up to the
// base unit in base-unit terms. Products outside any family, and families
// where bundling does not apply, pass through unchanged aside from the
// overstock flag. Input order is preserved.
func AggregateBundles(products []domain.Product, classifier *Classifier) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	groups := make(map[string][]int)
	order := make([]string, 0)
	for i := range out {
		out[i].IsOverstock = classifier.IsOverstock(&out[i])

		family := out[i].Product
		if family == "" {
			continue
		}
		if _, seen := groups[family]; !seen {
			order = append(order, family)
		}
		groups[family] = append(groups[family], i)
	}

	for _, family := range order {
		bundleGroup(out, groups[family])
	}

	return out
}

func bundleGroup(products []domain.Product, members []int) {
	if len(members) <= 1 {
		return
	}

	packSizes := make([]int, len(members))
	baseAt := -1
	for at, idx := range members {
		packSizes[at] = ExtractPackSize(products[idx].Variant)
		if packSizes[at] <= 0 {
			continue
		}
		if baseAt == -1 || packSizes[at] < packSizes[baseAt] {
			baseAt = at
		}
	}
	if baseAt == -1 {
		// No member has a usable pack size, bundling does not apply.
		return
	}

	basePack := packSizes[baseAt]
	baseUnitID := products[members[baseAt]].ID

	var bundledSKUs []string
	totalBaseUnits := 0.0

	for at, idx := range members {
		p := &products[idx]
		info := &domain.BundleInfo{
			PackSize:             packSizes[at],
			BaseUnitID:           baseUnitID,
			ConversionMultiplier: 1,
		}

		if at == baseAt {
			info.IsBaseUnit = true
		} else if packSizes[at] > 0 {
			info.ConversionMultiplier = int(math.Ceil(float64(packSizes[at]) / float64(basePack)))
			sku := p.SKU
			if sku == "" {
				sku = p.ID
			}
			bundledSKUs = append(bundledSKUs, sku)
		}

		totalBaseUnits += replenishmentNeed(p) * float64(info.ConversionMultiplier)
		p.Bundle = info
	}

	base := &products[members[baseAt]]
	base.Bundle.BundledSKUs = bundledSKUs
	base.Bundle.FinalToOrderBase = domain.Float(totalBaseUnits)
}
