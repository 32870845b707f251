package replen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/repleniq/backend-go/internal/domain"
)

// Suggest derives an order suggestion for every classified, bundle-annotated
// product that requires action, ranked by priority tier and then by ascending
// days of inventory in hand within a tier.
func Suggest(products []domain.Product, classifier *Classifier) []domain.OrderSuggestion {
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	suggestions := make([]domain.OrderSuggestion, 0)
	for i := range products {
		p := &products[i]
		if !needsOrdering(p) {
			continue
		}
		suggestions = append(suggestions, buildSuggestion(p, byID, classifier))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := domain.PriorityRank(suggestions[i].Priority), domain.PriorityRank(suggestions[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return suggestions[i].DaysInvInHand < suggestions[j].DaysInvInHand
	})

	return suggestions
}

func needsOrdering(p *domain.Product) bool {
	if domain.FloatOr(p.ToOrder, 0) > 0 {
		return true
	}
	if p.Bundle != nil && p.Bundle.IsBaseUnit && domain.FloatOr(p.Bundle.FinalToOrderBase, 0) > 0 {
		return true
	}
	return p.IsLowStock
}

func buildSuggestion(p *domain.Product, byID map[string]*domain.Product, classifier *Classifier) domain.OrderSuggestion {
	days := domain.FloatOr(p.DaysInvInHand, 0)
	risk := classifier.IsRiskVendor(p)

	suggested := domain.FloatOr(p.ToOrder, 0)
	if p.Bundle != nil && p.Bundle.IsBaseUnit && p.Bundle.FinalToOrderBase != nil {
		suggested = *p.Bundle.FinalToOrderBase
	}

	// A bundled variant's need has already been folded into its base unit.
	final := suggested
	if p.IsBundledVariant() {
		final = 0
	}

	s := domain.OrderSuggestion{
		ProductID:     p.ID,
		ProductName:   p.Name,
		SKU:           p.SKU,
		Vendor:        p.Vendor(),
		CurrentStock:  domain.FloatOr(p.WH, 0) + domain.FloatOr(p.FBA, 0),
		SuggestedQty:  suggested,
		FinalQty:      final,
		Priority:      classifier.Priority(p),
		Urgency:       classifier.Urgency(p),
		RiskVendor:    risk,
		DaysInvInHand: days,
		DaysInvTotal:  domain.FloatOr(p.DaysInvTotal, 0),
	}

	if p.Bundle != nil {
		s.IsBaseUnit = p.Bundle.IsBaseUnit
		s.PackSize = p.Bundle.PackSize
		s.BundledSKUs = p.Bundle.BundledSKUs
		if p.IsBundledVariant() {
			if base, ok := byID[p.Bundle.BaseUnitID]; ok {
				s.BaseUnitSKU = base.SKU
			}
		}
	}

	s.Reason = buildReason(p, &s)

	return s
}

// buildReason assembles the human-readable justification. It is explanatory
// only and has no effect on ranking or eligibility.
func buildReason(p *domain.Product, s *domain.OrderSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.1f days of inventory in hand.", s.DaysInvInHand)
	if s.RiskVendor {
		b.WriteString(" Designated-risk vendor.")
	}

	switch {
	case s.IsBaseUnit && len(s.BundledSKUs) > 0:
		fmt.Fprintf(&b, " Includes %d bundled SKUs.", len(s.BundledSKUs))
	case s.BaseUnitSKU != "":
		fmt.Fprintf(&b, " Bundled with base SKU: %s.", s.BaseUnitSKU)
	case domain.FloatOr(p.ToOrder, 0) > 0:
		b.WriteString(" Sheet suggests ordering.")
	default:
		b.WriteString(" Low stock alert.")
	}

	return b.String()
}

// FilterSuggestions applies free-text, priority, vendor, and bundled-variant
// filters to a suggestion list.
func FilterSuggestions(suggestions []domain.OrderSuggestion, filter domain.SuggestionFilter) []domain.OrderSuggestion {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]domain.OrderSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if query != "" &&
			!strings.Contains(strings.ToLower(s.ProductName), query) &&
			!strings.Contains(strings.ToLower(s.SKU), query) {
			continue
		}
		if filter.Priority != "" && !strings.EqualFold(s.Priority, filter.Priority) {
			continue
		}
		if filter.Vendor != "" && s.Vendor != filter.Vendor {
			continue
		}
		if filter.ExcludeBundled && s.BaseUnitSKU != "" && !s.IsBaseUnit {
			continue
		}
		out = append(out, s)
	}

	return out
}
