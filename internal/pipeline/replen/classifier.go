package replen

import (
	"strings"

	"github.com/repleniq/backend-go/internal/domain"
)

const defaultRiskMarker = "china"

const overstockFactor = 1.5

// Classifier evaluates per-record stock predicates and urgency tiers. All
// methods are pure; Classify only attaches flags, it never rewrites metrics.
type Classifier struct {
	riskMarker string
}

// NewClassifier creates a classifier. riskMarker is the case-insensitive
// substring that designates a long-lead-time vendor; empty selects the default.
func NewClassifier(riskMarker string) *Classifier {
	if riskMarker == "" {
		riskMarker = defaultRiskMarker
	}
	return &Classifier{riskMarker: strings.ToLower(riskMarker)}
}

// Classify returns a copy of the input with low-stock and overstock flags set.
func (c *Classifier) Classify(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	for i := range out {
		out[i].IsLowStock = c.IsLowStock(&out[i])
		out[i].IsOverstock = c.IsOverstock(&out[i])
	}
	return out
}

// IsLowStock reports whether available inventory has fallen below the
// lead-time demand threshold: (wh + fba) < pasd x (leadTime + transit).
// Records missing pasd, leadTime, or a parsable wh are out of scope for this
// rule and never flagged. A non-positive threshold also never flags, so
// degenerate inputs cannot produce false positives.
func (c *Classifier) IsLowStock(p *domain.Product) bool {
	if p.PASD == nil || p.LeadTime == nil || p.WH == nil {
		return false
	}

	available := *p.WH + domain.FloatOr(p.FBA, 0)
	threshold := *p.PASD * (*p.LeadTime + domain.FloatOr(p.Transit, 0))

	return threshold > 0 && available < threshold
}

// IsOverstock reports whether warehouse stock exceeds one-and-a-half order
// cycles of demand: wh > pasd x orderFreq x 1.5.
func (c *Classifier) IsOverstock(p *domain.Product) bool {
	wh := domain.FloatOr(p.WH, 0)
	pasd := domain.FloatOr(p.PASD, 0)
	orderFreq := domain.FloatOr(p.OrderFreq, 1)

	return wh > pasd*orderFreq*overstockFactor
}

// IsRiskVendor reports whether either vendor attribute carries the designated
// risk marker.
func (c *Classifier) IsRiskVendor(p *domain.Product) bool {
	return strings.Contains(strings.ToLower(p.Vendor2), c.riskMarker) ||
		strings.Contains(strings.ToLower(p.VendorAMZ), c.riskMarker)
}

// Priority assigns the replenishment tier from days of inventory in hand.
// Designated-risk vendors get wider windows to absorb their longer lead times.
func (c *Classifier) Priority(p *domain.Product) string {
	days := domain.FloatOr(p.DaysInvInHand, 0)

	if c.IsRiskVendor(p) {
		switch {
		case days < 30:
			return domain.PriorityP1
		case days < 45:
			return domain.PriorityP2
		default:
			return domain.PriorityP3
		}
	}

	switch {
	case days < 15:
		return domain.PriorityP1
	case days < 30:
		return domain.PriorityP2
	default:
		return domain.PriorityP3
	}
}

// Urgency is the coarser tier used by the single-item ordering flow.
func (c *Classifier) Urgency(p *domain.Product) string {
	days := domain.FloatOr(p.DaysInvInHand, 0)
	switch {
	case days < 7:
		return domain.UrgencyHigh
	case days < 14:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}
