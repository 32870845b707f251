package replen

import (
	"math"
	"sort"

	"github.com/repleniq/backend-go/internal/domain"
)

// DefaultHorizonDays is used when a caller asks for a projection without a
// horizon.
const DefaultHorizonDays = 90

type depletion struct {
	stock float64
	rate  float64
}

// Curve is a lazy, finite depletion projection. Points are computed on demand
// via Next; a consumed curve cannot be rewound, only recomputed via Project.
type Curve struct {
	products []depletion
	horizon  int
	day      int
}

// Project builds the aggregate depletion curve over the given horizon.
// Only products with both pasd and a parsable wh participate; each follows an
// independent linear drawdown floored at zero, with no replenishment arrivals
// modeled.
func Project(products []domain.Product, horizon int) *Curve {
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	valid := make([]depletion, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.PASD == nil || p.WH == nil {
			continue
		}
		valid = append(valid, depletion{stock: *p.WH, rate: *p.PASD})
	}

	return &Curve{products: valid, horizon: horizon}
}

// Next returns the projection for the following day, until the horizon is
// exhausted.
func (c *Curve) Next() (domain.ForecastPoint, bool) {
	if c.day >= c.horizon {
		return domain.ForecastPoint{}, false
	}
	c.day++

	total := 0.0
	for _, d := range c.products {
		total += math.Max(0, d.stock-d.rate*float64(c.day))
	}

	return domain.ForecastPoint{Day: c.day, Stock: math.Round(total)}, true
}

// Points drains the curve into a slice for callers that want the whole curve
// at once.
func (c *Curve) Points() []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, 0, c.horizon-c.day)
	for {
		point, ok := c.Next()
		if !ok {
			return points
		}
		points = append(points, point)
	}
}

// ReorderSuggestions lists products whose warehouse stock sits below the
// safety-adjusted reorder point (pasd x leadTime x 1.5) with a two-lead-time
// top-up quantity, highest quantity first. Products missing pasd, leadTime,
// or wh are skipped.
func ReorderSuggestions(products []domain.Product) []domain.ReorderSuggestion {
	suggestions := make([]domain.ReorderSuggestion, 0)
	for i := range products {
		p := &products[i]
		if p.PASD == nil || p.LeadTime == nil || p.WH == nil {
			continue
		}

		reorderPoint := *p.PASD * *p.LeadTime * 1.5
		if *p.WH >= reorderPoint {
			continue
		}

		qty := math.Max(0, math.Ceil(*p.PASD**p.LeadTime*2-*p.WH))
		suggestions = append(suggestions, domain.ReorderSuggestion{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			ReorderQty:  qty,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].ReorderQty > suggestions[j].ReorderQty
	})

	return suggestions
}
