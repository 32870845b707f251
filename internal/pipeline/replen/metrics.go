package replen

import (
	"math"

	"github.com/repleniq/backend-go/internal/domain"
)

// CalculateMetrics aggregates the portfolio dashboard view from classified
// products. Every average only counts products whose inputs are actually
// present; absent fields never masquerade as zeros.
func CalculateMetrics(products []domain.Product) domain.InventoryMetrics {
	m := domain.InventoryMetrics{TotalProducts: len(products)}

	var (
		drrSum, drrCount       float64
		docSum, docCount       float64
		targetHit, targetCount float64
	)

	for i := range products {
		p := &products[i]

		if p.IsLowStock {
			m.LowStockItems++
		}
		if p.IsOverstock {
			m.OverstockItems++
		}

		if p.WH != nil {
			m.TotalValue += *p.WH
			if *p.WH == 0 {
				m.OutOfStockItems++
			}
		}

		if p.PASD != nil {
			drrSum += *p.PASD
			drrCount++
		}

		switch {
		case p.DaysInvInHand != nil:
			docSum += *p.DaysInvInHand
			docCount++
		case p.WH != nil && p.PASD != nil && *p.PASD > 0:
			docSum += *p.WH / *p.PASD
			docCount++
		}

		if transit := domain.FloatOr(p.Transit, 0); transit > 0 {
			m.ItemsInTransit++
		}
		m.TotalTransit += domain.FloatOr(p.Transit, 0)

		if toOrder := domain.FloatOr(p.ToOrder, 0); toOrder > 0 {
			m.ItemsToOrder++
		}
		m.TotalToOrder += domain.FloatOr(p.ToOrder, 0)

		if p.CTTargetInventory != nil && *p.CTTargetInventory > 0 && p.WH != nil {
			targetCount++
			if *p.WH >= *p.CTTargetInventory {
				targetHit++
			}
		}
	}

	if drrCount > 0 {
		m.AvgDRR = drrSum / drrCount
		m.AvgPASD = drrSum / drrCount
	}
	if docCount > 0 {
		m.AvgDOC = docSum / docCount
	}
	if targetCount > 0 {
		m.TargetAchievement = targetHit / targetCount * 100
	}

	m.HealthScore = healthScore(m.LowStockItems, m.TotalProducts, m.TargetAchievement, m.AvgDRR)

	return m
}

// healthScore blends stockout rate, target achievement, and average demand
// rate into a 0-100 gauge. The weights are a placeholder business heuristic
// carried over from the upstream planning sheet; keep them in one place until
// the domain owner signs off on a principled formula.
func healthScore(lowStockItems, totalProducts int, targetAchievement, avgDRR float64) int {
	stockoutRate := 0.0
	if totalProducts > 0 {
		stockoutRate = float64(lowStockItems) / float64(totalProducts) * 100
	}

	score := (100 - stockoutRate*0.5 + targetAchievement*0.3 + avgDRR*10) / 1.8

	return int(math.Round(math.Min(math.Max(score, 0), 100)))
}
