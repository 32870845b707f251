// Package replen implements the replenishment intelligence pipeline: raw
// spreadsheet rows are normalized into canonical products, bundled by
// pack-size family, classified for stock health, and projected into order
// suggestions and depletion forecasts. Every stage is a pure function from
// one complete collection to the next; one upload triggers one wholesale
// recomputation and the caller owns the only mutable slot.
package replen

import (
	"github.com/rs/zerolog/log"

	"github.com/repleniq/backend-go/internal/domain"
)

// Pipeline ties the stages together for a single deterministic run.
type Pipeline struct {
	classifier *Classifier
}

// New builds a pipeline. riskMarker configures the designated-risk vendor
// match; empty selects the default.
func New(riskMarker string) *Pipeline {
	return &Pipeline{classifier: NewClassifier(riskMarker)}
}

// Classifier exposes the pipeline's classifier for callers that evaluate
// individual records outside a full run.
func (p *Pipeline) Classifier() *Classifier {
	return p.classifier
}

// Result is the complete output of one pipeline run.
type Result struct {
	Products    []domain.Product         `json:"products"`
	Suggestions []domain.OrderSuggestion `json:"suggestions"`
	Metrics     domain.InventoryMetrics  `json:"metrics"`
}

// Run executes the full normalize -> bundle -> classify -> suggest chain over
// an uploaded dataset. The only failure is an empty or wholly unparsable
// input (ErrNoRows); malformed individual fields degrade to absent values.
func (p *Pipeline) Run(rows []domain.RawRow) (*Result, error) {
	products, err := Normalize(rows)
	if err != nil {
		return nil, err
	}

	products = AggregateBundles(products, p.classifier)
	products = p.classifier.Classify(products)

	suggestions := Suggest(products, p.classifier)
	metrics := CalculateMetrics(products)

	log.Info().
		Int("products", len(products)).
		Int("suggestions", len(suggestions)).
		Int("low_stock", metrics.LowStockItems).
		Int("overstock", metrics.OverstockItems).
		Msg("pipeline run complete")

	return &Result{
		Products:    products,
		Suggestions: suggestions,
		Metrics:     metrics,
	}, nil
}
