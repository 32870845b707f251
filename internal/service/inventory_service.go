package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/repleniq/backend-go/internal/cache"
	"github.com/repleniq/backend-go/internal/domain"
	"github.com/repleniq/backend-go/internal/notify"
	"github.com/repleniq/backend-go/internal/pipeline/replen"
)

// ErrEmptySnapshot is returned by read operations before any dataset has been
// uploaded.
var ErrEmptySnapshot = errors.New("no dataset uploaded yet")

// InventoryService owns the current pipeline result. Each upload replaces the
// snapshot wholesale; reads serve whatever snapshot is current. No record is
// ever mutated in place after a run completes.
type InventoryService struct {
	pipeline       *replen.Pipeline
	cache          cache.ResultCache
	sender         notify.Sender
	defaultHorizon int

	mu      sync.RWMutex
	current *replen.Result
}

// NewInventoryService wires the pipeline to its cache and email transport.
// A nil cache or sender selects the no-op fallback; a non-positive
// defaultHorizon selects the pipeline default.
func NewInventoryService(pipeline *replen.Pipeline, cacheImpl cache.ResultCache, sender notify.Sender, defaultHorizon int) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopResultCache()
	}
	if sender == nil {
		sender = notify.LogSender{}
	}
	if defaultHorizon <= 0 {
		defaultHorizon = replen.DefaultHorizonDays
	}
	return &InventoryService{
		pipeline:       pipeline,
		cache:          cacheImpl,
		sender:         sender,
		defaultHorizon: defaultHorizon,
	}
}

// Upload runs the full pipeline over a fresh dataset and swaps the snapshot.
// A failed run leaves the previous snapshot untouched.
func (s *InventoryService) Upload(ctx context.Context, rows []domain.RawRow) (*replen.Result, error) {
	result, err := s.pipeline.Run(rows)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = result
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidation failed")
	}

	return result, nil
}

func (s *InventoryService) snapshot() (*replen.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrEmptySnapshot
	}
	return s.current, nil
}

// Products lists the enriched product collection with optional filtering and
// pagination. total is the match count before pagination.
func (s *InventoryService) Products(filter domain.ProductFilter) ([]domain.Product, int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]domain.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.SKU), query) {
			continue
		}
		if filter.Vendor != "" && p.Vendor() != filter.Vendor {
			continue
		}
		if filter.LowStock && !p.IsLowStock {
			continue
		}
		if filter.Overstock && !p.IsOverstock {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)

	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= total {
			return []domain.Product{}, total, nil
		}
		end := start + filter.PageSize
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}

// LowStock returns the products currently flagged low-stock.
func (s *InventoryService) LowStock() ([]domain.Product, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	items := make([]domain.Product, 0)
	for _, p := range snap.Products {
		if p.IsLowStock {
			items = append(items, p)
		}
	}
	return items, nil
}

// Overstock returns the products currently flagged overstock.
func (s *InventoryService) Overstock() ([]domain.Product, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	items := make([]domain.Product, 0)
	for _, p := range snap.Products {
		if p.IsOverstock {
			items = append(items, p)
		}
	}
	return items, nil
}

// Suggestions returns the ranked order suggestions, filtered.
func (s *InventoryService) Suggestions(filter domain.SuggestionFilter) ([]domain.OrderSuggestion, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return replen.FilterSuggestions(snap.Suggestions, filter), nil
}

// Vendors returns the distinct vendor names across current suggestions.
func (s *InventoryService) Vendors() ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	vendors := make([]string, 0)
	for _, sg := range snap.Suggestions {
		if _, ok := seen[sg.Vendor]; ok {
			continue
		}
		seen[sg.Vendor] = struct{}{}
		vendors = append(vendors, sg.Vendor)
	}
	return vendors, nil
}

// Metrics returns the portfolio metrics, cache-aside.
func (s *InventoryService) Metrics(ctx context.Context) (domain.InventoryMetrics, error) {
	if metrics, ok, err := s.cache.GetMetrics(ctx); err == nil && ok {
		return metrics, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get metrics failed")
	}

	snap, err := s.snapshot()
	if err != nil {
		return domain.InventoryMetrics{}, err
	}

	if err := s.cache.SetMetrics(ctx, snap.Metrics); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set metrics failed")
	}

	return snap.Metrics, nil
}

// Forecast projects the aggregate depletion curve over the given horizon,
// cache-aside per horizon.
func (s *InventoryService) Forecast(ctx context.Context, days int) ([]domain.ForecastPoint, error) {
	if days <= 0 {
		days = s.defaultHorizon
	}

	if points, ok, err := s.cache.GetForecast(ctx, days); err == nil && ok {
		return points, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get forecast failed")
	}

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	points := replen.Project(snap.Products, days).Points()

	if err := s.cache.SetForecast(ctx, days, points); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set forecast failed")
	}

	return points, nil
}

// Reorders lists products below their safety-adjusted reorder point.
func (s *InventoryService) Reorders() ([]domain.ReorderSuggestion, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return replen.ReorderSuggestions(snap.Products), nil
}

// PlaceOrder composes the vendor order email and hands it to the transport.
func (s *InventoryService) PlaceOrder(ctx context.Context, req notify.OrderRequest) error {
	email := notify.ComposeOrderEmail(req)

	if err := s.sender.Send(ctx, email); err != nil {
		return err
	}

	log.Info().
		Str("vendor", req.VendorName).
		Int("items", len(req.Items)).
		Msg("order email handed to transport")

	return nil
}
