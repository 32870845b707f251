package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repleniq/backend-go/internal/domain"
	"github.com/repleniq/backend-go/internal/notify"
	"github.com/repleniq/backend-go/internal/pipeline/replen"
)

type captureSender struct {
	sent []notify.Email
	err  error
}

func (s *captureSender) Send(_ context.Context, email notify.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func newTestService(sender notify.Sender) *InventoryService {
	return NewInventoryService(replen.New(""), nil, sender, 0)
}

func testRows() []domain.RawRow {
	return []domain.RawRow{
		{
			{Header: "Product Name", Value: "Vitamin C 60"},
			{Header: "SKU", Value: "VC-60"},
			{Header: "WH", Value: float64(10)},
			{Header: "PASD", Value: float64(4)},
			{Header: "Lead Time", Value: float64(10)},
			{Header: "To Order", Value: float64(30)},
			{Header: "Vendor 2", Value: "Acme Labs"},
		},
		{
			{Header: "Product Name", Value: "Zinc 30"},
			{Header: "SKU", Value: "ZN-30"},
			{Header: "WH", Value: float64(500)},
			{Header: "PASD", Value: float64(1)},
			{Header: "Lead Time", Value: float64(5)},
			{Header: "Order Frequ", Value: float64(30)},
		},
		{
			{Header: "Product Name", Value: "Magnesium 90"},
			{Header: "SKU", Value: "MG-90"},
			{Header: "WH", Value: float64(100)},
			{Header: "PASD", Value: float64(2)},
			{Header: "Lead Time", Value: float64(10)},
			{Header: "Order Frequ", Value: float64(60)},
			{Header: "Vendor 2", Value: "China Imports"},
		},
	}
}

func TestServiceReadsBeforeUpload(t *testing.T) {
	svc := newTestService(nil)

	_, _, err := svc.Products(domain.ProductFilter{})
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = svc.Suggestions(domain.SuggestionFilter{})
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = svc.Metrics(context.Background())
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = svc.Forecast(context.Background(), 30)
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestServiceUploadReplacesSnapshot(t *testing.T) {
	svc := newTestService(nil)

	result, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)
	assert.Len(t, result.Products, 3)

	products, total, err := svc.Products(domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)

	// A second upload replaces the dataset wholesale.
	_, err = svc.Upload(context.Background(), testRows()[:1])
	require.NoError(t, err)

	_, total, err = svc.Products(domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestServiceUploadFailureKeepsPreviousSnapshot(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, replen.ErrNoRows)

	_, total, err := svc.Products(domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestServiceProductFilters(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	products, total, err := svc.Products(domain.ProductFilter{Query: "zinc"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "ZN-30", products[0].SKU)

	_, total, err = svc.Products(domain.ProductFilter{Vendor: "Acme Labs"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	products, total, err = svc.Products(domain.ProductFilter{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "VC-60", products[0].SKU)
}

func TestServiceProductPagination(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	page, total, err := svc.Products(domain.ProductFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	page, total, err = svc.Products(domain.ProductFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	page, _, err = svc.Products(domain.ProductFilter{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestServiceLowStockAndOverstock(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	low, err := svc.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "VC-60", low[0].SKU)

	over, err := svc.Overstock()
	require.NoError(t, err)
	require.Len(t, over, 1)
	assert.Equal(t, "ZN-30", over[0].SKU)
}

func TestServiceForecastAndReorders(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	points, err := svc.Forecast(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, points, 10)
	// Day 1: (10-4) + (500-1) + (100-2) = 603.
	assert.Equal(t, 603.0, points[0].Stock)

	// A non-positive horizon falls back to the default.
	points, err = svc.Forecast(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, points, replen.DefaultHorizonDays)

	reorders, err := svc.Reorders()
	require.NoError(t, err)
	require.Len(t, reorders, 1)
	// VC-60: reorder point 4x10x1.5 = 60 > 10; qty = ceil(80-10) = 70.
	assert.Equal(t, "VC-60", reorders[0].SKU)
	assert.Equal(t, 70.0, reorders[0].ReorderQty)
}

func TestServiceVendors(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Upload(context.Background(), testRows())
	require.NoError(t, err)

	vendors, err := svc.Vendors()
	require.NoError(t, err)
	assert.Contains(t, vendors, "Acme Labs")
}

func TestServicePlaceOrder(t *testing.T) {
	sender := &captureSender{}
	svc := newTestService(sender)

	req := notify.OrderRequest{
		VendorName:  "Acme Labs",
		VendorEmail: "orders@acme.example",
		Items: []notify.OrderItem{
			{Product: domain.Product{Name: "Vitamin C 60", SKU: "VC-60"}, Quantity: 24},
		},
	}

	require.NoError(t, svc.PlaceOrder(context.Background(), req))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "orders@acme.example", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "Quantity: 24 units")
}

func TestServicePlaceOrderPropagatesSendFailure(t *testing.T) {
	sender := &captureSender{err: assert.AnError}
	svc := newTestService(sender)

	err := svc.PlaceOrder(context.Background(), notify.OrderRequest{VendorName: "Acme"})
	assert.ErrorIs(t, err, assert.AnError)
}
