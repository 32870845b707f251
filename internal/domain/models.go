// internal/domain/models.go
package domain

// RawRow is a single spreadsheet row as an ordered list of header/value
// cells, preserving the sheet's column order. Values are strings, float64s,
// or nil for blank cells.
type RawRow []RawCell

// RawCell is one column of a raw row, keyed by its original header text.
type RawCell struct {
	Header string `json:"header"`
	Value  any    `json:"value"`
}

// Value returns the value of the first cell carrying the given header.
func (r RawRow) Value(header string) (any, bool) {
	for _, cell := range r {
		if cell.Header == header {
			return cell.Value, true
		}
	}
	return nil, false
}

// Product is the canonical record produced by the normalizer and enriched by
// the downstream stages. Numeric fields are pointers: a nil pointer means the
// attribute was absent (or unparsable) in the source sheet, which every
// downstream formula treats differently from an explicit zero.
type Product struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`

	// Classification
	Brand      string `json:"brand,omitempty"`
	Product    string `json:"product,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Category   string `json:"category,omitempty"`
	ASINs      string `json:"asins,omitempty"`
	GS1Code    string `json:"gs1_code,omitempty"`
	FSN        string `json:"fsn,omitempty"`
	VendorAMZ  string `json:"vendor_amz,omitempty"`
	Column1    string `json:"column1,omitempty"`
	LaunchType string `json:"launch_type,omitempty"`
	Vendor2    string `json:"vendor2,omitempty"`
	Remark     string `json:"remark,omitempty"`

	// Marketplace channel metrics
	FBASales        *float64 `json:"fba_sales,omitempty"`
	RKRZSale        *float64 `json:"rkrz_sale,omitempty"`
	AmazonSale      *float64 `json:"amazon_sale,omitempty"`
	AmazonASD       *float64 `json:"amazon_asd,omitempty"`
	AmazonGrowth    *float64 `json:"amazon_growth,omitempty"`
	MaxDRR          *float64 `json:"max_drr,omitempty"`
	AmazonPASD      *float64 `json:"amazon_pasd,omitempty"`
	Diff            *float64 `json:"diff,omitempty"`
	AmazonInventory *float64 `json:"amazon_inventory,omitempty"`
	AmazonDemand    *float64 `json:"amazon_demand,omitempty"`
	FKAlphaSales    *float64 `json:"fk_alpha_sales,omitempty"`
	FKAlphaInv      *float64 `json:"fk_alpha_inv,omitempty"`
	FKSales         *float64 `json:"fk_sales,omitempty"`
	FBFInv          *float64 `json:"fbf_inv,omitempty"`
	FKSalesTotal    *float64 `json:"fk_sales_total,omitempty"`
	FKInv           *float64 `json:"fk_inv,omitempty"`
	FKASD           *float64 `json:"fk_asd,omitempty"`
	FKGrowth        *float64 `json:"fk_growth,omitempty"`
	MaxDRR2         *float64 `json:"max_drr2,omitempty"`
	FKPASD          *float64 `json:"fk_pasd,omitempty"`
	FKDemand        *float64 `json:"fk_demand,omitempty"`
	OtherMPSales    *float64 `json:"other_mp_sales,omitempty"`
	QCPASD          *float64 `json:"qc_pasd,omitempty"`
	QCommerceDemand *float64 `json:"qcommerce_demand,omitempty"`

	// Planning inputs
	WH                *float64 `json:"wh,omitempty"`
	FBA               *float64 `json:"fba,omitempty"`
	PASD              *float64 `json:"pasd,omitempty"`
	LeadTime          *float64 `json:"lead_time,omitempty"`
	Transit           *float64 `json:"transit,omitempty"`
	OrderFreq         *float64 `json:"order_freq,omitempty"`
	MPDemand          *float64 `json:"mp_demand,omitempty"`
	CTTargetInventory *float64 `json:"ct_target_inventory,omitempty"`

	// Planning outputs carried from the sheet
	ToOrder       *float64 `json:"to_order,omitempty"`
	FinalOrder    *float64 `json:"final_order,omitempty"`
	DaysInvInHand *float64 `json:"days_inv_in_hand,omitempty"`
	DaysInvTotal  *float64 `json:"days_inv_total,omitempty"`

	// Status flags attached by the classifier and aggregator
	IsLowStock  bool `json:"is_low_stock"`
	IsOverstock bool `json:"is_overstock"`

	// Bundle annotations, attached only when the product belongs to a
	// multi-variant family
	Bundle *BundleInfo `json:"bundle,omitempty"`
}

// BundleInfo describes a product's place inside its pack-size family.
type BundleInfo struct {
	PackSize             int      `json:"pack_size"`
	IsBaseUnit           bool     `json:"is_base_unit"`
	BaseUnitID           string   `json:"base_unit_id,omitempty"`
	ConversionMultiplier int      `json:"conversion_multiplier"`
	BundledSKUs          []string `json:"bundled_skus,omitempty"`
	FinalToOrderBase     *float64 `json:"final_to_order_base_units,omitempty"`
}

// IsBundledVariant reports whether the product is a non-base member of a
// bundle; its own order quantity has been folded into the base unit.
func (p *Product) IsBundledVariant() bool {
	return p.Bundle != nil && p.Bundle.BaseUnitID != "" && !p.Bundle.IsBaseUnit
}

// Vendor returns the best available vendor name for the product.
func (p *Product) Vendor() string {
	if p.Vendor2 != "" {
		return p.Vendor2
	}
	if p.VendorAMZ != "" {
		return p.VendorAMZ
	}
	return "Unknown"
}

// OrderSuggestion is a read-only projection derived from a classified,
// bundle-annotated product. It is recomputed wholesale on every upload.
type OrderSuggestion struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	SKU           string  `json:"sku"`
	Vendor        string  `json:"vendor"`
	CurrentStock  float64 `json:"current_stock"`
	SuggestedQty  float64 `json:"suggested_order_quantity"`
	FinalQty      float64 `json:"final_order_quantity"`
	Priority      string  `json:"priority"`
	Urgency       string  `json:"urgency"`
	Reason        string  `json:"reason"`
	RiskVendor    bool    `json:"risk_vendor"`
	DaysInvInHand float64 `json:"days_inv_in_hand"`
	DaysInvTotal  float64 `json:"days_inv_total"`

	IsBaseUnit  bool     `json:"is_base_unit,omitempty"`
	BaseUnitSKU string   `json:"base_unit_sku,omitempty"`
	PackSize    int      `json:"pack_size,omitempty"`
	BundledSKUs []string `json:"bundled_skus,omitempty"`
}

// ForecastPoint is one day on the aggregate depletion curve.
type ForecastPoint struct {
	Day   int     `json:"day"`
	Stock float64 `json:"stock"`
}

// ReorderSuggestion is a product whose warehouse stock sits below its
// safety-adjusted reorder point, with the recommended top-up quantity.
type ReorderSuggestion struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	ReorderQty  float64 `json:"reorder_quantity"`
}

// InventoryMetrics is the aggregated portfolio view for the dashboard.
type InventoryMetrics struct {
	TotalProducts     int     `json:"total_products"`
	TotalValue        float64 `json:"total_value"`
	LowStockItems     int     `json:"low_stock_items"`
	OutOfStockItems   int     `json:"out_of_stock_items"`
	OverstockItems    int     `json:"overstock_items"`
	AvgDRR            float64 `json:"avg_drr"`
	AvgDOC            float64 `json:"avg_doc"`
	AvgPASD           float64 `json:"avg_pasd"`
	ItemsInTransit    int     `json:"items_in_transit"`
	TotalTransit      float64 `json:"total_transit"`
	ItemsToOrder      int     `json:"items_to_order"`
	TotalToOrder      float64 `json:"total_to_order"`
	TargetAchievement float64 `json:"target_achievement"`
	HealthScore       int     `json:"inventory_health_score"`
}

// ProductFilter narrows the product listing endpoints.
type ProductFilter struct {
	Query     string `json:"query"`
	Vendor    string `json:"vendor"`
	LowStock  bool   `json:"low_stock"`
	Overstock bool   `json:"overstock"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// SuggestionFilter narrows the order suggestion listing.
type SuggestionFilter struct {
	Query          string `json:"query"`
	Priority       string `json:"priority"`
	Vendor         string `json:"vendor"`
	ExcludeBundled bool   `json:"exclude_bundled"`
}

// Float returns a pointer to v. Handy for building records in tests and
// normalizer output.
func Float(v float64) *float64 {
	return &v
}

// FloatOr dereferences p, substituting def when the value is absent.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
