package replen

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/repleniq/backend-go/internal/domain"
)

// ErrNoRows is returned when an upload contains no data rows at all. This is
// the only ingestion-level failure; individual malformed fields degrade to
// absent values instead.
var ErrNoRows = errors.New("uploaded dataset contains no rows")

// rowLookup indexes a raw row by normalized header key.
type rowLookup map[string]any

// buildLookup indexes the row's cells in column order. When two distinct
// headers normalize to the same key, the leftmost column wins.
func buildLookup(row domain.RawRow) rowLookup {
	lookup := make(rowLookup, len(row))
	for _, cell := range row {
		key := normalizeHeader(cell.Header)
		if key == "" {
			continue
		}
		if _, exists := lookup[key]; !exists {
			lookup[key] = cell.Value
		}
	}
	return lookup
}

// str resolves a canonical text attribute through its alias list.
func (l rowLookup) str(aliases []string) string {
	for _, key := range aliases {
		value, ok := l[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

// num resolves a canonical numeric attribute. Textual values are coerced when
// unambiguous; a failed coercion yields absence (nil), logged but non-fatal.
func (l rowLookup) num(attr string, aliases []string) *float64 {
	for _, key := range aliases {
		value, ok := l[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return domain.Float(v)
		case int:
			return domain.Float(float64(v))
		case int64:
			return domain.Float(float64(v))
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
			if err != nil {
				log.Debug().Str("attribute", attr).Str("value", trimmed).
					Msg("could not coerce field to number, treating as absent")
				return nil
			}
			return domain.Float(parsed)
		}
	}
	return nil
}

// Normalize maps raw spreadsheet rows onto canonical products, one per row in
// row order. Rows are never dropped; a row with no recognizable columns still
// yields a product with generated identity fields.
func Normalize(rows []domain.RawRow) ([]domain.Product, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		lookup := buildLookup(row)

		id := uuid.NewString()[:8]

		p := domain.Product{
			ID:         id,
			Brand:      lookup.str(stringAliases["brand"]),
			Product:    lookup.str(stringAliases["product"]),
			Variant:    lookup.str(stringAliases["variant"]),
			Category:   lookup.str(stringAliases["category"]),
			ASINs:      lookup.str(stringAliases["asins"]),
			GS1Code:    lookup.str(stringAliases["gs1Code"]),
			FSN:        lookup.str(stringAliases["fsn"]),
			VendorAMZ:  lookup.str(stringAliases["vendorAMZ"]),
			Column1:    lookup.str(stringAliases["column1"]),
			LaunchType: lookup.str(stringAliases["launchType"]),
			Vendor2:    lookup.str(stringAliases["vendor2"]),
			Remark:     lookup.str(stringAliases["remark"]),

			FBASales:        lookup.num("fbaSales", numberAliases["fbaSales"]),
			RKRZSale:        lookup.num("rkrzSale", numberAliases["rkrzSale"]),
			AmazonSale:      lookup.num("amazonSale", numberAliases["amazonSale"]),
			AmazonASD:       lookup.num("amazonASD", numberAliases["amazonASD"]),
			AmazonGrowth:    lookup.num("amazonGrowth", numberAliases["amazonGrowth"]),
			MaxDRR:          lookup.num("maxDRR", numberAliases["maxDRR"]),
			AmazonPASD:      lookup.num("amazonPASD", numberAliases["amazonPASD"]),
			Diff:            lookup.num("diff", numberAliases["diff"]),
			AmazonInventory: lookup.num("amazonInventory", numberAliases["amazonInventory"]),
			AmazonDemand:    lookup.num("amazonDemand", numberAliases["amazonDemand"]),
			FKAlphaSales:    lookup.num("fkAlphaSales", numberAliases["fkAlphaSales"]),
			FKAlphaInv:      lookup.num("fkAlphaInv", numberAliases["fkAlphaInv"]),
			FKSales:         lookup.num("fkSales", numberAliases["fkSales"]),
			FBFInv:          lookup.num("fbfInv", numberAliases["fbfInv"]),
			FKSalesTotal:    lookup.num("fkSalesTotal", numberAliases["fkSalesTotal"]),
			FKInv:           lookup.num("fkInv", numberAliases["fkInv"]),
			FKASD:           lookup.num("fkASD", numberAliases["fkASD"]),
			FKGrowth:        lookup.num("fkGrowth", numberAliases["fkGrowth"]),
			MaxDRR2:         lookup.num("maxDRR2", numberAliases["maxDRR2"]),
			FKPASD:          lookup.num("fkPASD", numberAliases["fkPASD"]),
			FKDemand:        lookup.num("fkDemand", numberAliases["fkDemand"]),
			OtherMPSales:    lookup.num("otherMPSales", numberAliases["otherMPSales"]),
			QCPASD:          lookup.num("qcPASD", numberAliases["qcPASD"]),
			QCommerceDemand: lookup.num("qcommerceDemand", numberAliases["qcommerceDemand"]),

			WH:                lookup.num("wh", numberAliases["wh"]),
			FBA:               lookup.num("fba", numberAliases["fba"]),
			PASD:              lookup.num("pasd", numberAliases["pasd"]),
			LeadTime:          lookup.num("leadTime", numberAliases["leadTime"]),
			Transit:           lookup.num("transit", numberAliases["transit"]),
			OrderFreq:         lookup.num("orderFreq", numberAliases["orderFreq"]),
			MPDemand:          lookup.num("mpDemand", numberAliases["mpDemand"]),
			CTTargetInventory: lookup.num("ctTargetInventory", numberAliases["ctTargetInventory"]),

			ToOrder:       lookup.num("toOrder", numberAliases["toOrder"]),
			FinalOrder:    lookup.num("finalOrder", numberAliases["finalOrder"]),
			DaysInvInHand: lookup.num("daysInvInHand", numberAliases["daysInvInHand"]),
			DaysInvTotal:  lookup.num("daysInvTotal", numberAliases["daysInvTotal"]),
		}

		p.Name = deriveName(&p, lookup)
		p.SKU = deriveSKU(&p, lookup)

		products = append(products, p)
	}

	return products, nil
}

func deriveName(p *domain.Product, lookup rowLookup) string {
	if name := lookup.str(stringAliases["productName"]); name != "" {
		return name
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{p.Brand, p.Product, p.Variant} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	return "Product " + p.ID
}

func deriveSKU(p *domain.Product, lookup rowLookup) string {
	if sku := lookup.str(stringAliases["sku"]); sku != "" {
		return sku
	}

	return "SKU-" + p.ID
}
