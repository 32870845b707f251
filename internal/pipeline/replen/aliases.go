package replen

import "strings"

// headerSanitizer strips the separators that vary between spreadsheet exports
// so that "Lead Time", "lead_time" and "LeadTime\n" all resolve to the same key.
var headerSanitizer = strings.NewReplacer(
	" ", "", "_", "", "\n", "", "\r", "", "\t", "", ".", "", "-", "", "/", "",
)

func normalizeHeader(name string) string {
	return headerSanitizer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// stringAliases maps each canonical text attribute to the normalized header
// keys it may arrive under. The first key is the canonical header itself.
var stringAliases = map[string][]string{
	"brand":       {"brand"},
	"product":     {"product"},
	"variant":     {"variant"},
	"productName": {"productname", "name"},
	"category":    {"category", "productcategory"},
	"asins":       {"asins"},
	"gs1Code":     {"gs1code"},
	"sku":         {"sku", "skuid", "productid"},
	"fsn":         {"fsn"},
	"vendorAMZ":   {"vendoramz"},
	"column1":     {"column1"},
	"launchType":  {"launchtype"},
	"vendor2":     {"vendor2"},
	"remark":      {"remark"},
}

// numberAliases does the same for numeric attributes. leadTime additionally
// accepts the legacy "reorder time" and "lt" headers seen in older exports.
var numberAliases = map[string][]string{
	"fbaSales":          {"fbasales"},
	"rkrzSale":          {"rkrzsale"},
	"amazonSale":        {"amazonsale"},
	"amazonASD":         {"amazonasd"},
	"amazonGrowth":      {"amazongrowth"},
	"maxDRR":            {"maxdrr"},
	"amazonPASD":        {"amazonpasd"},
	"diff":              {"diff"},
	"ctTargetInventory": {"cttargetinventory"},
	"amazonInventory":   {"amazoninventory"},
	"fba":               {"fba"},
	"amazonDemand":      {"amazondemand"},
	"fkAlphaSales":      {"fkalphasales"},
	"fkAlphaInv":        {"fkalphainv"},
	"fkSales":           {"fksales"},
	"fbfInv":            {"fbfinv"},
	"fkSalesTotal":      {"fksalestotal"},
	"fkInv":             {"fkinv"},
	"fkASD":             {"fkasd"},
	"fkGrowth":          {"fkgrowth"},
	"maxDRR2":           {"maxdrr2"},
	"fkPASD":            {"fkpasd"},
	"fkDemand":          {"fkdemand"},
	"otherMPSales":      {"othermpsales"},
	"qcPASD":            {"qcpasd"},
	"qcommerceDemand":   {"qcommercedemand"},
	"wh":                {"wh"},
	"leadTime":          {"leadtime", "reordertime", "lt"},
	"orderFreq":         {"orderfreq", "orderfrequ", "orderfrequency"},
	"pasd":              {"pasd"},
	"mpDemand":          {"mpdemand"},
	"transit":           {"transit"},
	"toOrder":           {"toorder"},
	"finalOrder":        {"finalorder"},
	"daysInvInHand":     {"daysinvinhand", "noofdaysinvinhand"},
	"daysInvTotal":      {"daysinvtotal", "noofdaysinvtotal"},
}
