package models

// StockRecord is one cleaned row of the inventory sheet. Records are built in
// bulk on every cache refresh and never mutated afterwards.
type StockRecord struct {
	Description string
	MaterialID  string
	Quantity    float64
	Site        string
	Bin         string
	Spec        string
	LastUpdate  string
	Batch       string
}

// SiteCategory identifies an operational context by a substring of the raw
// site/plant code.
type SiteCategory struct {
	Name  string
	Token string
}

// The two categories the warehouse operates: records whose site code contains
// "40AI" belong to Mining, "40AJ" to Hauling. The tokens are mutually
// exclusive, so a record belongs to at most one category.
var (
	CategoryMining  = SiteCategory{Name: "Mining", Token: "40AI"}
	CategoryHauling = SiteCategory{Name: "Hauling", Token: "40AJ"}
)

// MaterialGroup aggregates all matched records sharing one material id:
// representative fields from the first record seen, quantity sums and
// distinct storage bins per site category.
type MaterialGroup struct {
	MaterialID  string
	Description string
	Spec        string
	Batch       string
	MiningQty   float64
	HaulingQty  float64
	MiningBins  []string
	HaulingBins []string
}
