package lookup

import (
	"strings"

	"github.com/ladenbot/laden/internal/domain/models"
)

// Aggregate groups matched records by material id in first-seen order,
// summing quantities and collecting distinct non-empty bins per site
// category. First-seen order preserves the spreadsheet's natural ordering as
// a deterministic tie-break.
func Aggregate(matched []models.StockRecord) []models.MaterialGroup {
	var order []string
	groups := make(map[string]*models.MaterialGroup, len(matched))

	for _, record := range matched {
		group, ok := groups[record.MaterialID]
		if !ok {
			group = &models.MaterialGroup{
				MaterialID:  record.MaterialID,
				Description: record.Description,
				Spec:        record.Spec,
				Batch:       record.Batch,
			}
			groups[record.MaterialID] = group
			order = append(order, record.MaterialID)
		}

		site := strings.ToUpper(record.Site)
		switch {
		case strings.Contains(site, models.CategoryMining.Token):
			group.MiningQty += record.Quantity
			group.MiningBins = appendBin(group.MiningBins, record.Bin)
		case strings.Contains(site, models.CategoryHauling.Token):
			group.HaulingQty += record.Quantity
			group.HaulingBins = appendBin(group.HaulingBins, record.Bin)
		}
	}

	out := make([]models.MaterialGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *groups[id])
	}
	return out
}

// appendBin adds a bin code, skipping placeholder values and duplicates.
func appendBin(bins []string, bin string) []string {
	cleaned := cleanCell(bin)
	if cleaned == "" {
		return bins
	}
	for _, existing := range bins {
		if existing == cleaned {
			return bins
		}
	}
	return append(bins, cleaned)
}
