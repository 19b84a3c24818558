package lookup

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ladenbot/laden/internal/domain/models"
)

// ErrNoUsableColumns signals that the sheet header exposes neither a
// description nor a quantity column, so no records can be extracted.
var ErrNoUsableColumns = errors.New("sheet header has no usable description or quantity column")

type column int

const (
	colDescription column = iota
	colMaterial
	colQuantity
	colSite
	colBin
	colSpec
	colUpdate
	colBatch
)

type columnSpec struct {
	col       column
	fragments []string
	exclude   []string
}

// sheetColumns resolves logical fields against header names by
// case-insensitive substring match. Adding a recognized header alias is a
// table edit, not a control-flow change.
var sheetColumns = []columnSpec{
	{col: colDescription, fragments: []string{"desc"}},
	{col: colMaterial, fragments: []string{"material"}, exclude: []string{"desc"}},
	{col: colQuantity, fragments: []string{"total", "stock", "unrestricted", "qty", "quantity"}},
	{col: colSite, fragments: []string{"plant", "site"}},
	{col: colBin, fragments: []string{"bin"}},
	{col: colSpec, fragments: []string{"procurement", "spec"}},
	{col: colUpdate, fragments: []string{"update"}},
	{col: colBatch, fragments: []string{"batch"}},
}

// resolveColumns maps each logical field to a header index, -1 when absent.
// The leftmost matching header wins.
func resolveColumns(header []string) map[column]int {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	indexes := make(map[column]int, len(sheetColumns))
	for _, spec := range sheetColumns {
		indexes[spec.col] = -1
		for i, h := range lowered {
			if headerMatches(h, spec) {
				indexes[spec.col] = i
				break
			}
		}
	}
	return indexes
}

func headerMatches(header string, spec columnSpec) bool {
	for _, ex := range spec.exclude {
		if strings.Contains(header, ex) {
			return false
		}
	}
	for _, frag := range spec.fragments {
		if strings.Contains(header, frag) {
			return true
		}
	}
	return false
}

// buildRecords turns the raw sheet grid (header row first) into stock records.
func buildRecords(rows [][]string) ([]models.StockRecord, error) {
	if len(rows) == 0 {
		return nil, ErrNoUsableColumns
	}

	indexes := resolveColumns(rows[0])
	if indexes[colDescription] < 0 || indexes[colQuantity] < 0 {
		return nil, ErrNoUsableColumns
	}

	records := make([]models.StockRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// Rows truncated before the quantity column carry no stock figure.
		if len(row) <= indexes[colQuantity] {
			continue
		}

		material := strings.TrimSpace(cell(row, indexes[colMaterial]))
		if material == "" {
			material = "-"
		}

		records = append(records, models.StockRecord{
			Description: strings.TrimSpace(cell(row, indexes[colDescription])),
			MaterialID:  material,
			Quantity:    parseQuantity(cell(row, indexes[colQuantity])),
			Site:        strings.TrimSpace(cell(row, indexes[colSite])),
			Bin:         strings.TrimSpace(cell(row, indexes[colBin])),
			Spec:        cleanCell(cell(row, indexes[colSpec])),
			LastUpdate:  cleanCell(cell(row, indexes[colUpdate])),
			Batch:       cleanCell(cell(row, indexes[colBatch])),
		})
	}

	return records, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// cleanCell normalizes placeholder cell values to the empty string.
func cleanCell(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "nan", "none", "null", "-", "0":
		return ""
	}
	return trimmed
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseQuantity extracts a number from a noisy cell like "1.250 PC" or
// "Rp 300". Unparsable values count as zero stock.
func parseQuantity(raw string) float64 {
	stripped := nonNumeric.ReplaceAllString(raw, "")
	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0
	}
	return value
}
