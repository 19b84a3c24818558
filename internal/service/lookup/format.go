package lookup

import (
	"fmt"
	"strings"

	"github.com/ladenbot/laden/internal/domain/models"
)

const (
	resultDivider     = "━━━━━━━━━━━━━━━━━━"
	liveSourceLabel   = "Live via Google Sheet"
	emptyBinsLabel    = "-"
	batchGroupLimit   = 3
	introMessage      = "🤝 *Salam Kenal, Saya LADEN*\nSiap melayani cek stok 24 Jam.\nKetik *Tanya Den [Barang]*"
	unavailableReply  = "⚠️ Gagal mengambil data server."
	notFoundTemplate  = "🙏 Stok *'%s'* boten wonten."
	lastPageTemplate  = "🙏 Sampun telas Pak, hasil *'%s'* sudah tampil semua."
	correctionFormat  = "⚠️ _Mboten wonten. Maksud Bapak:_ *%s*?\n\n"
	greetingHeader    = "🙏 *Laden jawab ya...*\n"
	pageFooterFormat  = "Hal %d/%d • ketik *lagi* untuk lanjut"
)

// ResultView is everything the formatter needs to render one result page.
type ResultView struct {
	Keyword     string
	Suggestion  string
	Groups      []models.MaterialGroup
	TotalGroups int
	Page        int
	TotalPages  int
	LastUpdate  string
}

// BatchItem is one phrase's compact result block in a multi-item request.
type BatchItem struct {
	Phrase string
	Groups []models.MaterialGroup
}

// FormatIntro renders the self-introduction message.
func FormatIntro() string {
	return introMessage
}

// FormatUnavailable renders the apology sent when no dataset is available.
func FormatUnavailable() string {
	return unavailableReply
}

// FormatNotFound renders the negative answer for an unmatched keyword.
func FormatNotFound(keyword string) string {
	return fmt.Sprintf(notFoundTemplate, keyword)
}

// FormatLastPage renders the explicit "no further pages" answer.
func FormatLastPage(keyword string) string {
	return fmt.Sprintf(lastPageTemplate, keyword)
}

// FormatResult renders one page of aggregated groups.
func FormatResult(view ResultView) string {
	var b strings.Builder
	b.WriteString(greetingHeader)

	if view.Suggestion != "" {
		fmt.Fprintf(&b, correctionFormat, view.Suggestion)
	} else {
		fmt.Fprintf(&b, "Pencarian: %s (%d items)\n", strings.ToUpper(view.Keyword), view.TotalGroups)
	}
	b.WriteString(resultDivider + "\n")

	for _, group := range view.Groups {
		writeGroup(&b, group)
	}

	label := view.LastUpdate
	if label == "" {
		label = liveSourceLabel
	}
	fmt.Fprintf(&b, "🕒 %s", label)

	if view.TotalPages > 1 {
		fmt.Fprintf(&b, "\n"+pageFooterFormat, view.Page+1, view.TotalPages)
	}
	return b.String()
}

// FormatBatch renders compact blocks for a multi-item request, capped to the
// first few groups per phrase and never paginated.
func FormatBatch(items []BatchItem) string {
	var b strings.Builder
	b.WriteString(greetingHeader)

	for _, item := range items {
		fmt.Fprintf(&b, "\n▸ *%s*\n", strings.ToUpper(item.Phrase))
		if len(item.Groups) == 0 {
			b.WriteString("  _boten wonten_\n")
			continue
		}

		groups := item.Groups
		if len(groups) > batchGroupLimit {
			groups = groups[:batchGroupLimit]
		}
		for _, group := range groups {
			fmt.Fprintf(&b, "  %s | Mining %d | Hauling %d\n",
				group.Description, int(group.MiningQty), int(group.HaulingQty))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeGroup(b *strings.Builder, group models.MaterialGroup) {
	fmt.Fprintf(b, "*%s*\n", group.Description)
	if group.Spec != "" {
		fmt.Fprintf(b, "Mat: %s (%s)\n", group.MaterialID, group.Spec)
	} else {
		fmt.Fprintf(b, "Mat: %s\n", group.MaterialID)
	}
	fmt.Fprintf(b, "Mining : %d | Hauling : %d\n", int(group.MiningQty), int(group.HaulingQty))
	fmt.Fprintf(b, "(%s | %s)\n\n", joinBins(group.MiningBins), joinBins(group.HaulingBins))
}

func joinBins(bins []string) string {
	if len(bins) == 0 {
		return emptyBinsLabel
	}
	return strings.Join(bins, ", ")
}

// freshnessLabel picks the first non-empty update label among matched
// records; the sheet fills it on only a few rows.
func freshnessLabel(records []models.StockRecord) string {
	for _, record := range records {
		if record.LastUpdate != "" {
			return record.LastUpdate
		}
	}
	return ""
}
