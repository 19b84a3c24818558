package lookup

import "github.com/ladenbot/laden/internal/domain/models"

// Paginate slices the aggregated groups into fixed-size pages. Requesting a
// page at or past the end (for page > 0) returns lastPage=true instead of an
// empty page, so the caller can tell "nothing more" apart from "nothing".
func Paginate(groups []models.MaterialGroup, page, size int) (pageGroups []models.MaterialGroup, totalPages int, lastPage bool) {
	if size <= 0 || len(groups) == 0 {
		return nil, 0, false
	}

	totalPages = (len(groups) + size - 1) / size
	if page > 0 && page >= totalPages {
		return nil, totalPages, true
	}
	if page < 0 {
		page = 0
	}

	start := page * size
	end := start + size
	if end > len(groups) {
		end = len(groups)
	}
	return groups[start:end], totalPages, false
}
