package lookup

import (
	"testing"

	"github.com/ladenbot/laden/internal/domain/models"
)

func testRecords() []models.StockRecord {
	return []models.StockRecord{
		{Description: "WYPALL L30", MaterialID: "M1", Quantity: 5, Site: "40AI-01", Bin: "A-01"},
		{Description: "WYPALL L30", MaterialID: "M1", Quantity: 3, Site: "40AJ-02", Bin: "B-07"},
		{Description: "WYPALL X60", MaterialID: "M2", Quantity: 2, Site: "40AI-01", Bin: "A-02"},
		{Description: "FILTER UDARA PC200", MaterialID: "WO-3301", Quantity: 4, Site: "40AJ-02", Bin: "C-11"},
	}
}

func TestMatchConjunctive(t *testing.T) {
	records := testRecords()

	broad := Match(records, "wypall", 0.7)
	if len(broad.Records) != 3 {
		t.Fatalf("Match(wypall) returned %d records, want 3", len(broad.Records))
	}

	narrow := Match(records, "wypall l30", 0.7)
	if len(narrow.Records) != 2 {
		t.Fatalf("Match(wypall l30) returned %d records, want 2", len(narrow.Records))
	}

	// Adding a token never widens the result.
	if len(narrow.Records) > len(broad.Records) {
		t.Error("adding a token widened the match set")
	}

	if broad.Suggestion != "" {
		t.Errorf("exact match produced a suggestion %q", broad.Suggestion)
	}
}

func TestMatchMaterialID(t *testing.T) {
	records := testRecords()

	// Part-number matching folds O to 0 and ignores separators.
	for _, phrase := range []string{"wo3301", "WO-3301", "w03301"} {
		got := Match(records, phrase, 0.7)
		if len(got.Records) != 1 || got.Records[0].MaterialID != "WO-3301" {
			t.Errorf("Match(%q) did not resolve material WO-3301", phrase)
		}
	}
}

func TestMatchFuzzyFallback(t *testing.T) {
	records := testRecords()

	got := Match(records, "wypall l40", 0.7)
	if got.Suggestion != "WYPALL L30" {
		t.Fatalf("suggestion = %q, want WYPALL L30", got.Suggestion)
	}
	if len(got.Records) != 2 {
		t.Fatalf("fallback matched %d records, want 2", len(got.Records))
	}

	// Below the threshold the fallback must not fire.
	if got := Match(records, "zzzzz", 0.7); len(got.Records) != 0 || got.Suggestion != "" {
		t.Errorf("dissimilar phrase matched: %+v", got)
	}

	// The legacy threshold is more permissive.
	strict := Match(records, "wypol", 0.7)
	loose := Match(records, "wypol", 0.5)
	if len(loose.Records) < len(strict.Records) {
		t.Error("lowering the threshold removed matches")
	}
}

func TestMatchEmptyPhrase(t *testing.T) {
	if got := Match(testRecords(), "", 0.7); len(got.Records) != 0 {
		t.Errorf("empty phrase matched %d records", len(got.Records))
	}
	if got := Match(testRecords(), "   ", 0.7); len(got.Records) != 0 {
		t.Errorf("blank phrase matched %d records", len(got.Records))
	}
}
