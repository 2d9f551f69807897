package selections

import (
	"time"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// staleAfter is how far in the past an entry's date may be before the entry
// is removed on load.
const staleAfter = 24 * time.Hour

// Prune removes week entries whose date is set and strictly more than one
// day before now. Undated entries are never pruned. TotalWeeks is resynced
// to the surviving entry count so the planner header stays consistent after
// old weeks drop off.
//
// The removed dates are returned so callers holding denormalized per-client
// views can strip the matching records.
func Prune(doc *storage.SelectionDocument, now time.Time) (removed []time.Time, changed bool) {
	kept := doc.Selections[:0]
	for _, entry := range doc.Selections {
		if entry.Date != nil && now.Sub(*entry.Date) > staleAfter {
			removed = append(removed, *entry.Date)
			continue
		}
		kept = append(kept, entry)
	}
	if len(removed) == 0 {
		return nil, false
	}

	doc.Selections = kept
	doc.TotalWeeks = len(kept)
	if doc.TotalWeeks < 1 {
		doc.TotalWeeks = 1
	}
	return removed, true
}
