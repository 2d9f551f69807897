package selections

import (
	"time"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// SameDay reports whether two timestamps fall on the same UTC calendar day.
// Week entries are matched by day, never by exact timestamp.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// findWeekEntry returns a pointer to the entry for the given calendar day,
// or nil when no entry matches.
func findWeekEntry(doc *storage.SelectionDocument, date time.Time) *storage.WeekEntry {
	for i := range doc.Selections {
		if doc.Selections[i].Date != nil && SameDay(*doc.Selections[i].Date, date) {
			return &doc.Selections[i]
		}
	}
	return nil
}

// findClientSelection returns a pointer to the client's block within an
// entry, or nil when the client has no selections there.
func findClientSelection(entry *storage.WeekEntry, clientID string) *storage.ClientSelection {
	for i := range entry.Clients {
		if entry.Clients[i].ClientID == clientID {
			return &entry.Clients[i]
		}
	}
	return nil
}

// ProjectForDate returns the week-level meal quantities for the entry on the
// given calendar day, or an empty map when no entry matches.
func ProjectForDate(doc *storage.SelectionDocument, date time.Time) map[string]int {
	entry := findWeekEntry(doc, date)
	if entry == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(entry.Meals))
	for id, qty := range entry.Meals {
		out[id] = qty
	}
	return out
}

// ProjectForClient returns one client's meal quantities for the given
// calendar day. An absent entry or client yields an empty map.
func ProjectForClient(doc *storage.SelectionDocument, clientID string, date time.Time) map[string]int {
	entry := findWeekEntry(doc, date)
	if entry == nil {
		return map[string]int{}
	}
	cs := findClientSelection(entry, clientID)
	if cs == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(cs.Meals))
	for id, qty := range cs.Meals {
		out[id] = qty
	}
	return out
}

// TotalForMealOnDate sums one meal's quantity across every client's
// selections for the given calendar day.
func TotalForMealOnDate(doc *storage.SelectionDocument, mealID string, date time.Time) int {
	entry := findWeekEntry(doc, date)
	if entry == nil {
		return 0
	}
	total := 0
	for _, cs := range entry.Clients {
		total += cs.Meals[mealID]
	}
	return total
}
