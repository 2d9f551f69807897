package selections

import (
	"fmt"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// Clean converts raw wire entries into persisted week entries satisfying the
// document invariants: meal keys that are empty or the literal string
// "undefined" are dropped, quantities are already coerced to non-negative
// ints by RawQuantity, client blocks get the same treatment, and a missing
// clientName defaults to "Client {id}". Dates are carried over only when
// present on input.
//
// Clean is total and idempotent; it never rejects an entry, however
// malformed.
func Clean(raw []RawWeekEntry) []storage.WeekEntry {
	cleaned := make([]storage.WeekEntry, 0, len(raw))
	for _, entry := range raw {
		out := storage.WeekEntry{
			WeekNumber: entry.WeekNumber,
			Meals:      cleanMeals(entry.Meals),
			Date:       entry.Date.Time,
		}
		for _, client := range entry.Clients {
			name := client.ClientName
			if name == "" {
				name = fmt.Sprintf("Client %s", client.ClientID)
			}
			out.Clients = append(out.Clients, storage.ClientSelection{
				ClientID:   client.ClientID,
				ClientName: name,
				Meals:      cleanMeals(client.Meals),
			})
		}
		cleaned = append(cleaned, out)
	}
	return cleaned
}

// cleanMeals rebuilds a quantity map, dropping placeholder keys left behind
// by buggy clients. JSON object keys are always strings in Go, so the
// non-string-key case collapses into the empty/"undefined" checks.
func cleanMeals(raw map[string]RawQuantity) map[string]int {
	meals := make(map[string]int, len(raw))
	for id, qty := range raw {
		if !validMealKey(id) {
			continue
		}
		meals[id] = int(qty)
	}
	return meals
}

func validMealKey(id string) bool {
	return id != "" && id != "undefined"
}
