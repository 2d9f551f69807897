package selections

import (
	"fmt"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// QuotaExceededError rejects a mutation that would push a client past their
// weekly meal allowance for one date. It is user-correctable, not fatal.
type QuotaExceededError struct {
	ClientID  string
	Allowed   int
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("client %s quota exceeded: requested %d of %d allowed",
		e.ClientID, e.Requested, e.Allowed)
}

// CheckQuota validates a proposed quantity for one meal against the client's
// allowance. selectedForDate is the client's current per-meal quantities for
// the date in question (see ProjectForClient); the proposed quantity replaces
// whatever the client currently has for mealID. Accepts at exact equality.
//
// Pure function, no side effects; callers run it before committing any
// mutation.
func CheckQuota(client storage.Client, selectedForDate map[string]int, mealID string, proposed int) error {
	otherTotal := 0
	for id, qty := range selectedForDate {
		if id != mealID {
			otherTotal += qty
		}
	}
	if otherTotal+proposed > client.MealsPerWeek {
		return &QuotaExceededError{
			ClientID:  client.ID,
			Allowed:   client.MealsPerWeek,
			Requested: otherTotal + proposed,
		}
	}
	return nil
}
