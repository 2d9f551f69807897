package selections

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawQuantity is a quantity as it arrives on the wire. Older clients sent
// booleans, numbers, or numeric strings interchangeably, so the value is
// normalized exactly once at the JSON boundary and never re-validated
// downstream: true/false become 1/0, numbers are truncated to ints, numeric
// strings are parsed, and anything else falls back to 0. Negative and NaN
// values are clipped to 0; values beyond the int32 range saturate at that
// bound, so a float-to-int conversion can never wrap negative. Decoding
// never fails.
type RawQuantity int

func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "true":
		*q = 1
		return nil
	case "false", "null", "":
		*q = 0
		return nil
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		*q = clipQuantity(f)
		return nil
	}

	// Numeric string, e.g. "3".
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*q = clipQuantity(f)
			return nil
		}
	}

	*q = 0
	return nil
}

func (q RawQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(q))
}

func clipQuantity(f float64) RawQuantity {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return RawQuantity(int(f))
}

// RawDate accepts both full RFC 3339 timestamps and bare YYYY-MM-DD strings,
// which is what the web app and the extension actually send. Unparseable
// values decode as absent rather than failing the request.
type RawDate struct {
	Time *time.Time
}

func (d *RawDate) UnmarshalJSON(data []byte) error {
	d.Time = nil

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if t, err := ParseDate(s); err == nil {
		d.Time = &t
	}
	return nil
}

func (d RawDate) MarshalJSON() ([]byte, error) {
	if d.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}

// ParseDate parses an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", s)
}

// RawClientSelection is one client's block inside a raw week entry.
type RawClientSelection struct {
	ClientID   string                 `json:"clientId"`
	ClientName string                 `json:"clientName"`
	Meals      map[string]RawQuantity `json:"meals"`
}

// RawWeekEntry is one week entry as submitted by a UI or import action.
type RawWeekEntry struct {
	WeekNumber int                    `json:"weekNumber"`
	Meals      map[string]RawQuantity `json:"meals"`
	Date       RawDate                `json:"date"`
	Clients    []RawClientSelection   `json:"clients"`
}

// ReplaceRequest is the body of POST /api/selections.
type ReplaceRequest struct {
	TotalWeeks int            `json:"totalWeeks"`
	Selections []RawWeekEntry `json:"selections"`
}

func (r ReplaceRequest) Validate() error {
	if r.Selections == nil {
		return fmt.Errorf("selections must be an array")
	}
	return nil
}

// QuantityChangeRequest is the body of POST /api/selections/quantity.
// ClientID is optional; without it the change applies to the week-level
// meals map and no quota applies.
type QuantityChangeRequest struct {
	MealID   string `json:"mealId"`
	Date     string `json:"date"`
	ClientID string `json:"clientId"`
	Change   int    `json:"change"`
}

func (r QuantityChangeRequest) Validate() error {
	if strings.TrimSpace(r.MealID) == "" {
		return fmt.Errorf("mealId is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if r.Change == 0 {
		return fmt.Errorf("change must be non-zero")
	}
	return nil
}
