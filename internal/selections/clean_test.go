package selections

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

func TestRawQuantityCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"true becomes 1", `true`, 1},
		{"false becomes 0", `false`, 0},
		{"positive int", `3`, 3},
		{"negative clipped to 0", `-3`, 0},
		{"float truncates", `2.7`, 2},
		{"numeric string", `"4"`, 4},
		{"negative numeric string clipped", `"-2"`, 0},
		{"garbage string", `"abc"`, 0},
		{"huge float saturates", `1e300`, math.MaxInt32},
		{"huge float string saturates", `"1e300"`, math.MaxInt32},
		{"overflowing integer saturates", `9223372036854775808`, math.MaxInt32},
		{"NaN string", `"NaN"`, 0},
		{"negative infinity string", `"-Inf"`, 0},
		{"huge negative float", `-1e300`, 0},
		{"null", `null`, 0},
		{"object", `{"nested":true}`, 0},
		{"array", `[1,2]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q RawQuantity
			err := json.Unmarshal([]byte(tt.json), &q)
			require.NoError(t, err, "RawQuantity decoding must never fail")
			assert.Equal(t, tt.want, int(q))
		})
	}
}

func TestCleanDropsPlaceholderKeys(t *testing.T) {
	raw := []RawWeekEntry{
		{
			WeekNumber: 1,
			Meals: map[string]RawQuantity{
				"undefined": 1,
				"":          5,
				"m1":        1,
				"m2":        0,
			},
		},
	}

	cleaned := Clean(raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, 1, cleaned[0].WeekNumber)
	assert.Equal(t, map[string]int{"m1": 1, "m2": 0}, cleaned[0].Meals)
}

// Wire-level version of the documented scenario:
// {"undefined":1, "m1":true, "m2":-3} cleans to {"m1":1, "m2":0}.
func TestCleanWirePayload(t *testing.T) {
	payload := `[{"weekNumber":1,"meals":{"undefined":1,"m1":true,"m2":-3}}]`

	var raw []RawWeekEntry
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	cleaned := Clean(raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, map[string]int{"m1": 1, "m2": 0}, cleaned[0].Meals)
	assert.Nil(t, cleaned[0].Date)
}

func TestCleanClientSelections(t *testing.T) {
	raw := []RawWeekEntry{
		{
			WeekNumber: 2,
			Meals:      map[string]RawQuantity{"m1": 1},
			Clients: []RawClientSelection{
				{
					ClientID: "c1",
					Meals:    map[string]RawQuantity{"undefined": 2, "m1": 2},
				},
				{
					ClientID:   "c2",
					ClientName: "Alice",
					Meals:      map[string]RawQuantity{"m2": 1},
				},
			},
		},
	}

	cleaned := Clean(raw)
	require.Len(t, cleaned, 1)
	require.Len(t, cleaned[0].Clients, 2)

	assert.Equal(t, "Client c1", cleaned[0].Clients[0].ClientName)
	assert.Equal(t, map[string]int{"m1": 2}, cleaned[0].Clients[0].Meals)
	assert.Equal(t, "Alice", cleaned[0].Clients[1].ClientName)
}

func TestCleanPreservesDateOnlyWhenPresent(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := []RawWeekEntry{
		{WeekNumber: 1, Meals: map[string]RawQuantity{}, Date: RawDate{Time: &date}},
		{WeekNumber: 2, Meals: map[string]RawQuantity{}},
	}

	cleaned := Clean(raw)
	require.Len(t, cleaned, 2)
	require.NotNil(t, cleaned[0].Date)
	assert.True(t, cleaned[0].Date.Equal(date))
	assert.Nil(t, cleaned[1].Date)
}

func TestCleanIsIdempotent(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	raw := []RawWeekEntry{
		{
			WeekNumber: 1,
			Meals:      map[string]RawQuantity{"undefined": 7, "m1": 3, "m2": 0},
			Date:       RawDate{Time: &date},
			Clients: []RawClientSelection{
				{ClientID: "c1", Meals: map[string]RawQuantity{"": 1, "m1": 2}},
			},
		},
	}

	once := Clean(raw)
	twice := Clean(rawFromEntries(once))
	assert.Equal(t, once, twice)
}

func TestCleanIsTotalOverMalformedJSON(t *testing.T) {
	payload := `[{"weekNumber":1,"meals":{"m1":{"deep":1},"m2":[true],"m3":"2"}}]`

	var raw []RawWeekEntry
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	cleaned := Clean(raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, map[string]int{"m1": 0, "m2": 0, "m3": 2}, cleaned[0].Meals)
}

// Quantities that overflow the int range must saturate, never wrap to a
// negative value that would end up persisted in the document.
func TestCleanNeverProducesNegativeQuantities(t *testing.T) {
	payload := `[{"weekNumber":1,"meals":{"m1":1e300,"m2":"NaN","m3":9223372036854775808,"m4":-1e300}}]`

	var raw []RawWeekEntry
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	cleaned := Clean(raw)
	require.Len(t, cleaned, 1)
	for id, qty := range cleaned[0].Meals {
		assert.GreaterOrEqual(t, qty, 0, "meal %s", id)
	}
	assert.Equal(t, math.MaxInt32, cleaned[0].Meals["m1"])
	assert.Equal(t, 0, cleaned[0].Meals["m2"])
	assert.Equal(t, math.MaxInt32, cleaned[0].Meals["m3"])
	assert.Equal(t, 0, cleaned[0].Meals["m4"])
}

func TestParseDate(t *testing.T) {
	bare, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bare)

	full, err := ParseDate("2024-01-01T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, full.Hour())

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

// rawFromEntries converts persisted entries back into raw form so
// idempotence can be checked end to end.
func rawFromEntries(entries []storage.WeekEntry) []RawWeekEntry {
	raw := make([]RawWeekEntry, 0, len(entries))
	for _, entry := range entries {
		r := RawWeekEntry{
			WeekNumber: entry.WeekNumber,
			Meals:      map[string]RawQuantity{},
			Date:       RawDate{Time: entry.Date},
		}
		for id, qty := range entry.Meals {
			r.Meals[id] = RawQuantity(qty)
		}
		for _, cs := range entry.Clients {
			rc := RawClientSelection{
				ClientID:   cs.ClientID,
				ClientName: cs.ClientName,
				Meals:      map[string]RawQuantity{},
			}
			for id, qty := range cs.Meals {
				rc.Meals[id] = RawQuantity(qty)
			}
			r.Clients = append(r.Clients, rc)
		}
		raw = append(raw, r)
	}
	return raw
}
