package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const defaultAPIBase = "http://localhost:3001"

var (
	apiBase  string
	client   = &http.Client{Timeout: 30 * time.Second}
	testDate string
	clientID string
	mealID   string
)

// End-to-end smoke check against a running instance. Exercises the
// selections round trip: import meals for a date, create a client, bump a
// quantity, read the projections back, and clear everything.
func main() {
	fmt.Println("=== WeCook E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	fmt.Printf("API Base: %s\n\n", apiBase)

	testDate = time.Now().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Health", testHealth},
		{"Get Selections (seed)", testGetSelections},
		{"Import Meals", testImportMeals},
		{"List Meals For Date", testListMealsForDate},
		{"Create Client", testCreateClient},
		{"Quantity Change", testQuantityChange},
		{"Client Projection", testClientProjection},
		{"Totals", testTotals},
		{"Week Report (PDF)", testWeekReport},
		{"Clear Meals", testClearMeals},
	}

	failed := 0
	for _, step := range steps {
		fmt.Printf("--> %s... ", step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("FAIL: %v\n", err)
			failed++
			continue
		}
		fmt.Println("OK")
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d/%d steps failed\n", failed, len(steps))
		os.Exit(1)
	}
	fmt.Println("All steps passed")
}

func testHealth() error {
	var body struct {
		Status string `json:"status"`
	}
	if err := getJSON("/", &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("unexpected status %q", body.Status)
	}
	return nil
}

func testGetSelections() error {
	var doc struct {
		TotalWeeks int `json:"totalWeeks"`
	}
	if err := getJSON("/api/selections", &doc); err != nil {
		return err
	}
	if doc.TotalWeeks < 1 {
		return fmt.Errorf("totalWeeks = %d, want >= 1", doc.TotalWeeks)
	}
	return nil
}

func testImportMeals() error {
	payload := map[string]any{
		"meals": []map[string]any{
			{"name": "Smoke Test Soup", "imageUrl": "", "category": "Soups", "price": "9.99", "hasSideDish": false, "sideDishes": []string{}},
		},
		"date": testDate,
	}
	var resp struct {
		MealsCount int `json:"mealsCount"`
	}
	if err := postJSON("/api/meals", payload, &resp); err != nil {
		return err
	}
	if resp.MealsCount != 1 {
		return fmt.Errorf("mealsCount = %d, want 1", resp.MealsCount)
	}
	return nil
}

func testListMealsForDate() error {
	var list []struct {
		ID string `json:"id"`
	}
	if err := getJSON("/api/meals?date="+testDate, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no meals for date %s", testDate)
	}
	mealID = list[0].ID
	return nil
}

func testCreateClient() error {
	var created struct {
		ID string `json:"id"`
	}
	if err := postJSON("/api/clients", map[string]any{"name": "Smoke Client", "mealsPerWeek": 3}, &created); err != nil {
		return err
	}
	if created.ID == "" {
		return fmt.Errorf("empty client id")
	}
	clientID = created.ID
	return nil
}

func testQuantityChange() error {
	payload := map[string]any{
		"mealId":   mealID,
		"date":     testDate,
		"clientId": clientID,
		"change":   1,
	}
	var doc struct {
		Revision int64 `json:"revision"`
	}
	return postJSON("/api/selections/quantity", payload, &doc)
}

func testClientProjection() error {
	var resp struct {
		Meals map[string]int `json:"meals"`
	}
	if err := getJSON("/api/selections/client/"+clientID+"?date="+testDate, &resp); err != nil {
		return err
	}
	if resp.Meals[mealID] != 1 {
		return fmt.Errorf("projected quantity = %d, want 1", resp.Meals[mealID])
	}
	return nil
}

func testTotals() error {
	var resp struct {
		Total int `json:"total"`
	}
	if err := getJSON("/api/selections/totals?date="+testDate+"&mealId="+mealID, &resp); err != nil {
		return err
	}
	if resp.Total != 1 {
		return fmt.Errorf("total = %d, want 1", resp.Total)
	}
	return nil
}

func testWeekReport() error {
	resp, err := client.Get(apiBase + "/api/reports/week?date=" + testDate)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return fmt.Errorf("response is not a PDF")
	}
	return nil
}

func testClearMeals() error {
	return postJSON("/api/meals/clear", map[string]any{}, nil)
}

func getJSON(path string, out any) error {
	resp, err := client.Get(apiBase + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := client.Post(apiBase+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
