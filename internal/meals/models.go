package meals

import (
	"encoding/json"
	"fmt"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// RawMeal is a meal as submitted by the import flow or the browser
// extension. Price arrives as either a number or a string depending on the
// scraper revision, so it decodes through json.Number-ish handling into a
// plain string.
type RawMeal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Price       RawPrice `json:"price"`
	HasSideDish bool     `json:"hasSideDish"`
	SideDishes  []string `json:"sideDishes"`
}

// RawPrice tolerates both "12.99" and 12.99 on the wire.
type RawPrice string

func (p *RawPrice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = RawPrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = RawPrice(n.String())
		return nil
	}
	*p = ""
	return nil
}

func (p RawPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (m RawMeal) toStorage(id string) storage.Meal {
	sideDishes := m.SideDishes
	if sideDishes == nil {
		sideDishes = []string{}
	}
	return storage.Meal{
		ID:          id,
		Name:        m.Name,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		Price:       string(m.Price),
		HasSideDish: m.HasSideDish,
		SideDishes:  sideDishes,
	}
}

// ImportRequest is the body of POST /api/meals. Date is optional; when set,
// a new week entry is appended with quantity 1 for every imported meal.
type ImportRequest struct {
	Meals []RawMeal `json:"meals"`
	Date  string    `json:"date"`
}

func (r ImportRequest) Validate() error {
	if r.Meals == nil {
		return fmt.Errorf("meals must be an array")
	}
	return nil
}

// ImportResponse is the import reply shape the web app expects.
type ImportResponse struct {
	Message    string `json:"message"`
	MealsCount int    `json:"mealsCount"`
}
