package clients

import "fmt"

// UpsertClientRequest is the body of POST /api/clients and PUT /api/clients/{id}.
type UpsertClientRequest struct {
	Name         string `json:"name"`
	MealsPerWeek int    `json:"mealsPerWeek"`
}

func (r UpsertClientRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.MealsPerWeek < 1 {
		return fmt.Errorf("mealsPerWeek must be at least 1")
	}
	return nil
}
