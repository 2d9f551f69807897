package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/RaphMerc007/WeCook/internal/selections"
	"github.com/RaphMerc007/WeCook/internal/storage"
)

var ErrNoSelections = errors.New("no selections for date")

// Generator renders one delivery date's selections as a PDF: the week-level
// meal list with cross-client totals, then a block per client.
type Generator struct {
	selections storage.SelectionsStorage
	meals      storage.MealsStorage
	clients    storage.ClientsStorage
}

func NewGenerator(sel storage.SelectionsStorage, meals storage.MealsStorage, clients storage.ClientsStorage) *Generator {
	return &Generator{
		selections: sel,
		meals:      meals,
		clients:    clients,
	}
}

// GenerateWeekPDF renders the selections for the given calendar day.
func (g *Generator) GenerateWeekPDF(ctx context.Context, date time.Time) ([]byte, error) {
	doc, err := g.selections.FindSelections(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSelections
	}
	if err != nil {
		return nil, err
	}

	weekMeals := selections.ProjectForDate(doc, date)
	entry := findEntry(doc, date)
	if entry == nil {
		return nil, ErrNoSelections
	}

	names, err := g.mealNames(ctx, entry)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("WeCook - Selections for %s", date.Format("2006-01-02")))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Week totals")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for _, id := range sortedKeys(weekMeals) {
		total := selections.TotalForMealOnDate(doc, id, date)
		pdf.Cell(120, 7, nameOrID(names, id))
		pdf.Cell(30, 7, fmt.Sprintf("planned %d", weekMeals[id]))
		pdf.Cell(30, 7, fmt.Sprintf("clients %d", total))
		pdf.Ln(7)
	}
	if len(weekMeals) == 0 {
		pdf.Cell(0, 7, "No week-level selections")
		pdf.Ln(7)
	}

	for _, cs := range entry.Clients {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, g.clientLabel(ctx, cs))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)
		for _, id := range sortedKeys(cs.Meals) {
			pdf.Cell(120, 7, nameOrID(names, id))
			pdf.Cell(30, 7, fmt.Sprintf("x %d", cs.Meals[id]))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// mealNames resolves every meal id referenced by the entry to its catalog
// name. Unknown ids fall back to the raw id in the rendered output.
func (g *Generator) mealNames(ctx context.Context, entry *storage.WeekEntry) (map[string]string, error) {
	idSet := make(map[string]bool)
	for id := range entry.Meals {
		idSet[id] = true
	}
	for _, cs := range entry.Clients {
		for id := range cs.Meals {
			idSet[id] = true
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	found, err := g.meals.FindMealsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(found))
	for _, meal := range found {
		names[meal.ID] = meal.Name
	}
	return names, nil
}

func findEntry(doc *storage.SelectionDocument, date time.Time) *storage.WeekEntry {
	for i := range doc.Selections {
		if doc.Selections[i].Date != nil && selections.SameDay(*doc.Selections[i].Date, date) {
			return &doc.Selections[i]
		}
	}
	return nil
}

// clientLabel resolves the heading for one client block. Blocks written by
// older payloads may lack a name; the client record fills it in when one
// exists.
func (g *Generator) clientLabel(ctx context.Context, cs storage.ClientSelection) string {
	if cs.ClientName != "" {
		return cs.ClientName
	}
	if client, err := g.clients.GetClient(ctx, cs.ClientID); err == nil && client.Name != "" {
		return client.Name
	}
	return fmt.Sprintf("Client %s", cs.ClientID)
}

func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
