package selections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrClientNotFound = errors.New("client not found")

	// ErrConflict is returned when a quantity change keeps losing the
	// optimistic-concurrency race after several retries.
	ErrConflict = errors.New("selections were modified concurrently")
)

// applyChangeRetries bounds the optimistic read-modify-write loop.
const applyChangeRetries = 3

// Service owns the selections reconciliation flow: lazy seeding, stale-entry
// pruning on load, the blind wire-compatible replace, and the quota-checked
// quantity mutation.
type Service struct {
	selections storage.SelectionsStorage
	clients    storage.ClientsStorage
	log        *zap.Logger
	now        func() time.Time
}

func NewService(selections storage.SelectionsStorage, clients storage.ClientsStorage, log *zap.Logger) *Service {
	return &Service{
		selections: selections,
		clients:    clients,
		log:        log.Named("selections"),
		now:        time.Now,
	}
}

// SeedDocument is the state a fresh (or cleared) planner starts from: one
// empty, undated week.
func SeedDocument() storage.SelectionDocument {
	return storage.SelectionDocument{
		TotalWeeks:  1,
		CurrentWeek: 0,
		Selections: []storage.WeekEntry{
			{WeekNumber: 1, Meals: map[string]int{}},
		},
	}
}

// Get returns the singleton document, creating the seeded default when none
// exists. Entries more than a day in the past are pruned before the document
// is returned; persisting the pruned state is best-effort and never blocks
// the read.
func (s *Service) Get(ctx context.Context) (*storage.SelectionDocument, error) {
	doc, err := s.selections.FindSelections(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return s.selections.ReplaceSelections(ctx, SeedDocument())
	}
	if err != nil {
		return nil, err
	}

	removed, changed := Prune(doc, s.now())
	if changed {
		persisted, perr := s.selections.ReplaceSelectionsIfRevision(ctx, *doc, doc.Revision)
		if perr != nil {
			// Serve the pruned view anyway; the next load prunes again.
			s.log.Warn("failed to persist pruned selections", zap.Error(perr))
		} else {
			doc = persisted
		}
		s.log.Info("pruned stale week entries", zap.Int("removed", len(removed)))
	}
	return doc, nil
}

// Replace cleans the raw payload and replaces the whole document. This is
// the wire contract the web app depends on: a blind upsert after a separate
// read, so two concurrent writers on this path race and the last completed
// write wins.
// Callers that need consistency use ApplyQuantityChange instead.
func (s *Service) Replace(ctx context.Context, req ReplaceRequest) (*storage.SelectionDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	doc := storage.SelectionDocument{
		TotalWeeks: req.TotalWeeks,
		Selections: Clean(req.Selections),
	}
	if doc.TotalWeeks < 1 {
		doc.TotalWeeks = 1
	}
	return s.selections.ReplaceSelections(ctx, doc)
}

// ApplyQuantityChange locates or creates the week entry for the date (and
// the client block when clientId is given), applies max(0, current+change),
// and persists under an optimistic revision check with bounded retries.
// Quantities that reach zero are deleted from the map. Client changes are
// quota-checked before commit.
func (s *Service) ApplyQuantityChange(ctx context.Context, req QuantityChangeRequest) (*storage.SelectionDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	var client *storage.Client
	if req.ClientID != "" {
		client, err = s.clients.GetClient(ctx, req.ClientID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < applyChangeRetries; attempt++ {
		doc, err := s.Get(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.applyChange(doc, req, date, client); err != nil {
			return nil, err
		}

		out, err := s.selections.ReplaceSelectionsIfRevision(ctx, *doc, doc.Revision)
		if errors.Is(err, storage.ErrRevisionConflict) {
			s.log.Debug("quantity change lost revision race, retrying",
				zap.String("meal_id", req.MealID),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, ErrConflict
}

// applyChange mutates doc in place with the requested delta. Quota is
// enforced against the document itself, which is the single source of truth
// for per-client totals.
func (s *Service) applyChange(doc *storage.SelectionDocument, req QuantityChangeRequest, date time.Time, client *storage.Client) error {
	entry := findWeekEntry(doc, date)
	if entry == nil {
		doc.Selections = append(doc.Selections, storage.WeekEntry{
			WeekNumber: len(doc.Selections) + 1,
			Meals:      map[string]int{},
			Date:       &date,
		})
		entry = &doc.Selections[len(doc.Selections)-1]
		if doc.TotalWeeks < len(doc.Selections) {
			doc.TotalWeeks = len(doc.Selections)
		}
	}

	if client == nil {
		setQuantity(entry.Meals, req.MealID, entry.Meals[req.MealID]+req.Change)
		return nil
	}

	cs := findClientSelection(entry, client.ID)
	if cs == nil {
		entry.Clients = append(entry.Clients, storage.ClientSelection{
			ClientID:   client.ID,
			ClientName: client.Name,
			Meals:      map[string]int{},
		})
		cs = &entry.Clients[len(entry.Clients)-1]
	}

	newQuantity := cs.Meals[req.MealID] + req.Change
	if newQuantity < 0 {
		newQuantity = 0
	}
	if err := CheckQuota(*client, cs.Meals, req.MealID, newQuantity); err != nil {
		return err
	}
	setQuantity(cs.Meals, req.MealID, newQuantity)
	return nil
}

// setQuantity writes max(0, quantity), deleting the key at zero. One policy,
// applied uniformly to week-level and client-level maps.
func setQuantity(meals map[string]int, mealID string, quantity int) {
	if quantity > 0 {
		meals[mealID] = quantity
		return
	}
	delete(meals, mealID)
}

// ForClient projects one client's quantities for a calendar day.
func (s *Service) ForClient(ctx context.Context, clientID string, date time.Time) (map[string]int, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectForClient(doc, clientID, date), nil
}

// TotalForMeal sums one meal's quantity across all clients for a day.
func (s *Service) TotalForMeal(ctx context.Context, mealID string, date time.Time) (int, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return TotalForMealOnDate(doc, mealID, date), nil
}
