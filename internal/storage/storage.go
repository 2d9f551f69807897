package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRevisionConflict is returned by ReplaceSelectionsIfRevision when the
	// stored document's revision no longer matches the caller's copy.
	ErrRevisionConflict = errors.New("selections revision conflict")
)

// Meal is one catalog entry, upserted by external id.
type Meal struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	ImageURL    string   `bson:"imageUrl" json:"imageUrl"`
	Category    string   `bson:"category" json:"category"`
	Price       string   `bson:"price" json:"price"`
	HasSideDish bool     `bson:"hasSideDish" json:"hasSideDish"`
	SideDishes  []string `bson:"sideDishes" json:"sideDishes"`
}

// ClientSelection holds one client's meal quantities inside a WeekEntry.
type ClientSelection struct {
	ClientID   string         `bson:"clientId" json:"clientId"`
	ClientName string         `bson:"clientName" json:"clientName"`
	Meals      map[string]int `bson:"meals" json:"meals"`
}

// WeekEntry is one week's (or delivery date's) meal-quantity ledger.
//
// Week identity is the calendar date. WeekNumber is kept for wire
// compatibility with older payloads but is never used for lookup.
type WeekEntry struct {
	WeekNumber int               `bson:"weekNumber" json:"weekNumber"`
	Meals      map[string]int    `bson:"meals" json:"meals"`
	Date       *time.Time        `bson:"date,omitempty" json:"date,omitempty"`
	Clients    []ClientSelection `bson:"clients,omitempty" json:"clients,omitempty"`
}

// SelectionDocument is the singleton weekly planning ledger. Exactly one
// instance exists; writes replace the only document. Revision is bumped on
// every replace so callers can opt into optimistic-concurrency checks.
type SelectionDocument struct {
	TotalWeeks  int         `bson:"totalWeeks" json:"totalWeeks"`
	CurrentWeek int         `bson:"currentWeek" json:"currentWeek"`
	Revision    int64       `bson:"revision" json:"revision"`
	Selections  []WeekEntry `bson:"selections" json:"selections"`
}

// Client is a person the planner orders for, with a weekly meal allowance.
type Client struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	MealsPerWeek int    `bson:"mealsPerWeek" json:"mealsPerWeek"`
}

// SelectionsStorage persists the singleton selections document.
type SelectionsStorage interface {
	// FindSelections returns the singleton document, or ErrNotFound if it has
	// never been written.
	FindSelections(ctx context.Context) (*SelectionDocument, error)

	// ReplaceSelections replaces the singleton document unconditionally
	// (upsert by empty filter) and returns the stored copy with its new
	// revision. Concurrent callers on this path can lose updates; that is
	// the accepted wire contract for POST /api/selections.
	ReplaceSelections(ctx context.Context, doc SelectionDocument) (*SelectionDocument, error)

	// ReplaceSelectionsIfRevision replaces the document only when the stored
	// revision equals expected, returning ErrRevisionConflict otherwise.
	ReplaceSelectionsIfRevision(ctx context.Context, doc SelectionDocument, expected int64) (*SelectionDocument, error)

	// AppendWeek pushes one week entry onto the document and sets totalWeeks,
	// creating the document if absent. Used by the meal import path.
	AppendWeek(ctx context.Context, entry WeekEntry, totalWeeks int) error
}

// MealsStorage persists the meal catalog.
type MealsStorage interface {
	ListMeals(ctx context.Context) ([]Meal, error)
	GetMeal(ctx context.Context, id string) (*Meal, error)
	FindMealsByIDs(ctx context.Context, ids []string) ([]Meal, error)
	UpsertMeal(ctx context.Context, meal Meal) (*Meal, error)
	DeleteAllMeals(ctx context.Context) error
	CountMeals(ctx context.Context) (int64, error)
}

// ClientsStorage persists clients.
type ClientsStorage interface {
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	CreateClient(ctx context.Context, client Client) (*Client, error)
	UpdateClient(ctx context.Context, client Client) (*Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// Storage bundles the three repositories behind one constructor-friendly
// interface, plus a health probe for the readiness endpoint.
type Storage interface {
	SelectionsStorage
	MealsStorage
	ClientsStorage

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection, if any.
	Close() error
}
