package memory

import (
	"context"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

func (s *MemoryStorage) FindSelections(ctx context.Context) (*storage.SelectionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selections == nil {
		return nil, storage.ErrNotFound
	}
	return cloneDocument(s.selections), nil
}

func (s *MemoryStorage) ReplaceSelections(ctx context.Context, doc storage.SelectionDocument) (*storage.SelectionDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replaceLocked(doc), nil
}

func (s *MemoryStorage) ReplaceSelectionsIfRevision(ctx context.Context, doc storage.SelectionDocument, expected int64) (*storage.SelectionDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selections == nil || s.selections.Revision != expected {
		return nil, storage.ErrRevisionConflict
	}
	return s.replaceLocked(doc), nil
}

func (s *MemoryStorage) AppendWeek(ctx context.Context, entry storage.WeekEntry, totalWeeks int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.selections
	if doc == nil {
		doc = &storage.SelectionDocument{TotalWeeks: 1}
	}
	next := cloneDocument(doc)
	next.Selections = append(next.Selections, cloneWeekEntry(entry))
	next.TotalWeeks = totalWeeks
	s.replaceLocked(*next)
	return nil
}

// replaceLocked stores the document with a bumped revision and returns a
// copy of the stored state. Caller must hold the write lock.
func (s *MemoryStorage) replaceLocked(doc storage.SelectionDocument) *storage.SelectionDocument {
	var revision int64 = 1
	if s.selections != nil {
		revision = s.selections.Revision + 1
	}
	doc.Revision = revision
	s.selections = cloneDocument(&doc)
	return cloneDocument(s.selections)
}
