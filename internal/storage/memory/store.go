// Package memory is an in-process catalog store, used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"visitjo/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]domain.Hotel
}

func New() *Store {
	return &Store{tables: map[string]map[string]domain.Hotel{}}
}

// NewWithStubs returns a store whose table already holds a couple of sample hotels.
func NewWithStubs(table string) *Store {
	s := New()
	for _, h := range Stubs() {
		_ = s.PutHotel(context.Background(), table, h)
	}
	return s
}

func Stubs() []domain.Hotel {
	return []domain.Hotel{
		{
			ID: "h1", Name: "Amman Palace", Location: domain.Amman, Destination: domain.Amman,
			Price: 85, Currency: "JOD", Rating: 4.4, Reviews: 120,
			Images: []string{}, Amenities: []string{"WiFi"}, BedTypes: []string{"Standard"},
			CheckIn: "15:00", CheckOut: "11:00",
		},
		{
			ID: "h2", Name: "Petra Inn", Location: domain.Petra, Destination: domain.Petra,
			Price: 60, Currency: "JOD", Rating: 4.1, Reviews: 75,
			Images: []string{}, Amenities: []string{"WiFi"}, BedTypes: []string{"Standard"},
			CheckIn: "15:00", CheckOut: "11:00",
		},
	}
}

func (s *Store) PutHotel(ctx context.Context, table string, h domain.Hotel) error {
	if err := domain.ValidateTable(table); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[table]
	if !ok {
		t = map[string]domain.Hotel{}
		s.tables[table] = t
	}
	t[h.ID] = h
	return nil
}

func (s *Store) GetHotel(ctx context.Context, table, id string) (domain.Hotel, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.Hotel{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.tables[table][id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *Store) ScanHotels(ctx context.Context, table string, limit int, cursor string) (domain.HotelsPage, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.HotelsPage{}, err
	}
	if limit < 1 {
		limit = 1
	}
	after := domain.DecodeCursor(cursor)

	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.tables[table]
	ids := make([]string, 0, len(t))
	for id := range t {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := domain.HotelsPage{Items: []domain.Hotel{}}
	for _, id := range ids {
		if len(out.Items) == limit {
			next := domain.EncodeCursor(out.Items[limit-1].ID)
			out.NextCursor = &next
			break
		}
		out.Items = append(out.Items, t[id])
	}
	return out, nil
}

// Len reports how many records a table holds.
func (s *Store) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}
