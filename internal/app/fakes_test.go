package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"visitjo/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	pages   map[int]domain.ListPage // by offset
	errAt   map[int]error
	queries []domain.ListQuery
}

func (f *fakeSource) ListPage(ctx context.Context, q domain.ListQuery) (domain.ListPage, error) {
	f.queries = append(f.queries, q)
	if err := f.errAt[q.Offset]; err != nil {
		return domain.ListPage{}, err
	}
	return f.pages[q.Offset], nil
}

type fakeStore struct {
	puts   []domain.Hotel
	failOn map[string]error // by id
	hotels map[string]domain.Hotel
	gets   int
}

func (s *fakeStore) PutHotel(ctx context.Context, table string, h domain.Hotel) error {
	if err := s.failOn[h.ID]; err != nil {
		return err
	}
	s.puts = append(s.puts, h)
	if s.hotels == nil {
		s.hotels = map[string]domain.Hotel{}
	}
	s.hotels[h.ID] = h
	return nil
}

func (s *fakeStore) GetHotel(ctx context.Context, table, id string) (domain.Hotel, error) {
	s.gets++
	h, ok := s.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *fakeStore) ScanHotels(ctx context.Context, table string, limit int, cursor string) (domain.HotelsPage, error) {
	ids := make([]string, 0, len(s.hotels))
	for id := range s.hotels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	page := domain.HotelsPage{Items: []domain.Hotel{}}
	for _, id := range ids {
		if len(page.Items) == limit {
			break
		}
		page.Items = append(page.Items, s.hotels[id])
	}
	return page, nil
}

type fakeCache struct {
	store  map[string][]byte
	dels   []string
	delErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.store, key)
	return nil
}

var errBoom = errors.New("boom")

// listings decodes provider JSON the same way the client does.
func listings(t *testing.T, raw string) []domain.Listing {
	t.Helper()
	var out []domain.Listing
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode listings: %v", err)
	}
	return out
}

func keyed(keys ...string) []domain.Listing {
	out := make([]domain.Listing, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Listing{Key: domain.Text(k), Name: domain.Text("Hotel " + k)})
	}
	return out
}
