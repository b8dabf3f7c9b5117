// Package pebble keeps the catalog in an embedded Pebble database under keys "<table>/<id>".
package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"visitjo/internal/domain"
)

type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{db: d}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func key(table, id string) []byte { return []byte(table + "/" + id) }

func (s *Store) PutHotel(ctx context.Context, table string, h domain.Hotel) error {
	if err := domain.ValidateTable(table); err != nil {
		return err
	}
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return s.db.Set(key(table, h.ID), b, pebble.Sync)
}

func (s *Store) GetHotel(ctx context.Context, table, id string) (domain.Hotel, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.Hotel{}, err
	}
	v, closer, err := s.db.Get(key(table, id))
	if errors.Is(err, pebble.ErrNotFound) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}
	defer closer.Close()
	var h domain.Hotel
	if err := json.Unmarshal(v, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("decode %s/%s: %w", table, id, err)
	}
	return h, nil
}

// ScanHotels iterates keys in byte order within the table's prefix.
func (s *Store) ScanHotels(ctx context.Context, table string, limit int, cursor string) (domain.HotelsPage, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.HotelsPage{}, err
	}
	if limit < 1 {
		limit = 1
	}
	lower := key(table, "")
	if after := domain.DecodeCursor(cursor); after != "" {
		// first key strictly greater than table/after
		lower = append(key(table, after), 0)
	}
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: []byte(table + "0"), // '0' sorts right after '/'
	})
	if err != nil {
		return domain.HotelsPage{}, err
	}
	defer it.Close()

	out := domain.HotelsPage{Items: []domain.Hotel{}}
	for it.First(); it.Valid(); it.Next() {
		if len(out.Items) == limit {
			next := domain.EncodeCursor(out.Items[limit-1].ID)
			out.NextCursor = &next
			break
		}
		var h domain.Hotel
		if err := json.Unmarshal(it.Value(), &h); err != nil {
			return domain.HotelsPage{}, fmt.Errorf("decode %s: %w", it.Key(), err)
		}
		out.Items = append(out.Items, h)
	}
	if err := it.Error(); err != nil {
		return domain.HotelsPage{}, err
	}
	return out, nil
}
