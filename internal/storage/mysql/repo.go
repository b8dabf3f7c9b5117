package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"visitjo/internal/domain"
)

// Repo stores catalog records as JSON documents keyed by id, one MySQL table per
// catalog table. Tables are created on first use.
type Repo struct {
	db *sql.DB

	mu     sync.Mutex
	tables map[string]bool
}

func New(db *sql.DB) *Repo { return &Repo{db: db, tables: map[string]bool{}} }

func quote(table string) (string, error) {
	if err := domain.ValidateTable(table); err != nil {
		return "", err
	}
	return "`" + table + "`", nil
}

func (r *Repo) ensureTable(ctx context.Context, table string) (string, error) {
	q, err := quote(table)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables[table] {
		return q, nil
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(createTableSQL, q)); err != nil {
		return "", fmt.Errorf("create table %s: %w", table, err)
	}
	r.tables[table] = true
	return q, nil
}

func (r *Repo) PutHotel(ctx context.Context, table string, h domain.Hotel) error {
	q, err := r.ensureTable(ctx, table)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(h)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(upsertHotelSQL, q),
		h.ID,
		h.Name,
		h.Destination,
		h.Price,
		h.Rating,
		h.Reviews,
		string(doc),
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, table, id string) (domain.Hotel, error) {
	q, err := r.ensureTable(ctx, table)
	if err != nil {
		return domain.Hotel{}, err
	}
	var doc []byte
	if err := r.db.QueryRowContext(ctx, fmt.Sprintf(getHotelSQL, q), id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	var h domain.Hotel
	if err := json.Unmarshal(doc, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("decode %s/%s: %w", table, id, err)
	}
	return h, nil
}

func (r *Repo) ScanHotels(ctx context.Context, table string, limit int, cursor string) (domain.HotelsPage, error) {
	q, err := r.ensureTable(ctx, table)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	if limit < 1 {
		limit = 1
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(scanHotelsSQL, q), domain.DecodeCursor(cursor), limit+1)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	defer rows.Close()

	out := domain.HotelsPage{Items: []domain.Hotel{}}
	more := false
	for rows.Next() {
		if len(out.Items) == limit {
			more = true
			break
		}
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return domain.HotelsPage{}, err
		}
		var h domain.Hotel
		if err := json.Unmarshal(doc, &h); err != nil {
			return domain.HotelsPage{}, fmt.Errorf("decode %s/%s: %w", table, id, err)
		}
		out.Items = append(out.Items, h)
	}
	if err := rows.Err(); err != nil {
		return domain.HotelsPage{}, err
	}
	if more {
		next := domain.EncodeCursor(out.Items[len(out.Items)-1].ID)
		out.NextCursor = &next
	}
	return out, nil
}
