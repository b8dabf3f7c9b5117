package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"visitjo/internal/app"
	"visitjo/internal/domain"
)

func recordSleeps(into *[]time.Duration) app.FetcherOption {
	return app.WithSleep(func(ctx context.Context, d time.Duration) error {
		*into = append(*into, d)
		return nil
	})
}

func TestFetchAll_PagesUntilTotal(t *testing.T) {
	src := &fakeSource{pages: map[int]domain.ListPage{
		0:   {Listings: keyed("g1", "g2"), TotalCount: 250},
		100: {Listings: keyed("g3"), TotalCount: 250},
		200: {Listings: keyed("g4"), TotalCount: 250},
	}}
	var sleeps []time.Duration
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g293985", Limit: 100, Sort: "best_value", Delay: 180 * time.Millisecond}, recordSleeps(&sleeps))

	got, err := f.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(src.queries) != 3 {
		t.Fatalf("requests = %d, want 3", len(src.queries))
	}
	for i, want := range []int{0, 100, 200} {
		q := src.queries[i]
		if q.Offset != want || q.Limit != 100 || q.LocationKey != "g293985" || q.Sort != "best_value" {
			t.Fatalf("request %d = %+v", i, q)
		}
	}
	if len(sleeps) != 2 || sleeps[0] != 180*time.Millisecond {
		t.Fatalf("sleeps = %v, want two pauses of 180ms", sleeps)
	}
	if len(got) != 4 || got[3].Key != "g4" {
		t.Fatalf("unexpected listings: %+v", got)
	}
}

func TestFetchAll_SinglePageNoSleep(t *testing.T) {
	src := &fakeSource{pages: map[int]domain.ListPage{0: {Listings: keyed("g1"), TotalCount: 1}}}
	var sleeps []time.Duration
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g1", Limit: 100, Delay: time.Second}, recordSleeps(&sleeps))

	got, err := f.FetchAll(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v, %v", got, err)
	}
	if len(sleeps) != 0 {
		t.Fatalf("expected no pause, got %v", sleeps)
	}
}

func TestFetchAll_ErrorAbortsWithoutPartialResult(t *testing.T) {
	src := &fakeSource{
		pages: map[int]domain.ListPage{0: {Listings: keyed("g1"), TotalCount: 300}},
		errAt: map[int]error{100: errBoom},
	}
	var sleeps []time.Duration
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g1", Limit: 100}, recordSleeps(&sleeps))

	got, err := f.FetchAll(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %d listings", len(got))
	}
	if len(src.queries) != 2 {
		t.Fatalf("requests = %d, want 2 (no retry)", len(src.queries))
	}
}

func TestFetchAll_MaxListingsStopsPaging(t *testing.T) {
	src := &fakeSource{pages: map[int]domain.ListPage{
		0: {Listings: keyed("g1", "g2"), TotalCount: 10},
		2: {Listings: keyed("g3", "g4"), TotalCount: 10},
		4: {Listings: keyed("g5", "g6"), TotalCount: 10},
	}}
	var sleeps []time.Duration
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g1", Limit: 2, MaxListings: 3}, recordSleeps(&sleeps))

	got, err := f.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(src.queries) != 2 || len(got) != 4 {
		t.Fatalf("requests=%d listings=%d, want 2 and 4", len(src.queries), len(got))
	}
}

func TestFetchAll_DefaultLimit(t *testing.T) {
	src := &fakeSource{pages: map[int]domain.ListPage{0: {TotalCount: 0}}}
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g1"})

	if _, err := f.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.queries[0].Limit != app.DefaultPageLimit {
		t.Fatalf("limit = %d, want %d", src.queries[0].Limit, app.DefaultPageLimit)
	}
}

func TestFetchAll_CancelledDuringPause(t *testing.T) {
	src := &fakeSource{pages: map[int]domain.ListPage{0: {Listings: keyed("g1"), TotalCount: 500}}}
	ctx, cancel := context.WithCancel(context.Background())
	f := app.NewFetcher(src, app.FetchConfig{LocationKey: "g1", Limit: 100, Delay: time.Hour},
		app.WithSleep(func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}))

	if _, err := f.FetchAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
