package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	server "visitjo/internal/adapters/http_server"
	redisad "visitjo/internal/adapters/redis"
	"visitjo/internal/adapters/xotelo"
	"visitjo/internal/app"
	"visitjo/internal/domain"
	"visitjo/internal/storage/memory"
)

// fakeProvider serves total listings, one page per offset, the way the list endpoint does.
func fakeProvider(t *testing.T, total int) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query()
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		if q.Get("location_key") != "g293985" {
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
			return
		}
		list := []map[string]any{}
		for i := offset; i < offset+limit && i < total; i++ {
			list = append(list, map[string]any{
				"name":           fmt.Sprintf("Hotel %d", i),
				"key":            fmt.Sprintf("g293985-d%d", i),
				"url":            fmt.Sprintf("https://www.tripadvisor.com/Hotel_Review-g1-d%d-Reviews-Hotel_%d-Dead_Sea_Governorate.html", i, i),
				"review_summary": map[string]any{"rating": 4.5, "count": 100 + i},
				"price_ranges":   map[string]any{"minimum": 50 + i},
				"image":          fmt.Sprintf("https://img/%d.jpg", i),
			})
		}
		// the last page repeats the first listing
		if offset+limit >= total && total > 0 {
			list = append(list, map[string]any{"name": "Hotel 0", "key": "g293985-d0"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"list": list, "total_count": total},
		})
	}))
	t.Cleanup(ts.Close)
	return ts, &requests
}

func TestEndToEnd_IngestThenServe(t *testing.T) {
	provider, requests := fakeProvider(t, 5)
	store := memory.New()
	mr := miniredis.RunT(t)
	cache := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	fetcher := app.NewFetcher(xotelo.New(provider.URL), app.FetchConfig{
		LocationKey: "g293985", Limit: 2, Sort: "best_value", Delay: time.Millisecond,
	})
	writer := app.NewCatalogWriter(store, "hotels", zerolog.Nop(), app.WithCacheEviction(cache))
	rep, err := app.NewIngestionService(fetcher, writer, 0).Ingest(ctx)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if *requests != 3 || rep.Fetched != 6 || rep.Unique != 5 || rep.Write.Written != 5 {
		t.Fatalf("requests=%d report=%+v", *requests, rep)
	}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(store, "hotels", cache, time.Minute)})
	api := httptest.NewServer(srv.Mux())
	defer api.Close()

	res, err := http.Get(api.URL + "/v1/hotels/g293985-d0")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var h domain.Hotel
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Name != "Hotel 0" || h.Destination != "Dead Sea" || h.Price != 50 || h.Reviews != 100 || h.Images[0] != "https://img/0.jpg" {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if !mr.Exists("hotel:hotels:g293985-d0") {
		t.Fatal("lookup should populate the cache")
	}

	// re-ingesting evicts cached entries
	if _, err := app.NewIngestionService(fetcher, writer, 0).Ingest(ctx); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if mr.Exists("hotel:hotels:g293985-d0") {
		t.Fatal("write should evict the cached entry")
	}

	list, err := http.Get(api.URL + "/v1/hotels?limit=3")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	defer list.Body.Close()
	var page domain.HotelsPage
	if err := json.NewDecoder(list.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 3 || page.NextCursor == nil {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestEndToEnd_ProviderErrorWritesNothing(t *testing.T) {
	provider, _ := fakeProvider(t, 5)
	store := memory.New()

	fetcher := app.NewFetcher(xotelo.New(provider.URL), app.FetchConfig{LocationKey: "gBAD", Limit: 2})
	writer := app.NewCatalogWriter(store, "hotels", zerolog.Nop())
	if _, err := app.NewIngestionService(fetcher, writer, 0).Ingest(context.Background()); err == nil {
		t.Fatal("expected provider error")
	}
	if store.Len("hotels") != 0 {
		t.Fatalf("nothing should be written, got %d", store.Len("hotels"))
	}
}
