package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daye-lim/shelfmate/internal/config"
	"github.com/daye-lim/shelfmate/internal/retry"
)

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.CatalogConfig{BaseURL: srv.URL, APIKey: "k"}, time.Second, fastPolicy())
}

func TestSearchNormalizesShapeVariants(t *testing.T) {
	variants := []string{
		`{"items":[{"title":"Deep Work","author":"Cal Newport","isbn13":"9781455586691"}]}`,
		`{"documents":[{"name":"Deep Work","authors":["Cal Newport"],"isbn":"9781455586691"}]}`,
		`{"results":[{"title":"Deep Work","author_name":["Cal Newport"],"isbn_13":["9781455586691"]}]}`,
		`{"docs":[{"title":"Deep Work","authors":[{"name":"Cal Newport"}],"id":"9781455586691"}]}`,
	}

	for _, body := range variants {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		recs, err := c.Search(context.Background(), Query{Title: "deep work"})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("body %s: got %d records", body, len(recs))
		}
		r := recs[0]
		if r.Title != "Deep Work" || r.Author != "Cal Newport" || r.ISBN != "9781455586691" {
			t.Errorf("body %s: normalized to %+v", body, r)
		}
	}
}

func TestSearchSynopsisURLDetection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"title":"A","description":"https://docs.example/a.html"},
			{"title":"B","description":"  plain text intro  "},
			{"title":"C","description":{"value":"nested intro"}}
		]}`))
	})

	recs, err := c.Search(context.Background(), Query{Keywords: "x"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if recs[0].SynopsisURL == "" || recs[0].Synopsis != "" {
		t.Errorf("record A should carry a synopsis URL: %+v", recs[0])
	}
	if recs[1].Synopsis != "plain text intro" {
		t.Errorf("record B synopsis = %q", recs[1].Synopsis)
	}
	if recs[2].Synopsis != "nested intro" {
		t.Errorf("record C synopsis = %q", recs[2].Synopsis)
	}
}

func TestSearchSkipsUntitledRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"author":"Nobody"},{"title":"Kept"}]}`))
	})

	recs, err := c.Search(context.Background(), Query{Keywords: "x"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Kept" {
		t.Errorf("recs = %+v", recs)
	}
}

func TestSearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"items":[{"title":"Eventually"}]}`))
	})

	recs, err := c.Search(context.Background(), Query{Keywords: "x"})
	if err != nil {
		t.Fatalf("search should succeed after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if len(recs) != 1 {
		t.Errorf("recs = %+v", recs)
	}
}

func TestSearchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := c.Search(context.Background(), Query{Keywords: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 401)", calls.Load())
	}
}

func TestRecordKey(t *testing.T) {
	withISBN := Record{Title: "T", Author: "A", ISBN: "123"}
	if withISBN.Key() != "123" {
		t.Errorf("key = %q", withISBN.Key())
	}
	without := Record{Title: "T", Author: "A"}
	if without.Key() != "T|A" {
		t.Errorf("key = %q", without.Key())
	}
}
