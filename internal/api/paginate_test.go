package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
)

func writeStatsPage(w http.ResponseWriter, offset, count int) {
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"stats": map[string]any{
				"Match Id": fmt.Sprintf("m%d", offset+i),
				"ADR":      "80",
			},
		})
	}
	json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"start": offset,
		"end":   offset + count,
	})
}

func TestMatchStatsPage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/p1/games/cs2/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("offset") != "0" || r.URL.Query().Get("limit") != "20" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		writeStatsPage(w, 0, 3)
	}))

	page, err := client.MatchStatsPage(context.Background(), "p1", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 3 || page.Start != 0 || page.End != 3 {
		t.Errorf("page = %+v", page)
	}
}

func TestMatchStatsPageClampsOversizedLimit(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want clamped to 100", got)
		}
		writeStatsPage(w, 0, 1)
	}))

	if _, err := client.MatchStatsPage(context.Background(), "p1", 0, 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanMatchStatsStopsOnShortPage(t *testing.T) {
	requests := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset == 0 {
			writeStatsPage(w, 0, 100)
			return
		}
		writeStatsPage(w, offset, 7)
	}))

	records, err := client.ScanMatchStats(context.Background(), "p1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 107 {
		t.Errorf("records = %d, want 107", len(records))
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 (short page must stop the scan)", requests)
	}
}

func TestScanMatchStatsHonorsPageCap(t *testing.T) {
	requests := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		writeStatsPage(w, offset, 100)
	}))

	records, err := client.ScanMatchStats(context.Background(), "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 3 || len(records) != 300 {
		t.Errorf("requests = %d, records = %d, want 3/300", requests, len(records))
	}
}

func TestScanMatchStatsKeepsPartialOnFailure(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset > 0 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"shard on fire"}`))
			return
		}
		writeStatsPage(w, 0, 100)
	}))

	records, err := client.ScanMatchStats(context.Background(), "p1", 5)
	if err != nil {
		t.Fatalf("partial scan must not error, got: %v", err)
	}
	if len(records) != 100 {
		t.Errorf("records = %d, want the 100 collected before the failure", len(records))
	}
}

func TestScanMatchStatsFirstPageFailureErrors(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := client.ScanMatchStats(context.Background(), "p1", 5); err == nil {
		t.Error("expected an error when nothing was collected")
	}
}

func TestHistoryPageNormalizesWindowBounds(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/p1/history" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("game") != "cs2" {
			t.Errorf("game = %q", q.Get("game"))
		}
		if q.Get("from") != "1700000000" {
			t.Errorf("from = %q, want millisecond input collapsed to 1700000000", q.Get("from"))
		}
		if q.Get("to") != "" {
			t.Errorf("to = %q, want unset", q.Get("to"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"match_id": "m1", "started_at": 1700000100, "finished_at": 1700002000},
			},
			"start": 0,
			"end":   1,
		})
	}))

	page, err := client.HistoryPage(context.Background(), "p1", 0, 100, 1700000000000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].MatchID != "m1" {
		t.Errorf("page = %+v", page)
	}
	if page.Items[0].FinishedAt != 1700002000 {
		t.Errorf("finished_at = %d", page.Items[0].FinishedAt)
	}
}

func TestRecentHistoryScans(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		count := 100
		if offset > 0 {
			count = 4
		}
		items := make([]map[string]any, 0, count)
		for i := 0; i < count; i++ {
			items = append(items, map[string]any{
				"match_id":    fmt.Sprintf("m%d", offset+i),
				"finished_at": 1700000000 + offset + i,
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items, "start": offset, "end": offset + count})
	}))

	items, err := client.RecentHistory(context.Background(), "p1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 104 {
		t.Errorf("items = %d, want 104", len(items))
	}
}
