package stats

import (
	"reflect"
	"testing"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

func sample(ts int64, elo int, matchID string) domain.EloSample {
	return domain.EloSample{Timestamp: ts, Elo: elo, MatchID: matchID}
}

func TestMergeEloSamplesDeduplicatesByMatchID(t *testing.T) {
	a := []domain.EloSample{sample(100, 2000, "m1"), sample(200, 2010, "m2")}
	b := []domain.EloSample{sample(200, 2010, "m2"), sample(300, 2025, "m3")}

	got := MergeEloSamples(a, b)
	want := []domain.EloSample{
		sample(300, 2025, "m3"),
		sample(200, 2010, "m2"),
		sample(100, 2000, "m1"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged = %+v, want %+v", got, want)
	}
}

func TestMergeEloSamplesCompositeKeyWithoutMatchID(t *testing.T) {
	a := []domain.EloSample{sample(100, 2000, ""), sample(100, 2000, "")}
	b := []domain.EloSample{sample(100, 2000, ""), sample(100, 2005, "")}

	got := MergeEloSamples(a, b)
	if len(got) != 2 {
		t.Fatalf("merged length = %d, want 2 (same ts:elo collapses, different elo survives)", len(got))
	}
}

func TestMergeEloSamplesNewerTimestampWins(t *testing.T) {
	stale := []domain.EloSample{sample(100, 1990, "m1")}
	fresh := []domain.EloSample{sample(150, 2000, "m1")}

	got := MergeEloSamples(fresh, stale)
	if len(got) != 1 {
		t.Fatalf("merged length = %d, want 1", len(got))
	}
	if got[0].Elo != 2000 || got[0].Timestamp != 150 {
		t.Errorf("surviving sample = %+v, want the newer one", got[0])
	}
}

func TestMergeEloSamplesSortsDescending(t *testing.T) {
	got := MergeEloSamples([]domain.EloSample{
		sample(100, 2000, "m1"),
		sample(300, 2030, "m3"),
		sample(200, 2010, "m2"),
	})
	for i := 1; i < len(got); i++ {
		if got[i-1].Timestamp < got[i].Timestamp {
			t.Fatalf("samples not descending at %d: %+v", i, got)
		}
	}
}

func TestMergeEloSamplesIdempotent(t *testing.T) {
	in := []domain.EloSample{
		sample(300, 2030, "m3"),
		sample(200, 2010, ""),
		sample(100, 2000, "m1"),
	}
	once := MergeEloSamples(in)
	twice := MergeEloSamples(once, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}

func TestSamplesFromStatRecords(t *testing.T) {
	records := []domain.StatRecord{
		{"Elo": "2014", "Match Finished At": float64(1700000000000), "Match Id": "m1"},
		{"Elo": "broken", "Match Finished At": float64(1700000100000)},
		{"Kills": float64(20)},
		{"cs2_elo": float64(1980), "date": float64(1700000200)},
	}

	got := SamplesFromStatRecords(records)
	want := []domain.EloSample{
		{Timestamp: 1700000000, Elo: 2014, MatchID: "m1"},
		{Timestamp: 1700000200, Elo: 1980},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("samples = %+v, want %+v", got, want)
	}
}
