package stats

import (
	"errors"
	"testing"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

func TestEloNGamesAgo(t *testing.T) {
	series := []domain.EloSample{
		sample(400, 2100, "m4"),
		sample(300, 2080, "m3"),
		sample(200, 2050, "m2"),
		sample(100, 2000, "m1"),
	}

	cases := []struct {
		name string
		n    int
		want int
	}{
		{name: "one game ago is current", n: 1, want: 2100},
		{name: "exact window", n: 4, want: 2000},
		{name: "beyond history falls back to oldest", n: 100, want: 2000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EloNGamesAgo(series, tc.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("EloNGamesAgo(%d) = %d, want %d", tc.n, got, tc.want)
			}
		})
	}
}

func TestEloNGamesAgoEmpty(t *testing.T) {
	if _, err := EloNGamesAgo(nil, 10); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}

func TestPeakElo(t *testing.T) {
	series := []domain.EloSample{
		sample(400, 2080, "m4"),
		sample(300, 2100, "m3"),
		sample(200, 2100, "m2"),
		sample(100, 2000, "m1"),
	}

	got, err := PeakElo(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Elo != 2100 || got.Timestamp != 300 {
		t.Errorf("peak = %+v, want elo 2100 at ts 300 (tie resolves to most recent)", got)
	}
}

func TestPeakEloEmpty(t *testing.T) {
	if _, err := PeakElo(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}
