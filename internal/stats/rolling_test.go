package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

func adrRecord(ts int64, adr any) domain.StatRecord {
	return domain.StatRecord{"ADR": adr, "Match Finished At": float64(ts)}
}

func TestRollingADRWindowsNewestFirst(t *testing.T) {
	records := []domain.StatRecord{
		adrRecord(100, "60"),
		adrRecord(300, "90"),
		adrRecord(200, "80"),
	}

	got, err := RollingADR(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 85 {
		t.Errorf("RollingADR(2) = %v, want 85 (two newest: 90 and 80)", got)
	}
}

func TestRollingADRFewerRecordsThanWindow(t *testing.T) {
	records := []domain.StatRecord{adrRecord(100, 70.0), adrRecord(200, 80.0)}

	got, err := RollingADR(records, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 75 {
		t.Errorf("RollingADR over short history = %v, want 75", got)
	}
}

func TestRollingADRSkipsMalformedValues(t *testing.T) {
	records := []domain.StatRecord{
		adrRecord(400, "n/a"),
		adrRecord(300, "90,5"),
		adrRecord(200, 80.0),
		{"Kills": float64(12), "Match Finished At": float64(100)},
	}

	got, err := RollingADR(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-85.25) > 1e-9 {
		t.Errorf("RollingADR = %v, want 85.25 (comma decimal kept, garbage skipped)", got)
	}
}

func TestRollingADRNoUsableData(t *testing.T) {
	records := []domain.StatRecord{{"Kills": float64(10)}}
	if _, err := RollingADR(records, 10); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
	if _, err := RollingADR(nil, 10); !errors.Is(err, ErrNoData) {
		t.Errorf("error on empty input = %v, want ErrNoData", err)
	}
}

func TestRollingWinRateClassification(t *testing.T) {
	records := []domain.StatRecord{
		{"Result": "1", "Match Finished At": float64(500)},
		{"Result": float64(0), "Match Finished At": float64(400)},
		{"Win": true, "Match Finished At": float64(300)},
		{"Result": "Victory", "Match Finished At": float64(200)},
		{"Result": "mystery", "Match Finished At": float64(100)},
	}

	got, err := RollingWinRate(records, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 75 {
		t.Errorf("RollingWinRate = %v, want 75 (3 wins of 4 classifiable)", got)
	}
}

func TestRollingWinRateUnclassifiableDoesNotConsumeWindow(t *testing.T) {
	records := []domain.StatRecord{
		{"Result": "??", "Match Finished At": float64(300)},
		{"Result": "1", "Match Finished At": float64(200)},
		{"Result": "0", "Match Finished At": float64(100)},
	}

	got, err := RollingWinRate(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Errorf("RollingWinRate = %v, want 50 (window reaches past garbage)", got)
	}
}

func TestRollingWinRateNoData(t *testing.T) {
	if _, err := RollingWinRate(nil, 10); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}
