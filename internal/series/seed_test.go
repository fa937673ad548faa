package series

import (
	"testing"

	"finance-tracker/internal/domain"
)

func TestSeed_Deterministic(t *testing.T) {
	a := Seed(1, domain.RangeDay)
	b := Seed(1, domain.RangeDay)
	if a != b {
		t.Errorf("seed not deterministic: %d vs %d", a, b)
	}
	if a == 0 {
		t.Errorf("seed should not be zero for normal input")
	}
}

func TestSeed_DistinctPerCoinAndRange(t *testing.T) {
	seen := make(map[uint64]string)
	for _, coinID := range []int64{1, 1027, 5426} {
		for _, r := range []domain.Range{domain.RangeHour, domain.RangeDay, domain.RangeWeek, domain.RangeMonth, domain.RangeYear} {
			s := Seed(coinID, r)
			if prev, dup := seen[s]; dup {
				t.Errorf("seed collision: (%d,%s) and %s both map to %d", coinID, r, prev, s)
			}
			seen[s] = string(r)
		}
	}
}
