package reconcile

import (
	"testing"

	"github.com/omnarayansharma777/chronodim/domain"
)

func TestClassifyRating_Thresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want domain.QualityClass
	}{
		{9.5, domain.ClassTop},
		{8.01, domain.ClassTop},
		{8.0, domain.ClassHigh},
		{7.5, domain.ClassHigh},
		{7.0, domain.ClassMid},
		{6.5, domain.ClassMid},
		{6.0, domain.ClassLow},
		{3.2, domain.ClassLow},
		{0, domain.ClassLow},
	}
	for _, c := range cases {
		if got := ClassifyRating(c.avg); got != c.want {
			t.Fatalf("ClassifyRating(%v) = %q, want %q", c.avg, got, c.want)
		}
	}
}

func TestClassifyRating_Monotonic(t *testing.T) {
	rank := map[domain.QualityClass]int{
		domain.ClassLow:  0,
		domain.ClassMid:  1,
		domain.ClassHigh: 2,
		domain.ClassTop:  3,
	}
	prev := -1
	for avg := 0.0; avg <= 10.0; avg += 0.25 {
		r := rank[ClassifyRating(avg)]
		if r < prev {
			t.Fatalf("class rank decreased at avg=%v", avg)
		}
		prev = r
	}
}

func TestNextActive(t *testing.T) {
	if !NextActive(true, false) {
		t.Fatalf("snapshot this year must mean active")
	}
	if !NextActive(false, true) {
		t.Fatalf("no snapshot must carry previous active=true")
	}
	if NextActive(false, false) {
		t.Fatalf("no snapshot must carry previous active=false")
	}
}

func TestAverageRating(t *testing.T) {
	films := []domain.Film{{Rating: 9}, {Rating: 9}, {Rating: 6}}
	if got := AverageRating(films); got != 8 {
		t.Fatalf("AverageRating = %v, want 8", got)
	}
}
