package types

import (
	"math"
	"testing"
)

func TestIntervalPredicates(t *testing.T) {
	in := NewInterval(1, 3)

	if !in.Contains(1) || !in.Contains(3) || !in.Contains(2) {
		t.Fatal("expected closed interval to contain its end points")
	}
	if in.Surrounds(1) || in.Surrounds(3) || !in.Surrounds(2) {
		t.Fatal("expected open test to exclude the end points")
	}
	if in.Contains(0.999) || in.Contains(3.001) {
		t.Fatal("expected values outside the interval to be rejected")
	}

	if got := in.Clamp(-5); got != 1 {
		t.Fatalf("expected clamp to min 1; got %f", got)
	}
	if got := in.Clamp(5); got != 3 {
		t.Fatalf("expected clamp to max 3; got %f", got)
	}
	if got := in.Clamp(2.5); got != 2.5 {
		t.Fatalf("expected unchanged value 2.5; got %f", got)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	type spec struct {
		a, b Interval
		exp  bool
	}
	specs := []spec{
		{Interval{0, 1}, Interval{0.5, 2}, true},
		{Interval{0, 1}, Interval{1, 2}, true},
		{Interval{0, 1}, Interval{1.5, 2}, false},
		{Interval{0, 10}, Interval{2, 3}, true},
		{EmptyInterval, Interval{0, 1}, false},
	}

	for index, s := range specs {
		if got := s.a.Overlaps(s.b); got != s.exp {
			t.Fatalf("[spec %d] expected overlap %t; got %t", index, s.exp, got)
		}
		if got := s.b.Overlaps(s.a); got != s.exp {
			t.Fatalf("[spec %d] expected symmetric overlap %t; got %t", index, s.exp, got)
		}
	}
}

func TestIntervalEmptyAndUnion(t *testing.T) {
	if !EmptyInterval.IsEmpty() {
		t.Fatal("expected empty interval to report empty")
	}
	if UniverseInterval.IsEmpty() || !UniverseInterval.Contains(math.MaxFloat64) {
		t.Fatal("expected universe to contain every finite value")
	}

	in := NewInterval(-1, 2)
	if got := EmptyInterval.Union(in); got != in {
		t.Fatalf("expected union with empty to be %v; got %v", in, got)
	}
	if got := in.Union(NewInterval(4, 5)); got != NewInterval(-1, 5) {
		t.Fatalf("expected [-1, 5]; got %v", got)
	}
	if got := in.Expand(2); got != NewInterval(-2, 3) {
		t.Fatalf("expected [-2, 3]; got %v", got)
	}
}
