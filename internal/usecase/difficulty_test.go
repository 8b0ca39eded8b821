package usecase

import (
	"testing"
	"time"
)

func TestSelectionWeightUnseenBaseline(t *testing.T) {
	now := time.Now()
	if got := SelectionWeight(0, 0, time.Time{}, now); got != 1.0 {
		t.Fatalf("unseen pair weight = %v, want 1.0", got)
	}
}

func TestSelectionWeightCorrectMonotonicity(t *testing.T) {
	now := time.Now()
	lastSeen := now.Add(-time.Hour)
	prev := SelectionWeight(1, 0, lastSeen, now)
	for c := 2; c <= 12; c++ {
		w := SelectionWeight(c, 0, lastSeen, now)
		if w > prev {
			t.Fatalf("weight rose from %v to %v at correct=%d", prev, w, c)
		}
		prev = w
	}
}

func TestSelectionWeightIncorrectMonotonicity(t *testing.T) {
	now := time.Now()
	lastSeen := now.Add(-time.Hour)
	prev := SelectionWeight(0, 1, lastSeen, now)
	for i := 2; i <= 12; i++ {
		w := SelectionWeight(0, i, lastSeen, now)
		if w <= prev {
			t.Fatalf("weight did not rise from %v at incorrect=%d (got %v)", prev, i, w)
		}
		prev = w
	}
}

func TestSelectionWeightFloor(t *testing.T) {
	now := time.Now()
	cases := []struct {
		correct, incorrect int
		lastSeen           time.Time
	}{
		{100, 0, now},
		{50, 0, now.Add(-time.Minute)},
		{7, 0, now},
	}
	for _, tc := range cases {
		if w := SelectionWeight(tc.correct, tc.incorrect, tc.lastSeen, now); w < minWeight {
			t.Errorf("weight %v below floor for correct=%d incorrect=%d", w, tc.correct, tc.incorrect)
		}
	}
}

func TestSelectionWeightRecencyCap(t *testing.T) {
	now := time.Now()
	atCap := SelectionWeight(0, 1, now.AddDate(0, 0, -20), now)
	beyond := SelectionWeight(0, 1, now.AddDate(0, 0, -400), now)
	if atCap != beyond {
		t.Fatalf("recency boost not capped: 20d=%v 400d=%v", atCap, beyond)
	}
}

func TestSelectionWeightRecencyBoost(t *testing.T) {
	now := time.Now()
	fresh := SelectionWeight(3, 1, now, now)
	stale := SelectionWeight(3, 1, now.AddDate(0, 0, -5), now)
	if stale <= fresh {
		t.Fatalf("5-day-old pair should outweigh a fresh one: fresh=%v stale=%v", fresh, stale)
	}
}

func TestStatWeightNilStat(t *testing.T) {
	if got := StatWeight(nil, time.Now()); got != 1.0 {
		t.Fatalf("nil stat weight = %v, want 1.0", got)
	}
}
