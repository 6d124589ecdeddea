package game

import (
	"testing"
	"time"
)

func TestWindowOrdering(t *testing.T) {
	for _, scheme := range []string{StandardPoints, ClassicPoints} {
		for _, name := range Tiers {
			d, err := LookupDifficulty(scheme, name)
			if nil != err {
				t.Fatalf("%v/%v: %v", scheme, name, err)
			}
			if !(d.PerfectWindow() < d.GoodWindow() && d.GoodWindow() < d.HitWindow) {
				t.Log("difficulty", d)
				t.Log("perfect   ", d.PerfectWindow())
				t.Log("good      ", d.GoodWindow())
				t.Fail()
			}
			if d.FallSpeed <= 0 || d.PointsPerNote <= 0 || d.HitWindow <= 0 {
				t.Errorf("%v/%v has a non-positive field: %+v", scheme, name, d)
			}
		}
	}
}

func TestLookupDifficulty(t *testing.T) {
	tests := []struct {
		scheme, name string
		points       int
	}{
		{"", Beginner, 100},
		{StandardPoints, Intermediate, 300},
		{StandardPoints, Advanced, 500},
		{ClassicPoints, Intermediate, 150},
		{ClassicPoints, Advanced, 200},
	}
	for _, test := range tests {
		d, err := LookupDifficulty(test.scheme, test.name)
		if nil != err {
			t.Fatalf("%v/%v: %v", test.scheme, test.name, err)
		}
		if d.PointsPerNote != test.points {
			t.Errorf("%v/%v: expected %v points, got %v", test.scheme, test.name, test.points, d.PointsPerNote)
		}
	}

	if _, err := LookupDifficulty(StandardPoints, "expert"); err != ErrUnknownDifficulty {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
	if _, err := LookupDifficulty("arcade", Beginner); err != ErrUnknownDifficulty {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestBeginnerWindows(t *testing.T) {
	d, _ := LookupDifficulty(StandardPoints, Beginner)
	if d.PerfectWindow() != 83333333*time.Nanosecond {
		t.Errorf("perfect window %v", d.PerfectWindow())
	}
	if d.GoodWindow() != 166666666*time.Nanosecond {
		t.Errorf("good window %v", d.GoodWindow())
	}
}
