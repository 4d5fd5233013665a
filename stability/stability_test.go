package stability

import (
	"testing"

	"github.com/soocke/exchange-helper-go/ocr"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func validReading(num, den float64, left, right int) ocr.Reading {
	return ocr.Reading{RatioNum: fptr(num), RatioDen: fptr(den), Left: iptr(left), Right: iptr(right)}
}

func TestTracker_CommitsAfterTwoMatchingReadings(t *testing.T) {
	var tr Tracker
	r := validReading(5, 1, 100, 20)

	v := tr.Observe(r)
	if !v.Valid || tr.LastGood() != nil {
		t.Fatalf("first observation must display but not commit: valid=%v lastGood=%v", v.Valid, tr.LastGood())
	}

	v = tr.Observe(r)
	if !v.Valid || tr.LastGood() == nil {
		t.Fatalf("second matching observation must commit")
	}
}

func TestTracker_KeyChangeRestartsStreak(t *testing.T) {
	var tr Tracker
	tr.Observe(validReading(5, 1, 100, 20))
	tr.Observe(validReading(3, 1, 100, 20))
	if tr.LastGood() != nil {
		t.Fatalf("changed key must not commit")
	}
	tr.Observe(validReading(3, 1, 100, 20))
	if tr.LastGood() == nil {
		t.Fatalf("two matching readings after change must commit")
	}
}

func TestTracker_HoldsLastGoodThroughBadStreak(t *testing.T) {
	var tr Tracker
	good := validReading(5, 1, 100, 20)
	tr.Observe(good)
	tr.Observe(good)

	bad := ocr.Reading{Raw: "noise"}
	for i := 1; i <= 3; i++ {
		v := tr.Observe(bad)
		if v.Valid {
			t.Fatalf("bad reading %d reported valid", i)
		}
		if !v.Holding {
			t.Fatalf("bad reading %d should hold last good", i)
		}
		if v.Display.Left == nil || *v.Display.Left != 100 {
			t.Fatalf("bad reading %d lost last good display", i)
		}
	}
	v := tr.Observe(bad)
	if v.Holding {
		t.Fatalf("fourth bad reading must stop reporting hold")
	}
	if v.Display.Left == nil || *v.Display.Left != 100 {
		t.Fatalf("display still falls back to last good values")
	}
}

func TestTracker_InvalidClearsPendingStreak(t *testing.T) {
	var tr Tracker
	r := validReading(5, 1, 100, 20)
	tr.Observe(r)
	tr.Observe(ocr.Reading{})
	tr.Observe(r)
	if tr.LastGood() != nil {
		t.Fatalf("streak interrupted by invalid reading must not commit")
	}
	tr.Observe(r)
	if tr.LastGood() == nil {
		t.Fatalf("fresh streak of two must commit")
	}
}

func TestTracker_InvalidWithoutHistoryShowsObservation(t *testing.T) {
	var tr Tracker
	v := tr.Observe(ocr.Reading{Raw: "garbage"})
	if v.Holding || v.Valid {
		t.Fatalf("nothing to hold before first commit")
	}
	if v.Display.Raw != "garbage" {
		t.Fatalf("expected observation passthrough, got %+v", v.Display)
	}
}

func TestTracker_Reset(t *testing.T) {
	var tr Tracker
	good := validReading(5, 1, 100, 20)
	tr.Observe(good)
	tr.Observe(good)
	tr.Reset()
	if tr.LastGood() != nil {
		t.Fatalf("reset must drop committed reading")
	}
	v := tr.Observe(ocr.Reading{})
	if v.Holding {
		t.Fatalf("reset must drop hold state")
	}
}
