// Package stability debounces noisy recognition results so a single
// misreading never flashes through the display.
package stability

import "github.com/soocke/exchange-helper-go/ocr"

// Verdict is the display decision for one observed reading.
type Verdict struct {
	// Display is the reading to show: the committed value while the latest
	// observation is invalid and a good one exists, otherwise the
	// observation itself.
	Display ocr.Reading
	// Valid reports whether the observation itself passed validation.
	Valid bool
	// Holding reports that the observation was invalid but a recent good
	// reading is still being shown.
	Holding bool
}

// Tracker commits a reading only after seeing the same key twice in a row.
// Invalid readings clear the pending streak and extend a bad streak; the last
// committed reading keeps being displayed until the bad streak exceeds the
// hold window.
type Tracker struct {
	pendingKey   ocr.Key
	pendingSet   bool
	pendingCount int
	lastGood     *ocr.Reading
	badStreak    int
}

const holdWindow = 3

// Observe folds one reading into the tracker state and returns what to show.
func (t *Tracker) Observe(r ocr.Reading) Verdict {
	valid := r.Valid()
	if valid {
		key := r.Key()
		if t.pendingSet && key == t.pendingKey {
			t.pendingCount++
		} else {
			t.pendingKey = key
			t.pendingSet = true
			t.pendingCount = 1
		}
		if t.pendingCount >= 2 {
			good := r
			t.lastGood = &good
			t.badStreak = 0
		}
		return Verdict{Display: r, Valid: true}
	}

	t.pendingSet = false
	t.pendingCount = 0
	t.badStreak++
	if t.lastGood != nil {
		return Verdict{
			Display: *t.lastGood,
			Holding: t.badStreak <= holdWindow,
		}
	}
	return Verdict{Display: r}
}

// LastGood returns the committed reading, or nil before the first commit.
func (t *Tracker) LastGood() *ocr.Reading {
	return t.lastGood
}

// Reset drops all streaks and the committed reading. Used when the capture
// regions change.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
