package ocr

import (
	"fmt"
	"math"
	"strings"
)

// Reading is the outcome of one recognition cycle over the three capture
// regions. Pointer fields are nil when the corresponding value could not be
// recognized.
type Reading struct {
	RatioNum *float64
	RatioDen *float64
	Left     *int
	Right    *int
	Raw      string
}

// Key identifies a reading for debounce comparison. Ratio components are
// rounded to two decimals so OCR jitter below a cent does not break a streak.
type Key struct {
	Num, Den          float64
	HasRatio          bool
	Left, Right       int
	HasLeft, HasRight bool
}

// Key returns the comparable identity of the reading.
func (r Reading) Key() Key {
	var k Key
	if r.RatioNum != nil && r.RatioDen != nil {
		k.Num = math.Round(*r.RatioNum*100) / 100
		k.Den = math.Round(*r.RatioDen*100) / 100
		k.HasRatio = true
	}
	if r.Left != nil {
		k.Left = *r.Left
		k.HasLeft = true
	}
	if r.Right != nil {
		k.Right = *r.Right
		k.HasRight = true
	}
	return k
}

// HasRatio reports whether both ratio components are present and the
// denominator is usable as a divisor.
func (r Reading) HasRatio() bool {
	return r.RatioNum != nil && r.RatioDen != nil && math.Abs(*r.RatioDen) > 1e-9
}

// Valid reports whether the reading can be committed: a usable ratio, at
// least one box value, and no non-positive box values.
func (r Reading) Valid() bool {
	if !r.HasRatio() {
		return false
	}
	if r.Left == nil && r.Right == nil {
		return false
	}
	if r.Left != nil && *r.Left <= 0 {
		return false
	}
	if r.Right != nil && *r.Right <= 0 {
		return false
	}
	return true
}

// Confidence scores the reading for display: 50 for the ratio, 25 per box.
func (r Reading) Confidence() int {
	score := 0
	if r.HasRatio() {
		score += 50
	}
	if r.Left != nil {
		score += 25
	}
	if r.Right != nil {
		score += 25
	}
	return score
}

// FormatRatioValue renders a ratio component without trailing decimal noise.
func FormatRatioValue(v *float64) string {
	if v == nil {
		return "--"
	}
	if math.Abs(*v-math.Round(*v)) < 1e-6 {
		return fmt.Sprintf("%d", int(math.Round(*v)))
	}
	s := fmt.Sprintf("%.2f", *v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// RatioDisplay renders the ratio as "N : D" or "--" when absent.
func (r Reading) RatioDisplay() string {
	if !r.HasRatio() {
		return "--"
	}
	return FormatRatioValue(r.RatioNum) + " : " + FormatRatioValue(r.RatioDen)
}
