// Package advisor turns a stabilized reading into expected counter-values
// and a recommendation for which side of the trade to fill in.
package advisor

import (
	"math"

	"github.com/soocke/exchange-helper-go/config"
	"github.com/soocke/exchange-helper-go/ocr"
)

// Expected computes the counter-values implied by the ratio. The expected
// left value answers "what do I get for the right box", the expected right
// value the reverse. Both are nil without a usable ratio.
func Expected(left, right *int, num, den *float64) (expectedLeft, expectedRight *int) {
	if num == nil || den == nil {
		return nil, nil
	}
	if math.Abs(*num) < 1e-9 || math.Abs(*den) < 1e-9 {
		return nil, nil
	}
	if right != nil {
		v := int(math.Round(float64(*right) * (*num / *den)))
		expectedLeft = &v
	}
	if left != nil {
		v := int(math.Round(float64(*left) * (*den / *num)))
		expectedRight = &v
	}
	return expectedLeft, expectedRight
}

// Advisor resolves the trade direction. In auto mode it leans on the ratio
// skew, then on which box the user last edited: the side that stayed put is
// treated as the reference and the recommendation fills the other one.
type Advisor struct {
	mode          string
	autoDirection string
	lastInputs    *[2]int
}

func New(mode string) *Advisor {
	a := &Advisor{autoDirection: config.ModeFromRight}
	a.SetMode(mode)
	return a
}

// SetMode switches between auto, from_left and from_right. Delta history is
// dropped so the first cycles after a mode change have nothing stale to
// compare against.
func (a *Advisor) SetMode(mode string) {
	switch mode {
	case config.ModeAuto, config.ModeFromLeft, config.ModeFromRight:
		a.mode = mode
	default:
		a.mode = config.ModeAuto
	}
	a.lastInputs = nil
}

func (a *Advisor) Mode() string { return a.mode }

// Resolve returns the direction for the current reading: from_left means the
// left box is the input and the right side gets recommended, from_right the
// reverse.
func (a *Advisor) Resolve(left, right *int, num, den *float64) string {
	if a.mode != config.ModeAuto {
		return a.mode
	}
	if left == nil && right != nil {
		return config.ModeFromRight
	}
	if right == nil && left != nil {
		return config.ModeFromLeft
	}
	if left == nil || right == nil {
		return a.autoDirection
	}
	if num != nil && den != nil && *den != 0 {
		if *num < *den {
			a.autoDirection = config.ModeFromLeft
		} else if *num > *den {
			a.autoDirection = config.ModeFromRight
		}
	}
	if a.lastInputs == nil {
		return a.autoDirection
	}

	leftDelta := abs(*left - a.lastInputs[0])
	rightDelta := abs(*right - a.lastInputs[1])
	switch {
	case leftDelta == 0 && rightDelta == 0:
		// Nothing moved, keep the current direction.
	case leftDelta < rightDelta:
		// The left box held steadier, so it is the reference side.
		a.autoDirection = config.ModeFromLeft
	case rightDelta < leftDelta:
		a.autoDirection = config.ModeFromRight
	default:
		a.autoDirection = config.ModeFromLeft
	}
	return a.autoDirection
}

// RecordInputs remembers the last committed box values for delta tracking.
// Call only for valid readings with both boxes present.
func (a *Advisor) RecordInputs(left, right int) {
	a.lastInputs = &[2]int{left, right}
}

// Reset clears the learned direction and input history.
func (a *Advisor) Reset() {
	a.autoDirection = config.ModeFromRight
	a.lastInputs = nil
}

// Recommend picks the value and label to surface for the resolved direction.
func Recommend(direction string, expectedLeft, expectedRight *int) (label string, value *int) {
	if direction == config.ModeFromRight {
		return "Recommended I want", expectedLeft
	}
	return "Recommended I have", expectedRight
}

// Status renders the scan state for the status line.
func Status(r ocr.Reading) string {
	if !r.HasRatio() {
		return "Looking for market ratio..."
	}
	if r.Left == nil {
		return "Looking for I want..."
	}
	if r.Right == nil {
		return "Looking for I have..."
	}
	return "OCR updated."
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
