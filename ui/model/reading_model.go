package model

import (
	"time"
)

// DisplayPayload is the fully rendered state of one scan cycle, ready for
// the view to print without further computation.
type DisplayPayload struct {
	RatioText      string
	LeftText       string
	RightText      string
	ExpectedLeft   string
	ExpectedRight  string
	RecommendLabel string
	RecommendValue string
	Confidence     int
	Status         string
	Raw            string
	UpdatedAt      time.Time
}

// ReadingModel holds the latest rendered payload. Zero value is usable.
// No synchronization needed: updates occur on the UI thread tick.
type ReadingModel struct {
	payload DisplayPayload
	set     bool
}

func NewReadingModel() *ReadingModel { return &ReadingModel{} }

// Set stores the payload.
func (m *ReadingModel) Set(p DisplayPayload) {
	if m == nil {
		return
	}
	m.payload = p
	m.set = true
}

// Payload returns the latest payload and whether one has been stored.
func (m *ReadingModel) Payload() (DisplayPayload, bool) {
	if m == nil {
		return DisplayPayload{}, false
	}
	return m.payload, m.set
}
