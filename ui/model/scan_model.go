package model

import (
	"sync/atomic"
)

// ScanModel tracks the scan control flags. The zero value is running and
// usable. Concurrency-safe via atomic Bools because UI callbacks and the
// worker goroutine may race.
type ScanModel struct {
	paused atomic.Bool
	locked atomic.Bool
	busy   atomic.Bool
}

// Paused reports whether scanning is suspended.
func (m *ScanModel) Paused() bool {
	if m == nil {
		return false
	}
	return m.paused.Load()
}

// SetPaused stores the paused flag.
func (m *ScanModel) SetPaused(b bool) {
	if m == nil {
		return
	}
	m.paused.Store(b)
}

// Locked reports whether region picking is disabled.
func (m *ScanModel) Locked() bool {
	if m == nil {
		return false
	}
	return m.locked.Load()
}

// SetLocked stores the locked flag.
func (m *ScanModel) SetLocked(b bool) {
	if m == nil {
		return
	}
	m.locked.Store(b)
}

// Busy reports whether a scan cycle is in flight.
func (m *ScanModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// SetBusy stores the busy flag.
func (m *ScanModel) SetBusy(b bool) {
	if m == nil {
		return
	}
	m.busy.Store(b)
}
