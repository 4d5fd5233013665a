package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls ProcessTick on the sub-presenters and invokes a scheduler
// callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Scan     *ScanPresenter
	Schedule func()
}

func NewLoop(scan *ScanPresenter, schedule func()) *Loop {
	return &Loop{Scan: scan, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Scan != nil {
		l.Scan.ProcessTick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
