package presenter

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/soocke/exchange-helper-go/advisor"
	"github.com/soocke/exchange-helper-go/config"
	"github.com/soocke/exchange-helper-go/ocr"
	"github.com/soocke/exchange-helper-go/stability"
	"github.com/soocke/exchange-helper-go/ui/model"
)

// ScanRunner executes one capture-and-recognize cycle.
type ScanRunner interface {
	Run(ratio, left, right config.Region, swap bool) (ocr.Reading, error)
}

// ScanView describes the UI surface updated by the presenter.
type ScanView interface {
	SetReading(p model.DisplayPayload)
	SetStatus(text string)
}

type scanTask struct {
	ratio, left, right config.Region
	swap               bool
}

type scanResult struct {
	reading  ocr.Reading
	err      error
	duration time.Duration
}

// ScanPresenter drives the recognition cycle off the UI thread. One worker
// goroutine executes at most one scan at a time; ticks arriving while a scan
// is in flight are dropped rather than queued.
type ScanPresenter struct {
	Model    *model.ScanModel
	Readings *model.ReadingModel
	Config   *config.Config
	Scanner  ScanRunner
	Tracker  *stability.Tracker
	Advisor  *advisor.Advisor
	View     ScanView
	logger   *slog.Logger

	workerOnce sync.Once
	workCh     chan scanTask
	resultCh   chan scanResult
}

// NewScanPresenter constructs a scan presenter.
func NewScanPresenter(m *model.ScanModel, readings *model.ReadingModel, cfg *config.Config, scanner ScanRunner, tracker *stability.Tracker, adv *advisor.Advisor, view ScanView, logger *slog.Logger) *ScanPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ScanPresenter{
		Model:    m,
		Readings: readings,
		Config:   cfg,
		Scanner:  scanner,
		Tracker:  tracker,
		Advisor:  adv,
		View:     view,
		logger:   logger,
		workCh:   make(chan scanTask, 1),
		resultCh: make(chan scanResult, 1),
	}
}

// ProcessTick handles worker results and schedules the next scan when idle.
func (p *ScanPresenter) ProcessTick() {
	if p == nil || p.Model == nil || p.Scanner == nil || p.View == nil {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if p.Model.Paused() || p.Model.Busy() {
		return
	}

	ratio, left, right := p.Config.RatioRegion, p.Config.LeftRegion, p.Config.RightRegion
	if missing := missingRegions(ratio, left, right); len(missing) > 0 {
		p.View.SetStatus(fmt.Sprintf("Set regions: %s.", strings.Join(missing, ", ")))
		return
	}

	p.Model.SetBusy(true)
	p.dispatchTask(scanTask{ratio: ratio, left: left, right: right, swap: p.Config.SwapSides})
}

// Reset drops debounce and direction history. Called when regions change.
func (p *ScanPresenter) Reset() {
	if p == nil {
		return
	}
	if p.Tracker != nil {
		p.Tracker.Reset()
	}
	if p.Advisor != nil {
		p.Advisor.Reset()
	}
}

func (p *ScanPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ScanPresenter) runWorker() {
	for task := range p.workCh {
		start := time.Now()
		reading, err := p.Scanner.Run(task.ratio, task.left, task.right, task.swap)
		res := scanResult{reading: reading, err: err, duration: time.Since(start)}
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *ScanPresenter) dispatchTask(task scanTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *ScanPresenter) handleResult(res scanResult) {
	p.Model.SetBusy(false)
	if res.err != nil {
		msg := fmt.Sprintf("OCR error: %v", res.err)
		if errors.Is(res.err, ocr.ErrUnavailable) {
			msg = "Tesseract OCR not found. Install it or add to PATH."
		}
		p.View.SetStatus(msg)
		if p.logger != nil {
			p.logger.Error("scan", "error", res.err)
		}
		return
	}

	verdict := p.Tracker.Observe(res.reading)
	display := verdict.Display

	expectedLeft, expectedRight := advisor.Expected(display.Left, display.Right, display.RatioNum, display.RatioDen)
	direction := p.Advisor.Resolve(display.Left, display.Right, display.RatioNum, display.RatioDen)
	label, recommendation := advisor.Recommend(direction, expectedLeft, expectedRight)
	if verdict.Valid && display.Left != nil && display.Right != nil {
		p.Advisor.RecordInputs(*display.Left, *display.Right)
	}

	status := advisor.Status(display)
	if verdict.Holding {
		status = "OCR unstable; holding last good values."
	}

	payload := model.DisplayPayload{
		RatioText:      display.RatioDisplay(),
		LeftText:       formatInt(display.Left),
		RightText:      formatInt(display.Right),
		ExpectedLeft:   formatInt(expectedLeft),
		ExpectedRight:  formatInt(expectedRight),
		RecommendLabel: label,
		RecommendValue: formatInt(recommendation),
		Confidence:     display.Confidence(),
		Status:         status,
		Raw:            display.Raw,
		UpdatedAt:      time.Now(),
	}
	if p.Readings != nil {
		p.Readings.Set(payload)
	}
	p.View.SetReading(payload)
	p.View.SetStatus(status)

	if p.logger != nil {
		p.logger.Info("scan updated",
			slog.String("ratio", payload.RatioText),
			slog.String("left", payload.LeftText),
			slog.String("right", payload.RightText),
			slog.String("expected_left", payload.ExpectedLeft),
			slog.String("expected_right", payload.ExpectedRight),
			slog.String("mode", direction),
			slog.Duration("duration", res.duration),
		)
	}
}

func missingRegions(ratio, left, right config.Region) []string {
	var missing []string
	if !ratio.Set() {
		missing = append(missing, "ratio")
	}
	if !left.Set() {
		missing = append(missing, "left")
	}
	if !right.Set() {
		missing = append(missing, "right")
	}
	return missing
}

func formatInt(v *int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%d", *v)
}
