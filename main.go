package main

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/exchange-helper-go/advisor"
	"github.com/soocke/exchange-helper-go/capture"
	"github.com/soocke/exchange-helper-go/config"
	"github.com/soocke/exchange-helper-go/debug"
	"github.com/soocke/exchange-helper-go/scan"
	"github.com/soocke/exchange-helper-go/stability"
	"github.com/soocke/exchange-helper-go/ui/model"
	"github.com/soocke/exchange-helper-go/ui/presenter"
	"github.com/soocke/exchange-helper-go/ui/theme"
	"github.com/soocke/exchange-helper-go/ui/view"
)

func main() {
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Error("load config, using defaults", "error", err, "path", cfgPath)
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	scanModel := &model.ScanModel{}
	readings := model.NewReadingModel()
	tracker := &stability.Tracker{}
	adv := advisor.New(cfg.CalcMode)
	scanner := scan.New(logger, cfg.Language)

	App.WmTitle("Currency Exchange Helper")
	WmGeometry(App, "640x520+100+100")
	theme.InitStyles()

	rv := view.NewRootView(cfg, cfgPath, logger)
	scanPresenter := presenter.NewScanPresenter(scanModel, readings, cfg, scanner, tracker, adv, rv, logger)

	overlay := view.NewSelectionOverlay(cfg, cfgPath, func(target string) {
		rv.RefreshRegions()
		scanPresenter.Reset()
		if region := regionFor(cfg, target); region.Set() {
			if img, gerr := capture.GrabRegion(region); gerr == nil {
				rv.SetPreview(img)
			}
		}
		logger.Info("region updated", "target", target)
	}, logger)

	var afterID string
	exit := func() {
		if afterID != "" {
			TclAfterCancel(afterID)
		}
		if cerr := scanner.Close(); cerr != nil {
			logger.Error("close scanner", "error", cerr)
		}
		Destroy(App)
	}

	topmost := false
	minimal := false
	rv.Build(view.Handlers{
		PickRegion: func(target string) {
			if scanModel.Locked() {
				rv.SetStatus("Regions locked.")
				return
			}
			overlay.OpenOrFocus(target)
		},
		TogglePause: func() {
			scanModel.SetPaused(!scanModel.Paused())
			rv.SetPaused(scanModel.Paused())
			if scanModel.Paused() {
				rv.SetStatus("OCR paused.")
			} else {
				rv.SetStatus("OCR resumed.")
			}
		},
		ToggleLock: func() {
			scanModel.SetLocked(!scanModel.Locked())
			rv.SetLocked(scanModel.Locked())
			if scanModel.Locked() {
				rv.SetStatus("Regions locked.")
			} else {
				rv.SetStatus("Regions unlocked.")
			}
		},
		ToggleSwap: func() {
			cfg.SwapSides = !cfg.SwapSides
			rv.SetSwap(cfg.SwapSides)
			scanPresenter.Reset()
			saveConfig(cfg, cfgPath, logger)
		},
		ToggleTopmost: func() {
			topmost = !topmost
			rv.SetTopmost(topmost)
		},
		ToggleMinimal: func() {
			minimal = !minimal
			rv.SetMinimal(minimal)
		},
		ModeChanged: func(mode string) {
			cfg.CalcMode = mode
			adv.SetMode(mode)
			scanPresenter.Reset()
			saveConfig(cfg, cfgPath, logger)
			rv.SetStatus(fmt.Sprintf("Mode: %s.", mode))
		},
		Exit: exit,
	})
	rv.SetSwap(cfg.SwapSides)

	WmProtocol(App, "WM_DELETE_WINDOW", exit)

	tick := time.Duration(cfg.TickMillis) * time.Millisecond
	loop := presenter.NewLoop(scanPresenter, nil)
	loop.Schedule = func() {
		afterID = TclAfter(tick, loop.Tick)
	}
	loop.Schedule()

	App.Wait()
}

func regionFor(cfg *config.Config, target string) config.Region {
	switch target {
	case view.TargetRatio:
		return cfg.RatioRegion
	case view.TargetLeft:
		return cfg.LeftRegion
	case view.TargetRight:
		return cfg.RightRegion
	}
	return config.Region{}
}

func saveConfig(cfg *config.Config, path string, logger *slog.Logger) {
	if err := cfg.Save(path); err != nil {
		logger.Error("save config", "error", err, "path", path)
	}
}
