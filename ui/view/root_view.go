package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/soocke/exchange-helper-go/config"
	"github.com/soocke/exchange-helper-go/ui/images"
	"github.com/soocke/exchange-helper-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers carries the user-action callbacks wired by the composition root.
type Handlers struct {
	PickRegion    func(target string)
	TogglePause   func()
	ToggleLock    func()
	ToggleSwap    func()
	ToggleTopmost func()
	ToggleMinimal func()
	ModeChanged   func(mode string)
	Exit          func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats StatsPanel

	// Widgets
	StatusLabel *LabelWidget
	regionLbl   *LabelWidget
	rawText     *TextWidget
	pauseBtn    *ButtonWidget
	lockBtn     *ButtonWidget
	swapBtn     *ButtonWidget
	topmostBtn  *ButtonWidget
	minimalBtn  *ButtonWidget
	pickBtns    []*ButtonWidget
	modeSelect  *TComboboxWidget
	previewLbl  *LabelWidget
	minimal     bool
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetReading(p model.DisplayPayload)
	SetStatus(text string)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

var modeValues = []string{config.ModeAuto, config.ModeFromLeft, config.ModeFromRight}

// Build constructs the layout and binds handlers to the widgets.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}

	// Row 0: value grid and button column side by side.
	statsFrame := Frame()
	Grid(statsFrame, Row(0), Column(0), Sticky("nwe"), Padx("0.4m"), Pady("0.3m"))
	rv.Stats, _ = NewStatsPanel(statsFrame, 0)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(1), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	btnRow := 0
	addBtn := func(text string, cmd func()) *ButtonWidget {
		b := Button(Txt(text), Command(cmd))
		Grid(b, In(btnFrame), Row(btnRow), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		btnRow++
		return b
	}

	for _, target := range []string{TargetRatio, TargetLeft, TargetRight} {
		t := target
		caption := "Pick " + t + " region"
		rv.pickBtns = append(rv.pickBtns, addBtn(caption, func() {
			if h.PickRegion != nil {
				h.PickRegion(t)
			}
		}))
	}
	rv.pauseBtn = addBtn("Pause", h.TogglePause)
	rv.lockBtn = addBtn("Lock regions", h.ToggleLock)
	rv.swapBtn = addBtn("Swap sides: off", h.ToggleSwap)
	rv.topmostBtn = addBtn("Topmost: off", h.ToggleTopmost)
	rv.minimalBtn = addBtn("Minimal mode", h.ToggleMinimal)

	rv.modeSelect = TCombobox(Values(modeValues), Width(12))
	Grid(rv.modeSelect, In(btnFrame), Row(btnRow), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	btnRow++
	for i, m := range modeValues {
		if m == rv.cfg.CalcMode {
			rv.modeSelect.Current(i)
		}
	}
	Bind(rv.modeSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.modeSelect == nil {
			return
		}
		idxStr := rv.modeSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(modeValues) {
			if rv.logger != nil {
				rv.logger.Error("mode selection parse error", "error", err)
			}
			return
		}
		if h.ModeChanged != nil {
			h.ModeChanged(modeValues[idx])
		}
	}))
	addBtn("Exit", h.Exit)

	// Row 1: region summary.
	rv.regionLbl = Label(Txt(""), Anchor("w"))
	Grid(rv.regionLbl, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.RefreshRegions()

	// Row 2: status line.
	rv.StatusLabel = Label(Txt("Ready."), Borderwidth(1), Relief("ridge"), Anchor("w"))
	Grid(rv.StatusLabel, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 3: raw recognizer output.
	rv.rawText = Text(Height(5), Width(60))
	Grid(rv.rawText, Row(3), Column(0), Columnspan(2), Sticky("nsew"), Padx("0.4m"), Pady("0.3m"))
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 3, Weight(1))
}

// SetMinimal collapses the window to the value grid and status line, hiding
// the region summary, raw panel and preview. Restoring re-grids the widgets
// with their original options.
func (rv *RootView) SetMinimal(minimal bool) {
	if rv == nil {
		return
	}
	rv.minimal = minimal
	func() {
		defer func() { _ = recover() }()
		if minimal {
			if rv.regionLbl != nil {
				GridRemove(rv.regionLbl.Window)
			}
			if rv.rawText != nil {
				GridRemove(rv.rawText.Window)
			}
			if rv.previewLbl != nil {
				GridRemove(rv.previewLbl.Window)
			}
			rv.minimalBtn.Configure(Txt("Full mode"))
			WmGeometry(App, "640x260+100+100")
			return
		}
		if rv.regionLbl != nil {
			Grid(rv.regionLbl, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
		}
		if rv.rawText != nil {
			Grid(rv.rawText, Row(3), Column(0), Columnspan(2), Sticky("nsew"), Padx("0.4m"), Pady("0.3m"))
		}
		if rv.previewLbl != nil {
			Grid(rv.previewLbl, Row(4), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
		}
		rv.minimalBtn.Configure(Txt("Minimal mode"))
		WmGeometry(App, "640x520+100+100")
	}()
}

// SetPreview shows a thumbnail of the most recently picked region capture.
// The label is created lazily on the first preview.
func (rv *RootView) SetPreview(img image.Image) {
	if rv == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, 320, 80)
	pngBytes := images.EncodePNG(scaled)
	if len(pngBytes) == 0 {
		return
	}
	func() {
		defer func() { _ = recover() }()
		if rv.previewLbl == nil {
			rv.previewLbl = Label(Image(NewPhoto(Data(pngBytes))), Borderwidth(1), Relief("sunken"))
			if !rv.minimal {
				Grid(rv.previewLbl, Row(4), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
			}
			return
		}
		rv.previewLbl.Configure(Image(NewPhoto(Data(pngBytes))))
	}()
}

// SetReading pushes one rendered cycle into the stats grid and raw panel.
func (rv *RootView) SetReading(p model.DisplayPayload) {
	if rv == nil {
		return
	}
	if rv.Stats != nil {
		rv.Stats.SetPayload(p)
	}
	if rv.rawText != nil {
		func() {
			defer func() { _ = recover() }()
			rv.rawText.Delete("1.0", END)
			rv.rawText.Insert("1.0", p.Raw)
		}()
	}
}

// SetStatus updates the status line text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// RefreshRegions re-renders the region summary from the config.
func (rv *RootView) RefreshRegions() {
	if rv == nil || rv.regionLbl == nil || rv.cfg == nil {
		return
	}
	text := "Ratio: " + rv.cfg.RatioRegion.Display() +
		"\nLeft: " + rv.cfg.LeftRegion.Display() +
		"\nRight: " + rv.cfg.RightRegion.Display()
	rv.regionLbl.Configure(Txt(text))
}

// SetPaused flips the pause button caption.
func (rv *RootView) SetPaused(paused bool) {
	if rv == nil || rv.pauseBtn == nil {
		return
	}
	if paused {
		rv.pauseBtn.Configure(Txt("Resume"))
	} else {
		rv.pauseBtn.Configure(Txt("Pause"))
	}
}

// SetLocked flips the lock caption and disables the pick buttons.
func (rv *RootView) SetLocked(locked bool) {
	if rv == nil {
		return
	}
	caption, state := "Lock regions", "normal"
	if locked {
		caption, state = "Unlock regions", "disabled"
	}
	if rv.lockBtn != nil {
		rv.lockBtn.Configure(Txt(caption))
	}
	for _, b := range rv.pickBtns {
		if b != nil {
			b.Configure(State(state))
		}
	}
}

// SetSwap flips the swap button caption.
func (rv *RootView) SetSwap(swapped bool) {
	if rv == nil || rv.swapBtn == nil {
		return
	}
	if swapped {
		rv.swapBtn.Configure(Txt("Swap sides: on"))
	} else {
		rv.swapBtn.Configure(Txt("Swap sides: off"))
	}
}

// SetTopmost flips the topmost caption and applies the window attribute.
func (rv *RootView) SetTopmost(top bool) {
	if rv == nil || rv.topmostBtn == nil {
		return
	}
	if top {
		rv.topmostBtn.Configure(Txt("Topmost: on"))
		WmAttributes(App, "-topmost", 1)
	} else {
		rv.topmostBtn.Configure(Txt("Topmost: off"))
		WmAttributes(App, "-topmost", 0)
	}
}
