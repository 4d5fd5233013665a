package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/exchange-helper-go/capture"
	"github.com/soocke/exchange-helper-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// Region pick targets.
const (
	TargetRatio = "ratio"
	TargetLeft  = "left"
	TargetRight = "right"
)

// SelectionOverlay manages the transparent pick window the user drags over
// one of the game's UI regions.
type SelectionOverlay interface {
	OpenOrFocus(target string)
	Clear(target string)
}

type selectionOverlay struct {
	logger   *slog.Logger
	cfg      *config.Config
	cfgPath  string
	onPicked func(target string)
	win      *ToplevelWidget
	target   string
}

// NewSelectionOverlay creates a new overlay manager. onPicked fires after a
// region was confirmed or cleared and persisted.
func NewSelectionOverlay(cfg *config.Config, cfgPath string, onPicked func(target string), logger *slog.Logger) SelectionOverlay {
	return &selectionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath, onPicked: onPicked}
}

func (v *selectionOverlay) OpenOrFocus(target string) {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	v.target = target
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle(fmt.Sprintf("Pick %s region", target))
	v.win = win
	screenW, screenH := screenSize()
	initW, initH := screenW/4, screenH/12
	if prev := v.region(target); prev != nil && prev.Set() {
		initW, initH = prev.Width, prev.Height
	}
	if initW < 1 {
		initW = 1
	}
	if initH < 1 {
		initH = 1
	}
	x, y := (screenW-initW)/2, (screenH-initH)/2
	if prev := v.region(target); prev != nil && prev.Set() {
		x, y = prev.Left, prev.Top
	}
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", initW, initH, x, y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

func (v *selectionOverlay) Clear(target string) {
	if r := v.region(target); r != nil {
		*r = config.Region{}
		v.persist(target)
	}
}

func (v *selectionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	if rect, ok := parseGeometry(geom); ok {
		if r := v.region(v.target); r != nil {
			*r = config.Region{
				Left:   rect.Min.X,
				Top:    rect.Min.Y,
				Width:  rect.Dx(),
				Height: rect.Dy(),
			}
			v.persist(v.target)
		}
	}
	v.destroy()
}

func (v *selectionOverlay) cancel() { v.destroy() }

func (v *selectionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

func (v *selectionOverlay) region(target string) *config.Region {
	if v.cfg == nil {
		return nil
	}
	switch target {
	case TargetRatio:
		return &v.cfg.RatioRegion
	case TargetLeft:
		return &v.cfg.LeftRegion
	case TargetRight:
		return &v.cfg.RightRegion
	}
	return nil
}

func (v *selectionOverlay) persist(target string) {
	if v.cfg != nil {
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("save config", "error", err)
		}
	}
	if v.onPicked != nil {
		v.onPicked(target)
	}
}

// screenSize measures the display from a full-screen grab, falling back to a
// common desktop size when capture fails.
func screenSize() (int, int) {
	if img, err := capture.Grab(); err == nil {
		b := img.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			return b.Dx(), b.Dy()
		}
	}
	return 1920, 1080
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
