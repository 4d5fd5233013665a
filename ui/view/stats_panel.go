package view

import (
	"fmt"
	"time"

	"github.com/soocke/exchange-helper-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsPanel displays the recognized values and the recommendation.
type StatsPanel interface {
	SetPayload(p model.DisplayPayload)
}

type statsPanel struct {
	ratioLbl      *LabelWidget
	leftLbl       *LabelWidget
	rightLbl      *LabelWidget
	expLeftLbl    *LabelWidget
	expRightLbl   *LabelWidget
	recommendLbl  *LabelWidget
	recommendVal  *LabelWidget
	confidenceLbl *LabelWidget
	updatedLbl    *LabelWidget
}

// NewStatsPanel builds the value grid inside parent starting at startRow and
// returns the panel with the next free row.
func NewStatsPanel(parent *FrameWidget, startRow int) (StatsPanel, int) {
	s := &statsPanel{}
	row := startRow

	block := func(caption string, emphasized bool) *LabelWidget {
		lbl := Label(Txt(caption), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		var value *LabelWidget
		if emphasized {
			value = Label(Txt("--"), Anchor("e"), Borderwidth(1), Relief("ridge"), Width(14))
		} else {
			value = Label(Txt("--"), Anchor("e"), Width(14))
		}
		Grid(value, In(parent), Row(row), Column(1), Sticky("e"), Padx("0.4m"), Pady("0.15m"))
		row++
		return value
	}

	s.ratioLbl = block("Market ratio", true)
	s.leftLbl = block("I want", false)
	s.rightLbl = block("I have", false)
	s.expLeftLbl = block("Expected I want", false)
	s.expRightLbl = block("Expected I have", false)
	s.recommendLbl = Label(Txt("Recommended I have"), Anchor("w"))
	Grid(s.recommendLbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	s.recommendVal = Label(Txt("--"), Anchor("e"), Borderwidth(1), Relief("ridge"), Width(14))
	Grid(s.recommendVal, In(parent), Row(row), Column(1), Sticky("e"), Padx("0.4m"), Pady("0.15m"))
	row++
	s.confidenceLbl = block("Confidence", false)
	s.updatedLbl = Label(Txt("Last update: --"), Anchor("w"))
	Grid(s.updatedLbl, In(parent), Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	return s, row
}

// SetPayload pushes one rendered cycle into the labels.
func (s *statsPanel) SetPayload(p model.DisplayPayload) {
	if s == nil {
		return
	}
	set := func(lbl *LabelWidget, text string) {
		if lbl != nil {
			lbl.Configure(Txt(text))
		}
	}
	set(s.ratioLbl, p.RatioText)
	set(s.leftLbl, p.LeftText)
	set(s.rightLbl, p.RightText)
	set(s.expLeftLbl, p.ExpectedLeft)
	set(s.expRightLbl, p.ExpectedRight)
	set(s.recommendLbl, p.RecommendLabel)
	set(s.recommendVal, p.RecommendValue)
	set(s.confidenceLbl, fmt.Sprintf("%d%%", p.Confidence))
	if !p.UpdatedAt.IsZero() {
		set(s.updatedLbl, "Last update: "+p.UpdatedAt.Format(time.TimeOnly))
	}
}
