package ocr

import "testing"

func TestParser_LabeledLines(t *testing.T) {
	var p Parser
	r := p.Parse("Market Ratio\n5 : 1\n120 items\n600 orbs")
	if r.RatioNum == nil || r.RatioDen == nil || *r.RatioNum != 5 || *r.RatioDen != 1 {
		t.Fatalf("expected ratio 5:1, got %v:%v", r.RatioNum, r.RatioDen)
	}
	if r.Right == nil || *r.Right != 120 {
		t.Fatalf("expected items 120 on the right, got %v", r.Right)
	}
	if r.Left == nil || *r.Left != 600 {
		t.Fatalf("expected price 600 on the left, got %v", r.Left)
	}
}

func TestParser_RatioOnNextLineAfterKeyword(t *testing.T) {
	var p Parser
	r := p.Parse("Ratio\n3,5:1")
	if r.RatioNum == nil || *r.RatioNum != 3.5 || *r.RatioDen != 1 {
		t.Fatalf("expected 3.5:1, got %v:%v", r.RatioNum, r.RatioDen)
	}
}

func TestParser_FallbackExcludesRatioComponents(t *testing.T) {
	var p Parser
	r := p.Parse("3:1\n9\n500")
	if r.RatioNum == nil || *r.RatioNum != 3 || *r.RatioDen != 1 {
		t.Fatalf("expected ratio 3:1, got %v:%v", r.RatioNum, r.RatioDen)
	}
	if r.Right == nil || *r.Right != 9 {
		t.Fatalf("expected smallest leftover as items, got %v", r.Right)
	}
	if r.Left == nil || *r.Left != 500 {
		t.Fatalf("expected largest leftover as price, got %v", r.Left)
	}
}

func TestParser_LargestPairWinsWithoutKeyword(t *testing.T) {
	var p Parser
	r := p.Parse("2:1 something 10:3")
	if r.RatioNum == nil || *r.RatioNum != 10 || *r.RatioDen != 3 {
		t.Fatalf("expected 10:3, got %v:%v", r.RatioNum, r.RatioDen)
	}
}

func TestParser_EmptyText(t *testing.T) {
	var p Parser
	r := p.Parse("   \n  ")
	if r.RatioNum != nil || r.Left != nil || r.Right != nil {
		t.Fatalf("expected empty reading, got %+v", r)
	}
	if r.Raw != "" {
		t.Fatalf("expected trimmed raw text, got %q", r.Raw)
	}
}

func TestRemoveOnce(t *testing.T) {
	got := removeOnce([]int{3, 1, 3, 9}, 3)
	want := []int{1, 3, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
