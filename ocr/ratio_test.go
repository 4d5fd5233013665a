package ocr

import (
	"image"
	"math"
	"testing"
)

// fakeClient replays scripted responses keyed by profile whitelist. Each call
// pops the next queued response; an exhausted queue yields empty text. Symbols
// returns the scripted list regardless of the image.
type fakeClient struct {
	queues  map[string][]string
	symbols []Symbol
	calls   int
}

func (f *fakeClient) Text(img image.Image, p Profile) (string, error) {
	f.calls++
	q := f.queues[p.Whitelist]
	if len(q) == 0 {
		return "", nil
	}
	f.queues[p.Whitelist] = q[1:]
	return q[0], nil
}

func (f *fakeClient) Symbols(img image.Image, p Profile) ([]Symbol, error) {
	return f.symbols, nil
}

func (f *fakeClient) Close() error { return nil }

func grayFill(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestReadRatio_AgreementWins(t *testing.T) {
	c := &fakeClient{queues: map[string][]string{
		RatioChars: {"5:1", "5:1"},
	}}
	num, den, text, err := ReadRatio(c, grayFill(40, 12, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num == nil || den == nil {
		t.Fatalf("expected ratio, got num=%v den=%v", num, den)
	}
	if *num != 5 || *den != 1 {
		t.Fatalf("expected 5:1, got %v:%v", *num, *den)
	}
	if text != "5:1" {
		t.Fatalf("expected display text 5:1, got %q", text)
	}
}

func TestReadRatio_VoteCountBeatsScore(t *testing.T) {
	// 7:2 appears in both passes, 3:1 only once.
	c := &fakeClient{queues: map[string][]string{
		RatioChars: {"3:1 7:2", "7:2"},
	}}
	num, den, _, err := ReadRatio(c, grayFill(40, 12, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num == nil || den == nil || *num != 7 || *den != 2 {
		t.Fatalf("expected 7:2 to win by votes, got %v:%v", num, den)
	}
}

func TestReadRatio_NoPairReturnsRawText(t *testing.T) {
	c := &fakeClient{queues: map[string][]string{
		RatioChars: {"no pairs 123", "456"},
	}}
	num, den, text, err := ReadRatio(c, grayFill(40, 12, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != nil || den != nil {
		t.Fatalf("expected no ratio, got %v:%v", num, den)
	}
	if text != "456" {
		t.Fatalf("expected last raw text, got %q", text)
	}
}

func TestReadRatio_RawFallbackPrefersLargerDenominator(t *testing.T) {
	// Both candidates carry a zero component so neither is voted; the raw
	// fallback picks by (den, num).
	c := &fakeClient{queues: map[string][]string{
		RatioChars: {"", "0:3 0:9"},
	}}
	num, den, _, err := ReadRatio(c, grayFill(40, 12, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num == nil || den == nil || *num != 0 || *den != 9 {
		t.Fatalf("expected fallback pair 0:9, got %v %v", num, den)
	}
}

func TestReadRatio_TieBreaksAreStable(t *testing.T) {
	// 3:1 and 1:3 collect identical votes and scores every pass; the pair
	// seen first must win on every rerun over the same input.
	for i := 0; i < 50; i++ {
		c := &fakeClient{queues: map[string][]string{
			RatioChars: {"3:1 1:3", "3:1 1:3"},
		}}
		num, den, _, err := ReadRatio(c, grayFill(40, 12, 80), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if num == nil || den == nil || *num != 3 || *den != 1 {
			t.Fatalf("run %d: expected first-seen 3:1 to win the tie, got %v:%v", i, num, den)
		}
	}
}

func TestReadRatio_SymbolCorrectionOutvotesMisread(t *testing.T) {
	// The text pass misreads the line as 7:1. The symbol pass sees the same
	// glyphs with boxes; the leading "7" is far too narrow for a seven, so the
	// aspect fallback corrects it and the bonus-weighted 1:1 wins on score.
	c := &fakeClient{
		queues: map[string][]string{
			RatioChars: {"7:1"},
		},
		symbols: []Symbol{
			{Char: "7", Box: image.Rect(0, 0, 3, 20)},
			{Char: ":", Box: image.Rect(4, 0, 6, 20)},
			{Char: "1", Box: image.Rect(7, 0, 10, 20)},
		},
	}
	num, den, text, err := ReadRatio(c, grayFill(40, 12, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num == nil || den == nil || *num != 1 || *den != 1 {
		t.Fatalf("expected corrected 1:1 to win, got %v:%v", num, den)
	}
	if text != "1:1" {
		t.Fatalf("expected display text 1:1, got %q", text)
	}
}

// twoBlobs builds a capture with two bright digit-sized blobs separated by a
// clean vertical gap so the binary variant splits.
func twoBlobs() *image.RGBA {
	img := grayFill(12, 8, 40)
	for _, span := range [][2]int{{1, 4}, {8, 11}} {
		for y := 2; y < 6; y++ {
			for x := span[0]; x < span[1]; x++ {
				i := img.PixOffset(x, y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 230, 230, 230
			}
		}
	}
	return img
}

func TestReadRatio_GapSplitRecognizesSides(t *testing.T) {
	// Whole-line passes read nothing; only the per-side digit passes after
	// the gap split produce values.
	c := &fakeClient{queues: map[string][]string{
		DigitChars: {"5", "2"},
	}}
	num, den, text, err := ReadRatio(c, twoBlobs(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num == nil || den == nil || *num != 5 || *den != 2 {
		t.Fatalf("expected split-voted 5:2, got %v:%v", num, den)
	}
	if text != "5:2" {
		t.Fatalf("expected display text 5:2, got %q", text)
	}
}

func TestParseRatioToken(t *testing.T) {
	cases := []struct {
		token    string
		value    float64
		explicit bool
		inferred bool
		ok       bool
	}{
		{"3,5", 3.5, true, false, true},
		{"3.5", 3.5, true, false, true},
		{"1250", 12.5, false, true, true},
		{"1200", 1200, false, false, true},
		{"7", 7, false, false, true},
		{"", 0, false, false, false},
	}
	for _, tc := range cases {
		v, explicit, inferred, ok := parseRatioToken(tc.token)
		if ok != tc.ok {
			t.Fatalf("token %q: ok=%v want %v", tc.token, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if math.Abs(v-tc.value) > 1e-9 || explicit != tc.explicit || inferred != tc.inferred {
			t.Fatalf("token %q: got (%v,%v,%v) want (%v,%v,%v)",
				tc.token, v, explicit, inferred, tc.value, tc.explicit, tc.inferred)
		}
	}
}

func TestScoreRatio_ExplicitBeatsInferred(t *testing.T) {
	explicit := scoreRatio(5, 1, true, false)
	inferred := scoreRatio(5, 1, false, true)
	plain := scoreRatio(5, 1, false, false)
	if explicit <= inferred || inferred <= plain {
		t.Fatalf("expected explicit > inferred > plain, got %d %d %d", explicit, inferred, plain)
	}
}

func TestScoreRatio_PenalizesHugeValues(t *testing.T) {
	small := scoreRatio(7, 2, false, false)
	huge := scoreRatio(700000, 2, false, false)
	if small <= huge {
		t.Fatalf("expected small pair to outscore huge pair, got %d vs %d", small, huge)
	}
}
