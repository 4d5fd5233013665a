package ocr

import (
	"image"
	"testing"
)

// glyph builds a black image and paints the given rectangles white.
func glyph(w, h int, strokes ...image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setGray(img, x, y, 0)
		}
	}
	for _, r := range strokes {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				setGray(img, x, y, 255)
			}
		}
	}
	return img
}

func TestClassifyOneSeven_TopBarIsSeven(t *testing.T) {
	// Full-width top bar with a thin diagonal-ish tail off center.
	img := glyph(20, 20,
		image.Rect(0, 0, 20, 5),
		image.Rect(14, 5, 16, 20),
	)
	if got := ClassifyOneSeven(img); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}

func TestClassifyOneSeven_VerticalStrokeIsOne(t *testing.T) {
	img := glyph(20, 20, image.Rect(9, 0, 12, 20))
	if got := ClassifyOneSeven(img); got != "1" {
		t.Fatalf("expected 1, got %q", got)
	}
}

func TestClassifyOneSeven_TinyImageIsAmbiguous(t *testing.T) {
	if got := ClassifyOneSeven(glyph(1, 1)); got != "" {
		t.Fatalf("expected ambiguous, got %q", got)
	}
}

func TestSplitByGap_FindsWhitespaceColumn(t *testing.T) {
	img := glyph(20, 10,
		image.Rect(0, 2, 7, 8),
		image.Rect(13, 2, 20, 8),
	)
	left, right, ok := SplitByGap(img)
	if !ok {
		t.Fatalf("expected split")
	}
	if left.Bounds().Dx() >= 13 || right.Bounds().Dx() >= 13 {
		t.Fatalf("split did not separate halves: left=%d right=%d",
			left.Bounds().Dx(), right.Bounds().Dx())
	}
}

func TestSplitByGap_DenseImageDoesNotSplit(t *testing.T) {
	img := glyph(20, 10, image.Rect(0, 2, 20, 8))
	if _, _, ok := SplitByGap(img); ok {
		t.Fatalf("expected no split for dense glyph row")
	}
}

func TestAutoCrop_TrimsToContentWithPad(t *testing.T) {
	img := glyph(20, 20, image.Rect(5, 6, 10, 10))
	out := AutoCrop(img)
	b := out.Bounds()
	if b.Dx() != 9 || b.Dy() != 8 {
		t.Fatalf("expected 9x8 crop, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestAutoCrop_BlankImageUnchanged(t *testing.T) {
	img := glyph(12, 8)
	out := AutoCrop(img)
	b := out.Bounds()
	if b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("expected original size, got %dx%d", b.Dx(), b.Dy())
	}
}
