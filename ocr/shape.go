package ocr

import (
	"image"

	"github.com/disintegration/imaging"
)

// AutoCrop trims the ratio capture to the bright content plus a small pad.
// The input is returned unchanged when no bright pixels exist or the crop
// would collapse.
func AutoCrop(src image.Image) *image.NRGBA {
	gray := imaging.Grayscale(src)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if grayAt(gray, x, y) > 150 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return imaging.Clone(src)
	}
	const pad = 2
	left := max(0, minX-pad)
	top := max(0, minY-pad)
	right := min(w, maxX+1+pad)
	bottom := min(h, maxY+1+pad)
	if right-left < 2 || bottom-top < 2 {
		return imaging.Clone(src)
	}
	return imaging.Crop(src, image.Rect(left, top, right, bottom))
}

// binarizeForShape produces a white-glyph-on-black rendition regardless of
// the input polarity. Images brighter than mid-gray on average are inverted
// first so the glyph mass ends up white.
func binarizeForShape(src image.Image) *image.NRGBA {
	gray := imaging.Grayscale(src)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gray
	}
	sum := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += int(grayAt(gray, x, y))
		}
	}
	if sum/(w*h) > 127 {
		gray = imaging.Invert(gray)
	}
	return binarize(gray, 128)
}

// ClassifyOneSeven inspects the glyph mass distribution to distinguish a 1
// from a 7. Returns "1", "7", or "" when the shape is ambiguous. A 7 carries
// a heavy top bar, a 1 a dominant vertical stroke.
func ClassifyOneSeven(src image.Image) string {
	binary := binarizeForShape(src)
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return ""
	}

	topRows := max(1, h/4)
	topCount := 0
	for y := 0; y < topRows; y++ {
		for x := 0; x < w; x++ {
			if grayAt(binary, x, y) > 0 {
				topCount++
			}
		}
	}
	topRatio := float64(topCount) / float64(topRows*w)

	colStart := max(0, w/2-1)
	colEnd := min(w, colStart+3)
	vertCount := 0
	for y := 0; y < h; y++ {
		for x := colStart; x < colEnd; x++ {
			if grayAt(binary, x, y) > 0 {
				vertCount++
			}
		}
	}
	vertRatio := float64(vertCount) / float64(h*max(1, colEnd-colStart))

	urCount := 0
	urArea := max(1, (w-w/2)*(h/2))
	for y := 0; y < h/2; y++ {
		for x := w / 2; x < w; x++ {
			if grayAt(binary, x, y) > 0 {
				urCount++
			}
		}
	}
	urRatio := float64(urCount) / float64(urArea)

	switch {
	case topRatio >= 0.5 && vertRatio < 0.7:
		return "7"
	case topRatio <= 0.35 && vertRatio >= 0.65:
		return "1"
	case urRatio > 0.35 && topRatio > 0.4:
		return "7"
	case vertRatio > urRatio+0.2:
		return "1"
	}
	return ""
}

// SplitByGap looks for the vertical whitespace column separating the two
// sides of a ratio and splits the image there. The search is confined to the
// middle half of the width so glyph-internal gaps near the edges do not win.
func SplitByGap(src image.Image) (left, right *image.NRGBA, ok bool) {
	binary := binarizeForShape(src)
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 6 || h < 4 {
		return nil, nil, false
	}
	counts := make([]int, w)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if grayAt(binary, x, y) > 0 {
				counts[x]++
			}
		}
	}
	start := w * 25 / 100
	end := w * 75 / 100
	minCount, minIdx := -1, -1
	for x := start; x < end; x++ {
		if minCount < 0 || counts[x] < minCount {
			minCount = counts[x]
			minIdx = x
		}
	}
	if minIdx < 0 {
		return nil, nil, false
	}
	if minCount > max(2, h*15/100) {
		return nil, nil, false
	}
	leftImg := imaging.Crop(src, image.Rect(0, 0, minIdx, h))
	rightImg := imaging.Crop(src, image.Rect(minIdx+1, 0, w, h))
	if leftImg.Bounds().Dx() < 2 || rightImg.Bounds().Dx() < 2 {
		return nil, nil, false
	}
	return leftImg, rightImg, true
}
