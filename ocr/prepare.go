package ocr

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// Variant is a preprocessed rendition of a capture. Binary variants contain
// only 0 and 255 pixels and are eligible for the shape-level passes.
type Variant struct {
	Image  *image.NRGBA
	Binary bool
}

// Prepare builds the recognition variants for one capture. The pipeline is
// grayscale, contrast stretch, Lanczos upscale, unsharp, median denoise, then
// a binary threshold and its inverse. Fast mode returns only the two binary
// variants; full mode also yields the sharpened and denoised grayscales.
func Prepare(src image.Image, scale int, threshold uint8, fast bool) []Variant {
	if scale < 1 {
		scale = 1
	}
	gray := imaging.Grayscale(src)
	gray = stretchContrast(gray)
	b := gray.Bounds()
	scaled := imaging.Resize(gray, b.Dx()*scale, b.Dy()*scale, imaging.Lanczos)
	sharpened := imaging.Sharpen(scaled, 1.0)
	median := medianFilter(sharpened)
	binary := binarize(median, threshold)
	inverted := imaging.Invert(binary)
	if fast {
		return []Variant{
			{Image: binary, Binary: true},
			{Image: inverted, Binary: true},
		}
	}
	return []Variant{
		{Image: sharpened},
		{Image: median},
		{Image: binary, Binary: true},
		{Image: inverted, Binary: true},
	}
}

// grayAt reads the red channel, which carries the luminance in grayscale
// NRGBA images.
func grayAt(img *image.NRGBA, x, y int) uint8 {
	return img.Pix[y*img.Stride+x*4]
}

func setGray(img *image.NRGBA, x, y int, v uint8) {
	i := y*img.Stride + x*4
	img.Pix[i] = v
	img.Pix[i+1] = v
	img.Pix[i+2] = v
	img.Pix[i+3] = 0xff
}

// stretchContrast remaps the luminance range to the full 0..255 span.
func stretchContrast(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	lo, hi := uint8(255), uint8(0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := grayAt(img, x, y)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo >= hi {
		return img
	}
	out := imaging.Clone(img)
	span := int(hi) - int(lo)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int(grayAt(img, x, y))
			setGray(out, x, y, uint8((v-int(lo))*255/span))
		}
	}
	return out
}

// medianFilter applies a 3x3 median over the luminance, clamping at edges.
func medianFilter(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	if w < 3 || h < 3 {
		return out
	}
	window := make([]int, 0, 9)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 {
						nx = 0
					} else if nx >= w {
						nx = w - 1
					}
					if ny < 0 {
						ny = 0
					} else if ny >= h {
						ny = h - 1
					}
					window = append(window, int(grayAt(img, nx, ny)))
				}
			}
			sort.Ints(window)
			setGray(out, x, y, uint8(window[4]))
		}
	}
	return out
}

// binarize maps luminance above the threshold to white and the rest to black.
func binarize(img *image.NRGBA, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if grayAt(img, x, y) > threshold {
				setGray(out, x, y, 255)
			} else {
				setGray(out, x, y, 0)
			}
		}
	}
	return out
}
