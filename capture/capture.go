package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/exchange-helper-go/config"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRegion captures a configured region, clipped to the visible screen.
// An empty or fully off-screen region is an error so callers can surface
// "region not set" instead of feeding a zero image to recognition.
func GrabRegion(r config.Region) (*image.RGBA, error) {
	if !r.Set() {
		return nil, fmt.Errorf("capture: region not set")
	}
	rect := image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
	if screen, err := screenshot.ScreenRect(); err == nil {
		rect = rect.Intersect(screen)
	}
	if rect.Empty() {
		return nil, fmt.Errorf("capture: region %v outside screen", r)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, err
	}
	return img, nil
}
