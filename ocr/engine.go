package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Character sets for the recognition profiles. Restricting the alphabet keeps
// Tesseract from hallucinating letters into digit-only regions.
const (
	RatioChars = "0123456789:.,/"
	DigitChars = "0123456789.,"
	BoxChars   = "0123456789"
)

// ErrUnavailable indicates that no Tesseract installation could be used.
var ErrUnavailable = errors.New("ocr: tesseract unavailable")

// Profile selects the whitelist and segmentation mode for a single
// recognition call.
type Profile struct {
	Whitelist string
	PSM       gosseract.PageSegMode
}

// RatioProfiles returns the profile cascade for the ratio region. Fast mode
// uses only the first profile.
func RatioProfiles(fast bool) []Profile {
	all := []Profile{
		{RatioChars, gosseract.PSM_SINGLE_LINE},
		{RatioChars, gosseract.PSM_SINGLE_BLOCK},
		{RatioChars, gosseract.PSM_RAW_LINE},
	}
	if fast {
		return all[:1]
	}
	return all
}

// DigitProfiles returns the cascade used when reading a single ratio side
// after a gap split.
func DigitProfiles() []Profile {
	return []Profile{
		{DigitChars, gosseract.PSM_SINGLE_LINE},
		{DigitChars, gosseract.PSM_SINGLE_BLOCK},
		{DigitChars, gosseract.PSM_RAW_LINE},
	}
}

// BoxProfiles returns the profile cascade for the quantity boxes. Fast mode
// uses only the first profile.
func BoxProfiles(fast bool) []Profile {
	all := []Profile{
		{BoxChars, gosseract.PSM_SINGLE_LINE},
		{BoxChars, gosseract.PSM_SINGLE_BLOCK},
		{BoxChars, gosseract.PSM_SINGLE_CHAR},
	}
	if fast {
		return all[:1]
	}
	return all
}

// Symbol is one recognized character with its position in the input image.
type Symbol struct {
	Char string
	Box  image.Rectangle
}

// Client runs recognition calls. The production implementation wraps a
// Tesseract process; tests substitute a scripted fake.
type Client interface {
	Text(img image.Image, p Profile) (string, error)
	Symbols(img image.Image, p Profile) ([]Symbol, error)
	Close() error
}

// Engine is the Tesseract-backed Client.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a Tesseract client configured for numeric UI text.
// Dictionary correction is disabled since quantities and ratios are not
// dictionary words.
func NewEngine(language string) (*Engine, error) {
	c := gosseract.NewClient()
	if language == "" {
		language = "eng"
	}
	if err := c.SetLanguage(language); err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: set language: %v", ErrUnavailable, err)
	}
	_ = c.SetVariable("classify_bln_numeric_mode", "1")
	_ = c.SetVariable("load_system_dawg", "false")
	_ = c.SetVariable("load_freq_dawg", "false")
	return &Engine{client: c}, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func (e *Engine) apply(img image.Image, p Profile) error {
	if err := e.client.SetPageSegMode(p.PSM); err != nil {
		return fmt.Errorf("set psm: %w", err)
	}
	if err := e.client.SetWhitelist(p.Whitelist); err != nil {
		return fmt.Errorf("set whitelist: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	return nil
}

// Text recognizes the image under the given profile and returns the trimmed
// result.
func (e *Engine) Text(img image.Image, p Profile) (string, error) {
	if err := e.apply(img, p); err != nil {
		return "", err
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// Symbols recognizes the image and returns per-character bounding boxes in
// top-left image coordinates.
func (e *Engine) Symbols(img image.Image, p Profile) ([]Symbol, error) {
	if err := e.apply(img, p); err != nil {
		return nil, err
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}
	symbols := make([]Symbol, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		symbols = append(symbols, Symbol{Char: b.Word, Box: b.Box})
	}
	return symbols, nil
}
