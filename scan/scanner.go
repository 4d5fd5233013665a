// Package scan runs one full recognition cycle over the configured capture
// regions and assembles the result into a Reading.
package scan

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/exchange-helper-go/capture"
	"github.com/soocke/exchange-helper-go/config"
	"github.com/soocke/exchange-helper-go/ocr"
)

// Scanner captures the three regions and drives the recognition cascades.
// The Tesseract client is created lazily on the first cycle so a missing
// installation surfaces as a status message instead of a startup failure.
type Scanner struct {
	log       *slog.Logger
	language  string
	grab      func(config.Region) (*image.RGBA, error)
	newClient func(language string) (ocr.Client, error)
	client    ocr.Client
	parser    ocr.Parser
}

func New(log *slog.Logger, language string) *Scanner {
	return &Scanner{
		log:      log,
		language: language,
		grab:     capture.GrabRegion,
		newClient: func(language string) (ocr.Client, error) {
			return ocr.NewEngine(language)
		},
	}
}

// Close releases the recognition client if one was created.
func (s *Scanner) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Scanner) ensureClient() (ocr.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	c, err := s.newClient(s.language)
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}

// Run executes one cycle: capture each region, try the fast recognition pass,
// rerun the thorough pass for whatever stayed unresolved, then normalize
// sides. Capture or recognition failures abort the cycle.
func (s *Scanner) Run(ratio, left, right config.Region, swap bool) (ocr.Reading, error) {
	client, err := s.ensureClient()
	if err != nil {
		return ocr.Reading{}, err
	}

	ratioImg, err := s.grab(ratio)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("grab ratio: %w", err)
	}
	leftImg, err := s.grab(left)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("grab left: %w", err)
	}
	rightImg, err := s.grab(right)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("grab right: %w", err)
	}

	num, den, ratioText, err := ocr.ReadRatio(client, ratioImg, true)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("ratio pass: %w", err)
	}
	leftValue, leftText, err := ocr.ReadBox(client, leftImg, true)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("left pass: %w", err)
	}
	rightValue, rightText, err := ocr.ReadBox(client, rightImg, true)
	if err != nil {
		return ocr.Reading{}, fmt.Errorf("right pass: %w", err)
	}

	if num == nil || den == nil {
		num, den, ratioText, err = ocr.ReadRatio(client, ratioImg, false)
		if err != nil {
			return ocr.Reading{}, fmt.Errorf("ratio pass: %w", err)
		}
	}
	if leftValue == nil {
		leftValue, leftText, err = ocr.ReadBox(client, leftImg, false)
		if err != nil {
			return ocr.Reading{}, fmt.Errorf("left pass: %w", err)
		}
	}
	if rightValue == nil {
		rightValue, rightText, err = ocr.ReadBox(client, rightImg, false)
		if err != nil {
			return ocr.Reading{}, fmt.Errorf("right pass: %w", err)
		}
	}

	if swap {
		leftValue, rightValue = rightValue, leftValue
	}

	raw := strings.TrimSpace(fmt.Sprintf("RATIO: %s\nLEFT: %s\nRIGHT: %s", ratioText, leftText, rightText))
	reading := ocr.Reading{
		RatioNum: num,
		RatioDen: den,
		Left:     leftValue,
		Right:    rightValue,
		Raw:      raw,
	}

	// Labeled free text sometimes survives inside a region capture. Use it
	// to backfill whatever the region passes missed.
	if num == nil || leftValue == nil || rightValue == nil {
		fallback := s.parser.Parse(raw)
		if reading.RatioNum == nil && fallback.RatioNum != nil {
			reading.RatioNum, reading.RatioDen = fallback.RatioNum, fallback.RatioDen
		}
		if reading.Left == nil {
			reading.Left = fallback.Left
		}
		if reading.Right == nil {
			reading.Right = fallback.Right
		}
	}

	s.log.Debug("scan cycle",
		slog.String("ratio", reading.RatioDisplay()),
		slog.Any("left", reading.Left),
		slog.Any("right", reading.Right),
	)
	return reading, nil
}
