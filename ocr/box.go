package ocr

import (
	"image"
	"strconv"
	"strings"
)

func boxThresholds(fast bool) []uint8 {
	if fast {
		return []uint8{150}
	}
	return []uint8{150, 120}
}

// ReadBox recognizes one quantity box. The first variant yielding any digit
// run wins; the largest run in that text is taken since box values render
// larger than surrounding decoration.
func ReadBox(c Client, img image.Image, fast bool) (*int, string, error) {
	bestText := ""
	profiles := BoxProfiles(fast)
	for _, threshold := range boxThresholds(fast) {
		for _, variant := range Prepare(img, 3, threshold, fast) {
			for _, profile := range profiles {
				raw, err := c.Text(variant.Image, profile)
				if err != nil {
					return nil, "", err
				}
				raw = strings.TrimSpace(raw)
				if raw != "" {
					bestText = raw
				}
				if v := extractBestInt(raw); v != nil {
					return v, raw, nil
				}
			}
		}
	}
	return nil, bestText, nil
}

// extractBestInt returns the largest digit run in the text, or nil when the
// text carries no digits.
func extractBestInt(text string) *int {
	matches := numberRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	best := 0
	found := false
	for _, m := range matches {
		v, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}
