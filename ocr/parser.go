package ocr

import (
	"regexp"
	"strconv"
	"strings"
)

// RatioPattern matches "N : D" style market ratios with optional decimals and
// either separator glyph.
var (
	ratioRe  = regexp.MustCompile(`(\d{1,6}(?:[.,]\d{1,2})?)\s*[:/]\s*(\d{1,6}(?:[.,]\d{1,2})?)`)
	itemsRe  = regexp.MustCompile(`(?i)(\d{1,6})\s*items?`)
	priceRe  = regexp.MustCompile(`(?i)(\d{1,8})\s*orbs?`)
	numberRe = regexp.MustCompile(`(\d{1,8})`)
)

// RatioPair is one N:D occurrence found in free text.
type RatioPair struct {
	Num, Den float64
}

// Parser extracts a Reading from free-form recognized text. It handles
// labeled lines ("Ratio: 3:1", "120 items") and falls back to positional
// heuristics when labels are missing.
type Parser struct{}

// Parse scans the text for a ratio, an item count and a listing price. The
// item count maps to the right box and the price to the left box.
func (p Parser) Parse(text string) Reading {
	raw := strings.TrimSpace(text)
	reading := Reading{Raw: raw}
	if raw == "" {
		return reading
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	num, den := p.findRatio(lines)
	items := p.findLabeled(lines, itemsRe, "item")
	price := p.findLabeled(lines, priceRe, "price")

	if (items == nil || price == nil) && num != nil && den != nil {
		numbers := extractNumbers(raw)
		for _, v := range ratioComponents(raw) {
			numbers = removeOnce(numbers, v)
		}
		if len(numbers) > 0 {
			if items == nil {
				v := numbers[0]
				for _, n := range numbers {
					if n < v {
						v = n
					}
				}
				items = &v
			}
			if price == nil {
				v := numbers[0]
				for _, n := range numbers {
					if n > v {
						v = n
					}
				}
				price = &v
			}
		}
	}

	reading.RatioNum = num
	reading.RatioDen = den
	reading.Right = items
	reading.Left = price
	return reading
}

// findRatio prefers a ratio on (or right after) a line mentioning "ratio",
// then falls back to the numerically largest pair anywhere in the text.
func (p Parser) findRatio(lines []string) (*float64, *float64) {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "ratio") {
			continue
		}
		m := ratioRe.FindStringSubmatch(line)
		if m == nil && i+1 < len(lines) {
			m = ratioRe.FindStringSubmatch(lines[i+1])
		}
		if m != nil {
			num, errN := parseDecimal(m[1])
			den, errD := parseDecimal(m[2])
			if errN == nil && errD == nil {
				return &num, &den
			}
		}
	}

	pairs := CollectRatios(strings.Join(lines, " "))
	if len(pairs) == 0 {
		return nil, nil
	}
	best := pairs[0]
	for _, pair := range pairs[1:] {
		if pair.Num > best.Num || (pair.Num == best.Num && pair.Den > best.Den) {
			best = pair
		}
	}
	return &best.Num, &best.Den
}

// findLabeled tries the dedicated pattern first, then any number on (or right
// after) a line containing the keyword.
func (p Parser) findLabeled(lines []string, re *regexp.Regexp, keyword string) *int {
	for _, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return &v
			}
		}
	}
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), keyword) {
			continue
		}
		m := numberRe.FindStringSubmatch(line)
		if m == nil && i+1 < len(lines) {
			m = numberRe.FindStringSubmatch(lines[i+1])
		}
		if m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return &v
			}
		}
	}
	return nil
}

// CollectRatios returns every N:D occurrence in the text.
func CollectRatios(text string) []RatioPair {
	var pairs []RatioPair
	for _, m := range ratioRe.FindAllStringSubmatch(text, -1) {
		num, errN := parseDecimal(m[1])
		den, errD := parseDecimal(m[2])
		if errN != nil || errD != nil {
			continue
		}
		pairs = append(pairs, RatioPair{Num: num, Den: den})
	}
	return pairs
}

func parseDecimal(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
}

func extractNumbers(text string) []int {
	var values []int
	for _, m := range numberRe.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil {
			values = append(values, v)
		}
	}
	return values
}

// ratioComponents lists the integer parts of every ratio occurrence so they
// can be excluded from the box-value candidates.
func ratioComponents(text string) []int {
	var values []int
	for _, pair := range CollectRatios(text) {
		values = append(values, int(pair.Num), int(pair.Den))
	}
	return values
}

func removeOnce(values []int, target int) []int {
	for i, v := range values {
		if v == target {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return values
}
