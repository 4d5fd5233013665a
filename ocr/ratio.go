package ocr

import (
	"image"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type candidateKey struct {
	num, den float64
}

type candidate struct {
	count, score int
	// order is the insertion rank within one cycle. Candidates tied on
	// (count, score) resolve to the earliest seen so reruns over the same
	// image pick the same winner.
	order int
}

// ratioThresholds for the binarization sweep. The fast pass tries only the
// brightest cut.
func ratioThresholds(fast bool) []uint8 {
	if fast {
		return []uint8{170}
	}
	return []uint8{170, 150, 130, 110}
}

// ReadRatio recognizes the market ratio region. It sweeps thresholds,
// preprocessing variants and profiles, collects every plausible N:D pair as a
// vote, and returns the pair with the most votes (score breaking ties). The
// returned text is the display rendition, or the best raw text when nothing
// parsed.
func ReadRatio(c Client, img image.Image, fast bool) (num, den *float64, text string, err error) {
	candidates := map[candidateKey]*candidate{}
	bestText := ""
	profiles := RatioProfiles(fast)
	scale := 4
	if fast {
		scale = 3
	}
	boxesChecked := false
	splitChecked := false
	cropped := AutoCrop(img)

	nextOrder := 0
	vote := func(n, d float64, explicit, inferred bool, bonus int) {
		if n <= 0 || d <= 0 {
			return
		}
		score := scoreRatio(n, d, explicit, inferred) + bonus
		key := candidateKey{round2(n), round2(d)}
		entry := candidates[key]
		if entry == nil {
			candidates[key] = &candidate{count: 1, score: score, order: nextOrder}
			nextOrder++
			return
		}
		entry.count++
		if score > entry.score {
			entry.score = score
		}
	}

	voteText := func(text string, bonus int) {
		for _, m := range ratioRe.FindAllStringSubmatch(text, -1) {
			nVal, nExplicit, nInferred, nOK := parseRatioToken(m[1])
			dVal, dExplicit, dInferred, dOK := parseRatioToken(m[2])
			if !nOK || !dOK {
				continue
			}
			vote(nVal, dVal, nExplicit || dExplicit, nInferred || dInferred, bonus)
		}
	}

	for _, threshold := range ratioThresholds(fast) {
		for _, variant := range Prepare(cropped, scale, threshold, fast) {
			for _, profile := range profiles {
				raw, terr := c.Text(variant.Image, profile)
				if terr != nil {
					return nil, nil, "", terr
				}
				raw = strings.TrimSpace(raw)
				if raw != "" {
					bestText = raw
				}
				voteText(raw, 0)
			}
			if !boxesChecked && variant.Binary {
				boxesChecked = true
				boxText := symbolText(c, variant.Image, profiles[0])
				if boxText != "" && boxText != bestText {
					voteText(boxText, 2)
				}
			}
			if !splitChecked && variant.Binary {
				splitChecked = true
				if left, right, ok := SplitByGap(variant.Image); ok {
					lv, lerr := readRatioSide(c, left)
					rv, rerr := readRatioSide(c, right)
					if lerr != nil {
						return nil, nil, "", lerr
					}
					if rerr != nil {
						return nil, nil, "", rerr
					}
					if lv != nil && rv != nil {
						vote(*lv, *rv, false, false, 3)
					}
				}
			}
		}
	}

	if len(candidates) > 0 {
		var bestKey candidateKey
		var best *candidate
		for key, entry := range candidates {
			if best == nil ||
				entry.count > best.count ||
				(entry.count == best.count && entry.score > best.score) ||
				(entry.count == best.count && entry.score == best.score && entry.order < best.order) {
				bestKey, best = key, entry
			}
		}
		n, d := bestKey.num, bestKey.den
		return &n, &d, FormatRatioValue(&n) + ":" + FormatRatioValue(&d), nil
	}

	if pairs := CollectRatios(bestText); len(pairs) > 0 {
		best := pairs[0]
		for _, pair := range pairs[1:] {
			if pair.Den > best.Den || (pair.Den == best.Den && pair.Num > best.Num) {
				best = pair
			}
		}
		return &best.Num, &best.Den,
			FormatRatioValue(&best.Num) + ":" + FormatRatioValue(&best.Den), nil
	}
	return nil, nil, bestText, nil
}

// readRatioSide recognizes a single split half under the digit cascade. The
// first profile producing a parseable number wins; otherwise the last
// non-empty text is parsed as a last resort.
func readRatioSide(c Client, img image.Image) (*float64, error) {
	bestText := ""
	for _, profile := range DigitProfiles() {
		raw, err := c.Text(img, profile)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw != "" {
			bestText = raw
		}
		if tok := sideTokenRe.FindString(raw); tok != "" {
			if v, _, _, ok := parseRatioToken(tok); ok {
				return &v, nil
			}
		}
	}
	if tok := sideTokenRe.FindString(bestText); tok != "" {
		if v, _, _, ok := parseRatioToken(tok); ok {
			return &v, nil
		}
	}
	return nil, nil
}

var sideTokenRe = regexp.MustCompile(`\d{1,6}(?:[.,]\d{1,2})?`)

// symbolText rebuilds the line from per-character boxes, correcting 1/7
// confusions by glyph shape. Narrow sevens become ones, wide ones become
// sevens when shape analysis stays ambiguous.
func symbolText(c Client, img *image.NRGBA, profile Profile) string {
	symbols, err := c.Symbols(img, profile)
	if err != nil {
		return ""
	}
	type placed struct {
		x    int
		char string
	}
	var items []placed
	for _, s := range symbols {
		char := s.Char
		if len(char) != 1 || !strings.ContainsAny(char, RatioChars) {
			continue
		}
		if char == "1" || char == "7" {
			box := s.Box.Intersect(img.Bounds())
			if !box.Empty() {
				w := max(1, box.Dx())
				h := max(1, box.Dy())
				aspect := float64(w) / float64(h)
				roi := img.SubImage(box)
				if corrected := ClassifyOneSeven(roi); corrected != "" {
					char = corrected
				} else if char == "7" && aspect < 0.35 {
					char = "1"
				} else if char == "1" && aspect > 0.6 {
					char = "7"
				}
			}
		}
		items = append(items, placed{x: s.Box.Min.X, char: char})
	}
	if len(items) == 0 {
		return ""
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].x < items[j].x })
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.char)
	}
	return sb.String()
}

// parseRatioToken interprets one numeric token. Commas read as decimal
// points. Integers of a thousand or more that are not round hundreds are
// assumed to be a decimal whose point the recognizer dropped.
func parseRatioToken(token string) (value float64, explicit, inferred, ok bool) {
	normalized := strings.ReplaceAll(token, ",", ".")
	if strings.Contains(normalized, ".") {
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0, false, false, false
		}
		return v, true, false, true
	}
	n, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, false, false, false
	}
	if n >= 1000 && n%100 != 0 {
		return float64(n) / 100.0, false, true, true
	}
	return float64(n), false, false, true
}

// scoreRatio ranks a candidate pair by plausibility for a trade UI.
func scoreRatio(num, den float64, explicit, inferred bool) int {
	score := 0
	if num > 0 && den > 0 {
		score += 10
	}
	if math.Abs(num-1) < 1e-6 || math.Abs(den-1) < 1e-6 {
		score += 4
	}
	if num <= 10000 && den <= 10000 {
		score += 4
	}
	if num <= 1000 && den <= 1000 {
		score += 2
	}
	if explicit {
		score += 3
	}
	if inferred {
		score += 1
	}
	if math.Abs(num-den) > 1e-6 {
		score += 1
	}
	return score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
