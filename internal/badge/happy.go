package badge

import (
	"image"
	"io"
	"log"

	"happy-badge/internal/model"
)

// Classifier decides whether an image's palette reads as warm and cheerful.
type Classifier struct {
	params Params
	bands  []hueBand
}

// hueBand is a happy hue range expressed in 8-bit hue channel units.
type hueBand struct {
	lo, hi int
}

func NewClassifier(p Params) *Classifier {
	bands := make([]hueBand, 0, len(p.HappyHues))
	for _, r := range p.HappyHues {
		bands = append(bands, hueBand{lo: hueChannel(r.Start), hi: hueChannel(r.End)})
	}
	return &Classifier{params: p, bands: bands}
}

// IsHappyPixel reports whether an 8-bit HSV pixel is in the happy band: a happy
// hue, saturated enough and bright enough.
func (c *Classifier) IsHappyPixel(h, s, v uint8) bool {
	return c.happyHue(h) && s >= c.params.MinSaturation && v >= c.params.MinValue
}

// The range bounds are quantized with the same floor rule as the hue channel,
// so a pixel sitting exactly on a bound stays inside its closed range. Only
// the listed ranges count; a hue just past 0 degrees is not treated as
// adjacent to the 330-360 range.
func (c *Classifier) happyHue(h uint8) bool {
	if c.params.RawHueCompare {
		for _, r := range c.params.HappyHues {
			if r.Contains(float64(h)) {
				return true
			}
		}
		return false
	}
	for _, b := range c.bands {
		if b.lo <= int(h) && int(h) <= b.hi {
			return true
		}
	}
	return false
}

// HappyPercentage returns the share of happy pixels scaled to 0-100.
func (c *Classifier) HappyPercentage(hsv *HSV) (float64, error) {
	total := len(hsv.Pix) / 4
	if total == 0 {
		return 0, ErrEmptyImage
	}
	happy := 0
	for i := 0; i < len(hsv.Pix); i += 4 {
		if c.IsHappyPixel(hsv.Pix[i], hsv.Pix[i+1], hsv.Pix[i+2]) {
			happy++
		}
	}
	return float64(happy) / float64(total) * 100, nil
}

// Classify scores an in-memory buffer. Alpha is ignored: the color under a
// transparent pixel still counts.
func (c *Classifier) Classify(img *image.NRGBA) model.Verdict {
	if img == nil {
		return failed(errNoImage)
	}
	pct, err := c.HappyPercentage(ToHSV(img))
	if err != nil {
		return failed(err)
	}
	log.Printf("happy pixels: %.4f%%", pct)
	if pct > c.params.HappyThresholdPct {
		return model.Verdict{Accepted: true, Reason: MsgHappy}
	}
	return model.Verdict{Accepted: false, Reason: MsgNotHappy, Err: ErrNotHappy}
}

// ClassifyReader decodes r and classifies the result.
func (c *Classifier) ClassifyReader(r io.Reader) model.Verdict {
	img, _, err := Decode(r)
	if err != nil {
		log.Printf("check color happiness: %v", err)
		return failed(err)
	}
	return c.Classify(img)
}

