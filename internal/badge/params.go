package badge

import (
	"errors"
	"fmt"
)

// HueRange is a closed interval on the 0-360 degree hue circle.
type HueRange struct {
	Start float64
	End   float64
}

func (r HueRange) Contains(h float64) bool {
	return r.Start <= h && h <= r.End
}

func (r HueRange) String() string {
	return fmt.Sprintf("%g-%g", r.Start, r.End)
}

// Params holds every tunable of the badge pipeline.
type Params struct {
	CanvasSize int // Badge edge length in pixels

	HappyHues         []HueRange // Happy hue set, in degrees
	RawHueCompare     bool       // Compare the 8-bit hue channel to HappyHues bounds without converting to degrees
	MinSaturation     uint8      // Min saturation for a happy pixel (0-255)
	MinValue          uint8      // Min brightness for a happy pixel (0-255)
	HappyThresholdPct float64    // Happy share must exceed this; share is scaled 0-100, so 0.10 means 0.10%

	HueRotation    int     // Added to the 8-bit hue channel, mod 256 (15 steps is about 21 degrees)
	SaturationGain float64 // Saturation multiplier, clipped to 255
	ValueGain      float64 // Brightness multiplier, clipped to 255

	RepairPasses int // Neighborhood repair passes; 1 is a single pass, more iterate until nothing changes

	ColorThreshold int // Reserved; no check consults it
}

// DefaultParams returns the production badge settings.
func DefaultParams() Params {
	return Params{
		CanvasSize: 512,
		HappyHues: []HueRange{
			{Start: 20, End: 50},
			{Start: 330, End: 360},
		},
		MinSaturation:     100,
		MinValue:          150,
		HappyThresholdPct: 0.10,
		HueRotation:       15,
		SaturationGain:    1.5,
		ValueGain:         1.2,
		RepairPasses:      1,
		ColorThreshold:    100,
	}
}

func (p Params) Validate() error {
	if p.CanvasSize <= 0 {
		return errors.New("canvas size must be > 0")
	}
	if len(p.HappyHues) == 0 {
		return errors.New("happy hue set is empty")
	}
	for _, r := range p.HappyHues {
		if r.Start > r.End {
			return fmt.Errorf("hue range %s is inverted", r)
		}
	}
	if p.HappyThresholdPct < 0 {
		return errors.New("happy threshold must be >= 0")
	}
	if p.SaturationGain < 0 || p.ValueGain < 0 {
		return errors.New("enhance gains must be >= 0")
	}
	if p.RepairPasses < 1 {
		return errors.New("repair passes must be >= 1")
	}
	return nil
}

func (p Params) sizeMessage() string {
	return fmt.Sprintf("The image must be %dx%d pixels.", p.CanvasSize, p.CanvasSize)
}
