package badge

import "image"

// Enhancer pushes a palette toward the happy band by rotating hue and boosting
// saturation and brightness.
type Enhancer struct {
	rotation int
	satGain  float64
	valGain  float64
}

func NewEnhancer(p Params) *Enhancer {
	return &Enhancer{rotation: p.HueRotation, satGain: p.SaturationGain, valGain: p.ValueGain}
}

// Enhance returns a new buffer; img is not modified. Alpha passes through
// untouched. A nil or empty image is returned as is.
func (e *Enhancer) Enhance(img *image.NRGBA) *image.NRGBA {
	if img == nil || img.Bounds().Empty() {
		return img
	}
	hsv := ToHSV(img)
	for i := 0; i < len(hsv.Pix); i += 4 {
		hsv.Pix[i] = rotateHue(hsv.Pix[i], e.rotation)
		hsv.Pix[i+1] = scaleChannel(hsv.Pix[i+1], e.satGain)
		hsv.Pix[i+2] = scaleChannel(hsv.Pix[i+2], e.valGain)
	}
	return hsv.ToNRGBA()
}

// rotateHue adds in int so the sum cannot overflow before wrapping mod 256.
func rotateHue(h uint8, by int) uint8 {
	return uint8((int(h) + by) & 0xFF)
}

// scaleChannel multiplies in float64 and truncates after clipping to [0,255].
func scaleChannel(v uint8, gain float64) uint8 {
	f := float64(v) * gain
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
