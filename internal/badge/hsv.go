package badge

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV is an 8-bit hue/saturation/value raster. Each pixel takes four bytes:
// hue (0-255 spanning 0-360 degrees), saturation, value, and the alpha of the
// source pixel so the round trip back to RGBA keeps transparency intact.
type HSV struct {
	Pix  []uint8
	Rect image.Rectangle
}

func NewHSV(r image.Rectangle) *HSV {
	return &HSV{Pix: make([]uint8, 4*r.Dx()*r.Dy()), Rect: r}
}

func (h *HSV) offset(x, y int) int {
	return 4 * ((y-h.Rect.Min.Y)*h.Rect.Dx() + (x - h.Rect.Min.X))
}

// ToHSV converts an NRGBA buffer channel-wise to 8-bit HSV.
func ToHSV(img *image.NRGBA) *HSV {
	b := img.Bounds()
	out := NewHSV(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			o := out.offset(x, y)
			hh, s, v := rgbToHSV8(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = hh, s, v, img.Pix[i+3]
		}
	}
	return out
}

// ToNRGBA converts back to RGBA, restoring the carried alpha.
func (h *HSV) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(h.Rect)
	for y := h.Rect.Min.Y; y < h.Rect.Max.Y; y++ {
		for x := h.Rect.Min.X; x < h.Rect.Max.X; x++ {
			o := h.offset(x, y)
			i := out.PixOffset(x, y)
			r, g, bb := hsv8ToRGB(h.Pix[o], h.Pix[o+1], h.Pix[o+2])
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = r, g, bb, h.Pix[o+3]
		}
	}
	return out
}

func rgbToHSV8(r, g, b uint8) (uint8, uint8, uint8) {
	maxC := maxU8(r, maxU8(g, b))
	minC := minU8(r, minU8(g, b))
	if maxC == minC {
		return 0, 0, maxC
	}
	s := uint8(255 * int(maxC-minC) / int(maxC))

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	deg, _, _ := c.Hsv()
	return uint8(hueChannel(deg)), s, maxC
}

func hsv8ToRGB(h, s, v uint8) (uint8, uint8, uint8) {
	if s == 0 {
		return v, v, v
	}
	deg := math.Mod(hueDegrees(h), 360)
	return colorful.Hsv(deg, float64(s)/255, float64(v)/255).RGB255()
}

// hueChannel maps degrees onto the 8-bit hue channel, rounding down and
// clamping to 0-255.
func hueChannel(deg float64) int {
	h := int(math.Floor(deg * 255 / 360))
	if h < 0 {
		return 0
	}
	if h > 255 {
		return 255
	}
	return h
}

// hueDegrees maps an 8-bit hue channel onto 0-360 degrees.
func hueDegrees(h uint8) float64 {
	return float64(h) * 360 / 255
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
