package badge

import "image"

// Inspection is the result of a mask check. Image is nil when a strict check
// fails, and is the (possibly repaired) input otherwise.
type Inspection struct {
	OK       bool
	Message  string
	Image    *image.NRGBA
	Repaired int
	Err      error
}

// MaskInspector enforces that transparency only appears outside the circle
// inscribed in the badge.
type MaskInspector struct {
	passes int
}

func NewMaskInspector(p Params) *MaskInspector {
	passes := p.RepairPasses
	if passes < 1 {
		passes = 1
	}
	return &MaskInspector{passes: passes}
}

func noImage() Inspection {
	return Inspection{OK: false, Message: errNoImage.Error(), Err: errNoImage}
}

type circle struct {
	cx, cy, r int
}

func inscribedCircle(w, h int) circle {
	cx, cy := w/2, h/2
	return circle{cx: cx, cy: cy, r: minInt(cx, cy)}
}

// contains uses an inclusive boundary.
func (c circle) contains(x, y int) bool {
	dx, dy := x-c.cx, y-c.cy
	return dx*dx+dy*dy <= c.r*c.r
}

func (m *MaskInspector) Inspect(img *image.NRGBA, repair bool) Inspection {
	if repair {
		return m.Repair(img)
	}
	return m.Check(img)
}

// Check scans row-major and stops at the first transparent pixel inside the circle.
func (m *MaskInspector) Check(img *image.NRGBA) Inspection {
	if img == nil {
		return noImage()
	}
	b := img.Bounds()
	c := inscribedCircle(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if !c.contains(x, y) {
				continue
			}
			if img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] == 0 {
				return Inspection{OK: false, Message: MsgMaskViolation, Err: ErrMask}
			}
		}
	}
	return Inspection{OK: true, Message: MsgMaskOK, Image: img}
}

// Repair fills transparent pixels inside the circle with the floor average of
// their opaque 3x3 neighbors and makes them fully opaque. Pixels without an
// opaque neighbor stay transparent. It mutates img in place and always
// reports success.
func (m *MaskInspector) Repair(img *image.NRGBA) Inspection {
	if img == nil {
		return noImage()
	}
	b := img.Bounds()
	c := inscribedCircle(b.Dx(), b.Dy())
	total := 0
	for pass := 0; pass < m.passes; pass++ {
		n := repairPass(img, c)
		total += n
		if n == 0 {
			break
		}
	}
	return Inspection{OK: true, Message: MsgMaskOK, Image: img, Repaired: total}
}

// repairPass reads neighbors from a snapshot taken before the pass, so a pixel
// repaired in this pass never feeds another repair in the same pass.
func repairPass(img *image.NRGBA, c circle) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src := make([]uint8, len(img.Pix))
	copy(src, img.Pix)

	repaired := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.contains(x, y) {
				continue
			}
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			if src[i+3] != 0 {
				continue
			}
			var rSum, gSum, bSum, count int
			for ny := maxInt(0, y-1); ny < minInt(h, y+2); ny++ {
				for nx := maxInt(0, x-1); nx < minInt(w, x+2); nx++ {
					j := img.PixOffset(b.Min.X+nx, b.Min.Y+ny)
					if src[j+3] == 0 {
						continue
					}
					rSum += int(src[j])
					gSum += int(src[j+1])
					bSum += int(src[j+2])
					count++
				}
			}
			if count == 0 {
				continue
			}
			img.Pix[i] = uint8(rSum / count)
			img.Pix[i+1] = uint8(gSum / count)
			img.Pix[i+2] = uint8(bSum / count)
			img.Pix[i+3] = 255
			repaired++
		}
	}
	return repaired
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
