package badge

import (
	"image"
	"log"

	"happy-badge/internal/model"
)

// Conversion describes what Convert did to produce Image.
type Conversion struct {
	Verdict  model.Verdict
	Happy    model.Verdict
	Image    *image.NRGBA
	Resized  bool
	Enhanced bool
	Repaired int
}

// Converter fixes images into badges: it resizes, enhances colors and repairs
// the circular mask instead of rejecting.
type Converter struct {
	params     Params
	classifier *Classifier
	enhancer   *Enhancer
	mask       *MaskInspector
}

func NewConverter(p Params) *Converter {
	return &Converter{
		params:     p,
		classifier: NewClassifier(p),
		enhancer:   NewEnhancer(p),
		mask:       NewMaskInspector(p),
	}
}

// Convert may return img itself, mutated, when no resize or enhancement is needed.
// A nil img yields a failed Verdict and a nil Image.
func (c *Converter) Convert(img *image.NRGBA, addHappyColor bool) Conversion {
	var conv Conversion
	if img == nil {
		conv.Verdict = failed(errNoImage)
		conv.Happy = conv.Verdict
		return conv
	}

	b := img.Bounds()
	if b.Dx() != c.params.CanvasSize || b.Dy() != c.params.CanvasSize {
		img = Resize(img, c.params.CanvasSize)
		conv.Resized = true
	}

	conv.Happy = c.classifier.Classify(img)
	if !conv.Happy.Accepted && addHappyColor {
		img = c.enhancer.Enhance(img)
		conv.Enhanced = true
		log.Printf("happy color adjusted")
	}

	in := c.mask.Repair(img)
	log.Printf("circle transparency repaired: pixels=%d", in.Repaired)

	conv.Image = in.Image
	conv.Repaired = in.Repaired
	conv.Verdict = model.Verdict{Accepted: true, Reason: MsgConverted}
	return conv
}

// ConvertFile converts inputPath and saves the PNG to OutputPath(outputDir, inputPath).
func (c *Converter) ConvertFile(inputPath, outputDir string, addHappyColor bool) model.Verdict {
	img, _, err := Open(inputPath)
	if err != nil {
		log.Printf("convert image to badge: %v", err)
		return failed(err)
	}
	conv := c.Convert(img, addHappyColor)
	if !conv.Verdict.Accepted {
		return conv.Verdict
	}
	if err := SavePNG(OutputPath(outputDir, inputPath), conv.Image); err != nil {
		log.Printf("convert image to badge: %v", err)
		return failed(err)
	}
	return conv.Verdict
}
