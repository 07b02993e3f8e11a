package badge

import (
	"image"
	"io"
	"log"

	"happy-badge/internal/model"
)

// Verifier rejects images that are not already valid badges. It never
// modifies the image.
type Verifier struct {
	params     Params
	mask       *MaskInspector
	classifier *Classifier
}

func NewVerifier(p Params) *Verifier {
	return &Verifier{params: p, mask: NewMaskInspector(p), classifier: NewClassifier(p)}
}

func (v *Verifier) Verify(r io.Reader) model.Verdict {
	img, _, err := Decode(r)
	if err != nil {
		log.Printf("verify badge: %v", err)
		return failed(err)
	}
	return v.VerifyImage(img)
}

func (v *Verifier) VerifyFile(path string) model.Verdict {
	img, _, err := Open(path)
	if err != nil {
		log.Printf("verify badge: %v", err)
		return failed(err)
	}
	return v.VerifyImage(img)
}

// VerifyImage runs the size, mask and color checks in order and stops at the
// first failure.
func (v *Verifier) VerifyImage(img *image.NRGBA) model.Verdict {
	if img == nil {
		return failed(errNoImage)
	}
	b := img.Bounds()
	if b.Dx() != v.params.CanvasSize || b.Dy() != v.params.CanvasSize {
		return model.Verdict{Accepted: false, Reason: v.params.sizeMessage(), Err: ErrDimension}
	}
	if in := v.mask.Check(img); !in.OK {
		return model.Verdict{Accepted: false, Reason: in.Message, Err: in.Err}
	}
	if happy := v.classifier.Classify(img); !happy.Accepted {
		return happy
	}
	return model.Verdict{Accepted: true, Reason: MsgVerified}
}

func failed(err error) model.Verdict {
	return model.Verdict{Accepted: false, Reason: err.Error(), Err: err}
}
