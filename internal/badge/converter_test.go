package badge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertValidBadgeIsStable(t *testing.T) {
	img := solid(512, 512, orange)
	img.SetNRGBA(0, 0, transparent)
	img.SetNRGBA(511, 511, transparent)
	orig := append([]uint8(nil), img.Pix...)

	conv := NewConverter(DefaultParams()).Convert(img, true)
	if !conv.Verdict.Accepted || conv.Verdict.Reason != MsgConverted {
		t.Fatalf("unexpected verdict: %+v", conv.Verdict)
	}
	if conv.Resized || conv.Enhanced || conv.Repaired != 0 {
		t.Fatalf("unexpected conversion: resized=%v enhanced=%v repaired=%d", conv.Resized, conv.Enhanced, conv.Repaired)
	}
	if !bytes.Equal(conv.Image.Pix, orig) {
		t.Fatalf("expected pixels to be unchanged")
	}
}

func TestConvertResizesToCanvas(t *testing.T) {
	conv := NewConverter(DefaultParams()).Convert(solid(100, 80, orange), true)
	if !conv.Resized {
		t.Fatalf("expected resize")
	}
	if b := conv.Image.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestConvertEnhancesUnhappyImage(t *testing.T) {
	c := NewConverter(DefaultParams())

	conv := c.Convert(solid(512, 512, blue), true)
	if conv.Happy.Accepted || !conv.Enhanced {
		t.Fatalf("expected enhancement: %+v", conv.Happy)
	}
	if conv.Image.NRGBAAt(10, 10) == blue {
		t.Fatalf("expected enhanced pixels to differ")
	}

	conv = c.Convert(solid(512, 512, blue), false)
	if conv.Enhanced {
		t.Fatalf("unexpected enhancement")
	}
	if got := conv.Image.NRGBAAt(10, 10); got != blue {
		t.Fatalf("unexpected pixel: %v", got)
	}
}

func TestConvertRepairsMaskAfterEnhance(t *testing.T) {
	img := solid(512, 512, blue)
	placeNeighborhood(img, 256, 256)
	img.SetNRGBA(0, 0, transparent)

	conv := NewConverter(DefaultParams()).Convert(img, true)
	if conv.Repaired != 1 {
		t.Fatalf("unexpected repaired count: %d", conv.Repaired)
	}
	if got := conv.Image.NRGBAAt(256, 256); got.A != 255 {
		t.Fatalf("expected opaque center: %v", got)
	}
	if got := conv.Image.NRGBAAt(0, 0); got.A != 0 {
		t.Fatalf("expected corner to stay transparent: %v", got)
	}
	if v := NewVerifier(DefaultParams()).VerifyImage(conv.Image); v.Reason == MsgMaskViolation {
		t.Fatalf("converted badge still fails the mask: %+v", v)
	}
}

func TestConvertFileWritesConcatenatedPath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	if err := os.WriteFile(in, pngBytes(t, solid(64, 64, orange)), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	outDir := filepath.Join(dir, "output") + "/"

	v := NewConverter(DefaultParams()).ConvertFile(in, outDir, true)
	if !v.Accepted || v.Reason != MsgConverted {
		t.Fatalf("unexpected verdict: %+v", v)
	}
	img, format, err := Open(outDir + in)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if format != "png" {
		t.Fatalf("unexpected format: %s", format)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	v := NewConverter(DefaultParams()).ConvertFile(filepath.Join(t.TempDir(), "nope.png"), t.TempDir()+"/", true)
	if v.Accepted || !errors.Is(v.Err, ErrDecode) {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestOutputPathIsConcatenation(t *testing.T) {
	if got := OutputPath("./output/", "testImage2.png"); got != "./output/testImage2.png" {
		t.Fatalf("unexpected path: %s", got)
	}
	if got := OutputPath("out", "a.png"); got != "outa.png" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestConvertNilImage(t *testing.T) {
	conv := NewConverter(DefaultParams()).Convert(nil, true)
	if conv.Verdict.Accepted || !errors.Is(conv.Verdict.Err, ErrDecode) || conv.Image != nil {
		t.Fatalf("unexpected conversion: %+v", conv)
	}
}
