package badge

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered format (PNG, JPEG, GIF, BMP, TIFF, WebP) and
// returns a non-premultiplied RGBA copy along with the format name.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return imaging.Clone(img), format, nil
}

func Open(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// Resize scales img to an n×n canvas with a Lanczos filter.
func Resize(img image.Image, n int) *image.NRGBA {
	return imaging.Resize(img, n, n, imaging.Lanczos)
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// SavePNG writes img as PNG whatever the extension of path, creating parent
// directories as needed.
func SavePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile stores already encoded badge bytes at path, creating parent
// directories as needed.
func WriteFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// OutputPath is the literal concatenation of the output directory and the
// input path; it is not a path join, so outputDir needs its own separator.
func OutputPath(outputDir, inputPath string) string {
	return outputDir + inputPath
}
