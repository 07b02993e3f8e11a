package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"happy-badge/internal/badge"
	"happy-badge/internal/config"
)

const msgNotPNG = "The image must be a PNG file."

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	flag.StringVar(&cfg.InputPath, "in", cfg.InputPath, "badge image to verify")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "prefix for the converted badge path")
	flag.BoolVar(&cfg.AddHappyColor, "happy", cfg.AddHappyColor, "boost colors when the image is not happy")
	flag.Parse()

	os.Exit(run(cfg, os.Stdout))
}

// run verifies cfg.InputPath and converts it when verification fails. It
// returns the process exit code.
func run(cfg config.Config, out io.Writer) int {
	img, format, err := badge.Open(cfg.InputPath)
	if err != nil || format != "png" {
		if err != nil {
			log.Printf("open badge: %v", err)
		}
		fmt.Fprintln(out, msgNotPNG)
		return 1
	}
	return runImage(cfg, img, out)
}

// runImage works on the decoded buffer only; the input file is not read again.
func runImage(cfg config.Config, img *image.NRGBA, out io.Writer) int {
	verdict := badge.NewVerifier(cfg.Badge).VerifyImage(img)
	fmt.Fprintln(out, verdict.Reason)
	if verdict.Accepted {
		return 0
	}

	conv := badge.NewConverter(cfg.Badge).Convert(img, cfg.AddHappyColor)
	if !conv.Verdict.Accepted {
		fmt.Fprintln(out, conv.Verdict.Reason)
		return 1
	}
	path := badge.OutputPath(cfg.OutputDir, cfg.InputPath)
	if err := badge.SavePNG(path, conv.Image); err != nil {
		log.Printf("convert image to badge: %v", err)
		fmt.Fprintln(out, err.Error())
		return 1
	}
	fmt.Fprintln(out, conv.Verdict.Reason)
	fmt.Fprintf(out, "Saved to %s\n", path)
	return 0
}
