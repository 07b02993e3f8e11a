package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"happy-badge/internal/badge"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	DataPath           string
	InputPath          string
	OutputDir          string
	MaxUploadSizeBytes int64
	RecordLimit        int
	AddHappyColor      bool
	Badge              badge.Params
}

func Load() (Config, error) {
	_ = godotenv.Load()

	def := badge.DefaultParams()
	hues, err := ParseHueRanges(getEnv("HAPPY_HUE_RANGES", FormatHueRanges(def.HappyHues)))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DataPath:           getEnv("DATA_PATH", "./data/badges.json"),
		InputPath:          getEnv("BADGE_INPUT_PATH", "testImage2.png"),
		OutputDir:          getEnv("BADGE_OUTPUT_DIR", "./output/"),
		MaxUploadSizeBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 8*1024*1024),
		RecordLimit:        getEnvInt("RECORD_LIMIT", 200),
		AddHappyColor:      getEnvBool("ADD_HAPPY_COLOR", true),
		Badge: badge.Params{
			CanvasSize:        getEnvInt("BADGE_CANVAS_SIZE", def.CanvasSize),
			HappyHues:         hues,
			RawHueCompare:     getEnvBool("HAPPY_RAW_HUE_COMPARE", def.RawHueCompare),
			MinSaturation:     getEnvUint8("HAPPY_MIN_SATURATION", def.MinSaturation),
			MinValue:          getEnvUint8("HAPPY_MIN_VALUE", def.MinValue),
			HappyThresholdPct: getEnvFloat("HAPPY_THRESHOLD_PERCENT", def.HappyThresholdPct),
			HueRotation:       getEnvInt("ENHANCE_HUE_ROTATION", def.HueRotation),
			SaturationGain:    getEnvFloat("ENHANCE_SATURATION_GAIN", def.SaturationGain),
			ValueGain:         getEnvFloat("ENHANCE_VALUE_GAIN", def.ValueGain),
			RepairPasses:      getEnvInt("MASK_REPAIR_PASSES", def.RepairPasses),
			ColorThreshold:    getEnvInt("BADGE_COLOR_THRESHOLD", def.ColorThreshold),
		},
	}

	if cfg.MaxUploadSizeBytes <= 0 {
		return Config{}, errors.New("max upload size must be > 0")
	}
	if cfg.RecordLimit <= 0 {
		return Config{}, errors.New("record limit must be > 0")
	}
	if err := cfg.Badge.Validate(); err != nil {
		return Config{}, fmt.Errorf("badge params: %w", err)
	}

	return cfg, nil
}

// ParseHueRanges reads a comma separated list of degree ranges such as
// "20-50,330-360".
func ParseHueRanges(v string) ([]badge.HueRange, error) {
	out := make([]badge.HueRange, 0, 2)
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("hue range %q: want start-end", part)
		}
		start, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("hue range %q: %w", part, err)
		}
		end, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("hue range %q: %w", part, err)
		}
		if start < 0 || end > 360 || start > end {
			return nil, fmt.Errorf("hue range %q: want 0 <= start <= end <= 360", part)
		}
		out = append(out, badge.HueRange{Start: start, End: end})
	}
	if len(out) == 0 {
		return nil, errors.New("no hue ranges given")
	}
	return out, nil
}

func FormatHueRanges(ranges []badge.HueRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvUint8(key string, fallback uint8) uint8 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return fallback
	}
	return uint8(n)
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
