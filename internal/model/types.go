package model

import "time"

// Verdict is the accept/reject outcome of a badge operation. Err carries the
// failure category for errors.Is checks and is never serialized.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

type Operation string

const (
	OpVerify  Operation = "verify"
	OpConvert Operation = "convert"
)

type BadgeRecord struct {
	ID             string    `json:"id"`
	Operation      Operation `json:"operation"`
	Source         string    `json:"source"`
	Format         string    `json:"format"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Verdict        Verdict   `json:"verdict"`
	Happy          *Verdict  `json:"happy,omitempty"`
	Resized        bool      `json:"resized"`
	Enhanced       bool      `json:"enhanced"`
	RepairedPixels int       `json:"repaired_pixels"`
	OutputPath     string    `json:"output_path,omitempty"`
	CreatedAt      int64     `json:"created_at_unix_ms"`
}

type StoredState struct {
	Records           []BadgeRecord `json:"records"`
	LastUpdatedUnixMS int64         `json:"last_updated_unix_ms"`
	CreatedAt         time.Time     `json:"created_at"`
}

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt int64       `json:"created_at_unix_ms"`
}
