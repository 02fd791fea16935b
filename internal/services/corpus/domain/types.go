// Package domain holds the corpus record model and the ports around it
package domain

import (
	"fmt"
	"time"

	"sttsynth/internal/core/version"
)

// Split names one corpus subset
type Split string

const (
	// SplitTrain is the labeled training subset
	SplitTrain Split = "train"
	// SplitDev is the labeled development subset
	SplitDev Split = "dev"
	// SplitTest is the evaluation subset; labels are withheld
	SplitTest Split = "test"
)

// Valid reports whether s is a known split
func (s Split) Valid() bool {
	switch s {
	case SplitTrain, SplitDev, SplitTest:
		return true
	}
	return false
}

// Withheld reports whether records of s are written without entities
func (s Split) Withheld() bool { return s == SplitTest }

// EntitySpan is one annotation; offsets count characters, end exclusive
type EntitySpan struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Label     string `json:"label"`
	Canonical string `json:"canonical,omitempty"`
}

// Record is one synthetic utterance; Entities is never nil so it encodes as []
type Record struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Entities []EntitySpan `json:"entities"`
}

// RecordID formats index as utt_0042; wider indices print in full
func RecordID(index int) string { return fmt.Sprintf("utt_%04d", index) }

// SplitSpec asks for Count records with ids from StartID
type SplitSpec struct {
	Split   Split `json:"split" validate:"required,oneof=train dev test"`
	Count   int   `json:"count" validate:"min=0"`
	StartID int   `json:"start_id" validate:"min=0"`
}

// DefaultSplits is 800 train at 0, 150 dev at 1000 and 100 test at 2000
func DefaultSplits() []SplitSpec {
	return []SplitSpec{
		{Split: SplitTrain, Count: 800, StartID: 0},
		{Split: SplitDev, Count: 150, StartID: 1000},
		{Split: SplitTest, Count: 100, StartID: 2000},
	}
}

// Batch is one split handed to every sink
type Batch struct {
	RunID   string
	Split   Split
	Records []Record
}

// SplitSummary describes one written split
type SplitSummary struct {
	Split   Split `json:"split"`
	Count   int   `json:"count"`
	StartID int   `json:"start_id"`
	Spans   int   `json:"spans"`
}

// Manifest describes a finished run
type Manifest struct {
	RunID            string            `json:"run_id"`
	Seed             uint64            `json:"seed"`
	NoisePolicy      string            `json:"noise_policy"`
	NoiseProbability float64           `json:"noise_probability"`
	EmitCanonical    bool              `json:"emit_canonical"`
	PackVersion      int               `json:"pack_version"`
	Templates        int               `json:"templates"`
	Splits           []SplitSummary    `json:"splits"`
	Sinks            []string          `json:"sinks"`
	Build            version.BuildInfo `json:"build"`
	CreatedAt        time.Time         `json:"created_at"`
}

// RunInput configures one corpus run
type RunInput struct {
	Seed   uint64      `validate:"-"`
	Splits []SplitSpec `validate:"required,min=1,dive"`
}

// PreviewInput is the body of a preview request
type PreviewInput struct {
	Seed    uint64 `json:"seed"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=50"`
	Split   Split  `json:"split" validate:"omitempty,oneof=train dev test"`
	StartID int    `json:"start_id" validate:"min=0"`
}

// LabelInfo describes one entity label
type LabelInfo struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}
