package submission

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Descriptor identifies one raw submission blob in remote storage.
type Descriptor struct {
	Name         string
	LastModified time.Time
	Size         int64
}

// RawSubmission is one fetched text blob before parsing.
type RawSubmission struct {
	Source       string
	Body         []byte
	LastModified time.Time
}

// Record is the per-source processing watermark. An unchanged ContentHash on
// re-run means the submission can be skipped; a changed hash triggers a full
// recompute that overwrites the derived predictions.
type Record struct {
	Source       string
	ContentHash  string
	LastModified time.Time
	ProcessedAt  time.Time
}

// Hash returns the content watermark for a submission body.
func Hash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
