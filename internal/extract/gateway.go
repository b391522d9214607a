// Package extract turns an uploaded quiz document into question records by
// delegating to an external model with native document understanding. No local
// layout analysis happens here: the document goes out as-is, a JSON array
// comes back.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/keedam-ai/quizgen/internal/quiz"
)

// ErrNoCredential is a startup-time configuration error: extraction is never
// attempted without a service credential.
var ErrNoCredential = errors.New("extraction credential not configured")

// Result is a successful extraction: the surviving records plus how many were
// discarded by validation. Per-record failures stay silent beyond the count.
type Result struct {
	Questions []quiz.Question
	Dropped   int
}

// Extractor is the outbound boundary to the extraction service. A single call,
// no retries; the context bounds its duration.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (Result, error)
}

// Error carries a human-readable cause and, when available, the raw reply text
// for diagnostics.
type Error struct {
	Cause string
	Raw   string // raw reply, "" when the call itself failed
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Cause, e.Err)
	}
	return "extraction failed: " + e.Cause
}

func (e *Error) Unwrap() error { return e.Err }
