package quiz

import "errors"

// Question is one extracted multiple-choice question. Enumeration markers
// (question numbers, option letters) are already stripped by extraction.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Quiz is an ordered, immutable-after-load batch of questions produced from
// one uploaded document.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	SourceKey string     `json:"source_key,omitempty"` // blob key of the uploaded document
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

var ErrInvalidRecord = errors.New("invalid question record")

// Validate enforces the record invariants: non-empty prompt, at least two
// distinct non-empty options, and the answer exactly matching one option.
func (q Question) Validate() error {
	if q.Question == "" {
		return ErrInvalidRecord
	}
	distinct := map[string]struct{}{}
	for _, o := range q.Options {
		if o != "" {
			distinct[o] = struct{}{}
		}
	}
	if len(distinct) < 2 {
		return ErrInvalidRecord
	}
	if _, ok := distinct[q.Answer]; !ok {
		return ErrInvalidRecord
	}
	return nil
}

// ValidOptions returns the options with extraction-noise empties filtered out.
// Filtering never affects scoring: correctness compares against Answer, a
// string, not an option index.
func (q Question) ValidOptions() []string {
	out := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
