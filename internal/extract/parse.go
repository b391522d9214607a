package extract

import (
	"encoding/json"
	"strings"

	"github.com/keedam-ai/quizgen/internal/quiz"
)

// ParseReply parses the raw model reply into question records. The reply may
// be wrapped in markdown code fences despite the prompt's instructions; those
// are stripped before the structural parse. Records failing validation are
// dropped and counted, not surfaced: partial extraction noise must not fail
// the whole batch.
func ParseReply(raw string) (Result, error) {
	text := StripFences(raw)
	if text == "" {
		return Result{}, &Error{Cause: "empty reply", Raw: raw}
	}

	var records []quiz.Question
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return Result{}, &Error{Cause: "reply is not a JSON array of questions", Raw: raw, Err: err}
	}

	res := Result{Questions: make([]quiz.Question, 0, len(records))}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			res.Dropped++
			continue
		}
		res.Questions = append(res.Questions, r)
	}
	return res, nil
}

// StripFences removes incidental ```json / ``` markers and surrounding
// whitespace from a model reply.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
