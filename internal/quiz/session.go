package quiz

import (
	"errors"
	"fmt"
)

// Phase is the closed set of session states. Transitions are handled
// exhaustively; an unknown phase is a programming error, not user input.
type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseAwaiting   Phase = "awaiting_upload"
	PhasePresenting Phase = "presenting"
	PhaseReviewing  Phase = "reviewing"
	PhaseFinished   Phase = "finished"
)

// ErrInvalidAction marks a rejected state transition. Precondition violations
// never panic; the session stays as it was.
var ErrInvalidAction = errors.New("invalid action")

// Session is one user's walk through a quiz. Answers maps question index to
// the selected option text; unanswered indices are simply absent.
type Session struct {
	ID        string         `json:"id"`
	QuizID    string         `json:"quiz_id"`
	Phase     Phase          `json:"phase"`
	Current   int            `json:"current_index"`
	Answers   map[int]string `json:"answers"`
	Questions []Question     `json:"-"` // loaded from the quiz, read-only
}

// NewSession starts an empty session: no questions yet, waiting for an upload.
func NewSession(id string) *Session {
	return &Session{ID: id, Phase: PhaseEmpty, Answers: map[int]string{}}
}

// BeginUpload records that a document was submitted and extraction is in
// flight. No other action is accepted until Load or Fail.
func (s *Session) BeginUpload() error {
	if s.Phase != PhaseEmpty {
		return fmt.Errorf("%w: upload in phase %s", ErrInvalidAction, s.Phase)
	}
	s.Phase = PhaseAwaiting
	return nil
}

// Load installs the extracted batch and presents the first question. With zero
// questions the session falls back to Empty so the user can retry the upload.
func (s *Session) Load(qz Quiz) error {
	if s.Phase != PhaseAwaiting {
		return fmt.Errorf("%w: load in phase %s", ErrInvalidAction, s.Phase)
	}
	if len(qz.Questions) == 0 {
		s.Phase = PhaseEmpty
		return errors.New("quiz has no questions")
	}
	s.QuizID = qz.ID
	s.Questions = qz.Questions
	s.Current = 0
	s.Answers = map[int]string{}
	s.Phase = PhasePresenting
	return nil
}

// Fail returns the session to Empty after a failed extraction, ready for a
// retry. Existing state is untouched beyond the phase.
func (s *Session) Fail() {
	if s.Phase == PhaseAwaiting {
		s.Phase = PhaseEmpty
	}
}

// SubmitAnswer stores the chosen option for the current question and moves to
// feedback. The index must be the current one and the option must be offered
// by the current question.
func (s *Session) SubmitAnswer(index int, option string) error {
	if s.Phase != PhasePresenting {
		return fmt.Errorf("%w: submit in phase %s", ErrInvalidAction, s.Phase)
	}
	if index != s.Current {
		return fmt.Errorf("%w: submit for question %d while presenting %d", ErrInvalidAction, index, s.Current)
	}
	if !contains(s.Questions[index].ValidOptions(), option) {
		return fmt.Errorf("%w: option not offered", ErrInvalidAction)
	}
	if s.Answers == nil {
		s.Answers = map[int]string{}
	}
	s.Answers[index] = option
	s.Phase = PhaseReviewing
	return nil
}

// Advance leaves feedback for the next question, or finishes after the last
// one. It never wraps past the end.
func (s *Session) Advance() error {
	if s.Phase != PhaseReviewing {
		return fmt.Errorf("%w: advance in phase %s", ErrInvalidAction, s.Phase)
	}
	if s.Current+1 < len(s.Questions) {
		s.Current++
		s.Phase = PhasePresenting
	} else {
		s.Phase = PhaseFinished
	}
	return nil
}

// JumpTo revisits question index in answerable form, from either Presenting or
// Reviewing. A previously stored answer is kept so the form can preselect it.
func (s *Session) JumpTo(index int) error {
	if s.Phase != PhasePresenting && s.Phase != PhaseReviewing {
		return fmt.Errorf("%w: jump in phase %s", ErrInvalidAction, s.Phase)
	}
	if index < 0 || index >= len(s.Questions) {
		return fmt.Errorf("%w: question index %d out of range", ErrInvalidAction, index)
	}
	s.Current = index
	s.Phase = PhasePresenting
	return nil
}

// Correct reports whether the stored answer for index matches the answer key
// exactly. Unanswered counts as incorrect.
func (s *Session) Correct(index int) bool {
	if index < 0 || index >= len(s.Questions) {
		return false
	}
	got, ok := s.Answers[index]
	return ok && got == s.Questions[index].Answer
}

// Score counts correct answers over every question. Valid only once finished.
func (s *Session) Score() (int, error) {
	if s.Phase != PhaseFinished {
		return 0, fmt.Errorf("%w: score in phase %s", ErrInvalidAction, s.Phase)
	}
	score := 0
	for i := range s.Questions {
		if s.Correct(i) {
			score++
		}
	}
	return score, nil
}

// Reset clears everything back to the initial state.
func (s *Session) Reset() {
	s.Phase = PhaseEmpty
	s.Current = 0
	s.Answers = map[int]string{}
	s.Questions = nil
	s.QuizID = ""
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
