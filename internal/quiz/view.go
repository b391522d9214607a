package quiz

// View is the per-phase payload handed to the presentation layer: exactly the
// data needed to render the current screen, nothing more. Answer keys for
// questions not yet reviewed are never included.
type View struct {
	Phase Phase `json:"phase"`

	// Presenting / Reviewing
	Index    int      `json:"index,omitempty"`
	Total    int      `json:"total,omitempty"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
	Selected string   `json:"selected,omitempty"` // previously stored answer, preselects the form

	// Reviewing only
	Correct       *bool  `json:"correct,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"` // revealed with the verdict

	// Finished only
	Score  *int         `json:"score,omitempty"`
	Review []ReviewItem `json:"review,omitempty"`
}

// ReviewItem is one line of the end-of-quiz answer review.
type ReviewItem struct {
	Question string `json:"question"`
	Selected string `json:"selected"` // empty when the question was skipped
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

// Render builds the view for the session's current phase.
func (s *Session) Render() View {
	v := View{Phase: s.Phase, Total: len(s.Questions)}
	switch s.Phase {
	case PhaseEmpty, PhaseAwaiting:
		v.Total = 0
	case PhasePresenting:
		q := s.Questions[s.Current]
		v.Index = s.Current
		v.Question = q.Question
		v.Options = q.ValidOptions()
		v.Selected = s.Answers[s.Current]
	case PhaseReviewing:
		q := s.Questions[s.Current]
		v.Index = s.Current
		v.Question = q.Question
		v.Options = q.ValidOptions()
		v.Selected = s.Answers[s.Current]
		ok := s.Correct(s.Current)
		v.Correct = &ok
		v.CorrectAnswer = q.Answer
	case PhaseFinished:
		score := 0
		review := make([]ReviewItem, 0, len(s.Questions))
		for i, q := range s.Questions {
			item := ReviewItem{
				Question: q.Question,
				Selected: s.Answers[i],
				Answer:   q.Answer,
				Correct:  s.Correct(i),
			}
			if item.Correct {
				score++
			}
			review = append(review, item)
		}
		v.Score = &score
		v.Review = review
	}
	return v
}
