package quiz_test

import (
	"errors"
	"testing"

	"github.com/keedam-ai/quizgen/internal/quiz"
)

func twoQuestionQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID: "qz-1",
		Questions: []quiz.Question{
			{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
			{Question: "capital of France?", Options: []string{"Paris", "Lyon", "Nice"}, Answer: "Paris"},
		},
	}
}

func startSession(t *testing.T, qz quiz.Quiz) *quiz.Session {
	t.Helper()
	s := quiz.NewSession("s-1")
	if err := s.BeginUpload(); err != nil {
		t.Fatalf("begin upload: %v", err)
	}
	if err := s.Load(qz); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestFullCorrectRun(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	for i, q := range s.Questions {
		if err := s.SubmitAnswer(i, q.Answer); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if s.Phase != quiz.PhaseReviewing {
			t.Fatalf("phase after submit = %s, want reviewing", s.Phase)
		}
		if !s.Correct(i) {
			t.Fatalf("question %d graded incorrect", i)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if s.Phase != quiz.PhaseFinished {
		t.Fatalf("phase = %s, want finished", s.Phase)
	}
	score, err := s.Score()
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != len(s.Questions) {
		t.Fatalf("score = %d, want %d", score, len(s.Questions))
	}
}

func TestSingleQuestionScenarios(t *testing.T) {
	qz := quiz.Quiz{ID: "qz", Questions: []quiz.Question{
		{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
	}}

	t.Run("correct", func(t *testing.T) {
		s := startSession(t, qz)
		if err := s.SubmitAnswer(0, "4"); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !s.Correct(0) {
			t.Fatal("want correct")
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if s.Phase != quiz.PhaseFinished {
			t.Fatalf("phase = %s, want finished", s.Phase)
		}
		if score, _ := s.Score(); score != 1 {
			t.Fatalf("score = %d, want 1", score)
		}
	})

	t.Run("incorrect", func(t *testing.T) {
		s := startSession(t, qz)
		if err := s.SubmitAnswer(0, "3"); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if s.Correct(0) {
			t.Fatal("want incorrect")
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if score, _ := s.Score(); score != 0 {
			t.Fatalf("score = %d, want 0", score)
		}
	})
}

func TestUnansweredCountsIncorrect(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	// answer only the first, skip to the end via jump+submit+advance path
	if err := s.SubmitAnswer(0, "4"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.SubmitAnswer(1, "Lyon"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	score, err := s.Score()
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 1 {
		t.Fatalf("score = %d, want 1", score)
	}
}

func TestJumpIdempotent(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	if err := s.SubmitAnswer(0, "4"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}
	before := len(s.Answers)
	if err := s.JumpTo(1); err != nil {
		t.Fatalf("second jump: %v", err)
	}
	if s.Current != 1 || s.Phase != quiz.PhasePresenting {
		t.Fatalf("current=%d phase=%s, want 1/presenting", s.Current, s.Phase)
	}
	if len(s.Answers) != before || s.Answers[0] != "4" {
		t.Fatalf("answers changed by jump: %v", s.Answers)
	}
}

func TestJumpFromReviewingPreselectsStoredAnswer(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	if err := s.SubmitAnswer(0, "3"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// reviewing question 0; jumping back re-enters it answerable
	if err := s.JumpTo(0); err != nil {
		t.Fatalf("jump: %v", err)
	}
	v := s.Render()
	if v.Phase != quiz.PhasePresenting {
		t.Fatalf("phase = %s, want presenting", v.Phase)
	}
	if v.Selected != "3" {
		t.Fatalf("selected = %q, want preselected prior answer", v.Selected)
	}
	// the stored answer can be changed
	if err := s.SubmitAnswer(0, "4"); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if s.Answers[0] != "4" {
		t.Fatalf("answer = %q, want overwritten", s.Answers[0])
	}
}

func TestAdvanceBoundaryNeverWraps(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	if err := s.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if err := s.SubmitAnswer(1, "Paris"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Phase != quiz.PhaseFinished {
		t.Fatalf("phase = %s, want finished", s.Phase)
	}
	if s.Current != 1 {
		t.Fatalf("current = %d, must not move past last index", s.Current)
	}
	if err := s.Advance(); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("advance past finished = %v, want ErrInvalidAction", err)
	}
}

func TestPreconditionViolationsRefused(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())

	if err := s.SubmitAnswer(1, "Paris"); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("submit non-current index = %v, want ErrInvalidAction", err)
	}
	if err := s.SubmitAnswer(0, "5"); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("submit unknown option = %v, want ErrInvalidAction", err)
	}
	if err := s.Advance(); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("advance while presenting = %v, want ErrInvalidAction", err)
	}
	if err := s.JumpTo(5); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("jump out of range = %v, want ErrInvalidAction", err)
	}
	if err := s.JumpTo(-1); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("jump negative = %v, want ErrInvalidAction", err)
	}
	if _, err := s.Score(); !errors.Is(err, quiz.ErrInvalidAction) {
		t.Fatalf("score before finished = %v, want ErrInvalidAction", err)
	}
	// nothing moved
	if s.Phase != quiz.PhasePresenting || s.Current != 0 || len(s.Answers) != 0 {
		t.Fatalf("session mutated by refused actions: phase=%s current=%d answers=%v", s.Phase, s.Current, s.Answers)
	}
}

func TestLoadEmptyQuizFallsBack(t *testing.T) {
	s := quiz.NewSession("s-empty")
	if err := s.BeginUpload(); err != nil {
		t.Fatalf("begin upload: %v", err)
	}
	if err := s.Load(quiz.Quiz{ID: "qz"}); err == nil {
		t.Fatal("load of empty quiz must fail")
	}
	if s.Phase != quiz.PhaseEmpty {
		t.Fatalf("phase = %s, want empty for retry", s.Phase)
	}
	// retry is possible
	if err := s.BeginUpload(); err != nil {
		t.Fatalf("retry upload: %v", err)
	}
}

func TestReset(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	if err := s.SubmitAnswer(0, "4"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	s.Reset()
	if s.Phase != quiz.PhaseEmpty || len(s.Answers) != 0 || s.Questions != nil || s.QuizID != "" {
		t.Fatalf("reset incomplete: %+v", s)
	}
}

func TestFinishedViewReview(t *testing.T) {
	s := startSession(t, twoQuestionQuiz())
	if err := s.SubmitAnswer(0, "4"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.SubmitAnswer(1, "Lyon"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	v := s.Render()
	if v.Score == nil || *v.Score != 1 {
		t.Fatalf("view score = %v, want 1", v.Score)
	}
	if len(v.Review) != 2 {
		t.Fatalf("review items = %d, want 2", len(v.Review))
	}
	if !v.Review[0].Correct || v.Review[1].Correct {
		t.Fatalf("review verdicts wrong: %+v", v.Review)
	}
	if v.Review[1].Answer != "Paris" {
		t.Fatalf("review answer = %q, want Paris", v.Review[1].Answer)
	}
}
