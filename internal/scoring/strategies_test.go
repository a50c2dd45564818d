package scoring

import (
	"testing"

	"github.com/bandnine/ielts-platform/internal/exam"
)

func mcqQuestion(typ exam.QuestionType, correct ...string) exam.Question {
	flagged := map[string]bool{}
	for _, id := range correct {
		flagged[id] = true
	}
	return exam.Question{
		Type: typ,
		Options: []exam.Option{
			{ID: "a", Text: "Option A", Correct: flagged["a"]},
			{ID: "b", Text: "Option B", Correct: flagged["b"]},
			{ID: "c", Text: "Option C", Correct: flagged["c"]},
		},
	}
}

func TestMCQSingle(t *testing.T) {
	g := NewGrader()
	q := mcqQuestion(exam.TypeMCQSingle, "b")

	tests := []struct {
		name   string
		answer any
		want   bool
	}{
		{"match by id", "b", true},
		{"match by id case-insensitive", "  B ", true},
		{"match by option text", "option b", true},
		{"wrong option", "a", false},
		{"no answer", nil, false},
		{"empty answer", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Score(q, tt.answer); got.Correct != tt.want {
				t.Errorf("Score(%v) correct = %v, want %v", tt.answer, got.Correct, tt.want)
			}
		})
	}
}

func TestMCQSingleAnswerKeyFallback(t *testing.T) {
	g := NewGrader()
	q := mcqQuestion(exam.TypeMCQSingle) // nothing flagged
	q.CorrectAnswer = "c"

	if got := g.Score(q, "C"); !got.Correct {
		t.Errorf("answer-key fallback failed: %+v", got)
	}

	q.CorrectAnswer = nil
	got := g.Score(q, "a")
	if got.Correct {
		t.Error("unscorable question counted correct")
	}
	if got.Feedback == "" {
		t.Error("missing-key case should carry explanatory feedback")
	}
}

func TestMCQMultiple(t *testing.T) {
	g := NewGrader()
	q := mcqQuestion(exam.TypeMCQMultiple, "a", "c")

	tests := []struct {
		name   string
		answer any
		want   bool
	}{
		{"exact set", []any{"a", "c"}, true},
		{"order independent", []any{"c", "a"}, true},
		{"case and whitespace", []any{" C ", "A"}, true},
		{"subset", []any{"a"}, false},
		{"superset", []any{"a", "b", "c"}, false},
		{"disjoint", []any{"b"}, false},
		{"scalar when set expected", "a", false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Score(q, tt.answer); got.Correct != tt.want {
				t.Errorf("Score(%v) correct = %v, want %v", tt.answer, got.Correct, tt.want)
			}
		})
	}
}

func TestTrueFalseNG(t *testing.T) {
	g := NewGrader()
	q := exam.Question{Type: exam.TypeTrueFalseNG, CorrectAnswer: "Not Given"}

	if got := g.Score(q, "  not given "); !got.Correct {
		t.Errorf("normalized compare failed: %+v", got)
	}
	if got := g.Score(q, "True"); got.Correct {
		t.Error("wrong verdict accepted")
	}
	if got := g.Score(q, nil); got.Correct {
		t.Error("nil answer accepted")
	}
}

func TestFillBlankFamily(t *testing.T) {
	g := NewGrader()
	// All completion types share one comparator.
	for _, typ := range []exam.QuestionType{
		exam.TypeFillGaps, exam.TypeFillGapsShort, exam.TypeSentenceCompletion,
		exam.TypeSummaryCompletion, exam.TypeFormCompletion, exam.TypeNoteCompletion,
		exam.TypeTableCompletion, exam.TypeFlowchartCompletion, exam.TypeMapLabelling,
	} {
		q := exam.Question{Type: typ, CorrectAnswer: "library"}
		if got := g.Score(q, " Library "); !got.Correct {
			t.Errorf("%s: normalized match failed", typ)
		}
		if got := g.Score(q, "museum"); got.Correct {
			t.Errorf("%s: wrong answer accepted", typ)
		}
	}
}

func TestFillBlankAcceptableList(t *testing.T) {
	g := NewGrader()
	q := exam.Question{
		Type:          exam.TypeSentenceCompletion,
		CorrectAnswer: []any{"1990", "the 1990s"},
	}
	for _, good := range []string{"1990", "The 1990s"} {
		if got := g.Score(q, good); !got.Correct {
			t.Errorf("acceptable answer %q rejected", good)
		}
	}
	if got := g.Score(q, "1991"); got.Correct {
		t.Error("unlisted answer accepted")
	}

	q.CorrectAnswer = nil
	if got := g.Score(q, "anything"); got.Correct {
		t.Error("question without key counted correct")
	}
}

func TestMatching(t *testing.T) {
	g := NewGrader()
	q := exam.Question{
		Type:          exam.TypeMatchingHeadings,
		CorrectAnswer: map[string]any{"1": "iv", "2": "ii"},
	}

	if got := g.Score(q, map[string]any{"2": " II ", "1": "iv"}); !got.Correct {
		t.Errorf("map compare failed: %+v", got)
	}
	if got := g.Score(q, map[string]any{"1": "iv"}); got.Correct {
		t.Error("partial map accepted")
	}
	if got := g.Score(q, map[string]any{"1": "iv", "2": "iii"}); got.Correct {
		t.Error("wrong pairing accepted")
	}

	// Scalar fallback when the key is not a map.
	q2 := exam.Question{Type: exam.TypeMatching, CorrectAnswer: "B"}
	if got := g.Score(q2, " b "); !got.Correct {
		t.Errorf("scalar fallback failed: %+v", got)
	}
}

func TestWritingNeedsManualReview(t *testing.T) {
	g := NewGrader()
	for _, typ := range []exam.QuestionType{exam.TypeWritingTask1, exam.TypeWritingTask2} {
		got := g.Score(exam.Question{Type: typ}, "My essay text.")
		if !got.NeedsManualReview || got.Correct {
			t.Errorf("%s: outcome = %+v, want manual review", typ, got)
		}
		if got.Feedback == "" {
			t.Errorf("%s: missing reviewer feedback", typ)
		}
	}
}

func TestUnrecognizedType(t *testing.T) {
	g := NewGrader()
	got := g.Score(exam.Question{Type: "essay_outline"}, "x")
	if got.Correct || got.NeedsManualReview {
		t.Errorf("unrecognized type should be incorrect, got %+v", got)
	}
	if got.Feedback == "" {
		t.Error("unrecognized type should explain itself")
	}
}
