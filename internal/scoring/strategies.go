package scoring

import (
	"github.com/bandnine/ielts-platform/internal/exam"
)

// Outcome is one comparator's verdict on a single question.
type Outcome struct {
	Correct           bool
	NeedsManualReview bool
	Feedback          string
}

// Strategy scores one question type.
type Strategy interface {
	Score(q exam.Question, answer any) Outcome
}

// Grader routes by question type to the registered Strategy. The strategy
// table covers the closed set of 18 types; an unrecognized type yields a
// default incorrect outcome so totals stay intact, never an error.
type Grader struct {
	strategies map[exam.QuestionType]Strategy
}

// NewGrader installs the built-in strategies for all recognized types.
func NewGrader() *Grader {
	fill := fillBlankStrategy{}
	match := matchingStrategy{}
	return &Grader{strategies: map[exam.QuestionType]Strategy{
		exam.TypeMCQSingle:           mcqSingleStrategy{},
		exam.TypeMCQMultiple:         mcqMultipleStrategy{},
		exam.TypeTrueFalseNG:         trueFalseNGStrategy{},
		exam.TypeFillGaps:            fill,
		exam.TypeFillGapsShort:       fill,
		exam.TypeSentenceCompletion:  fill,
		exam.TypeSummaryCompletion:   fill,
		exam.TypeFormCompletion:      fill,
		exam.TypeNoteCompletion:      fill,
		exam.TypeTableCompletion:     fill,
		exam.TypeFlowchartCompletion: fill,
		exam.TypeMapLabelling:        fill,
		exam.TypeMatching:            match,
		exam.TypeMatchingHeadings:    match,
		exam.TypeMatchingFeatures:    match,
		exam.TypeMatchingEndings:     match,
		exam.TypeWritingTask1:        writingStrategy{},
		exam.TypeWritingTask2:        writingStrategy{},
	}}
}

func (g *Grader) Score(q exam.Question, answer any) Outcome {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Outcome{Feedback: "unrecognized question type: " + string(q.Type)}
	}
	return s.Score(q, answer)
}

// writingStrategy never auto-scores; writing tasks go to a human grader.
type writingStrategy struct{}

func (writingStrategy) Score(exam.Question, any) Outcome {
	return Outcome{
		NeedsManualReview: true,
		Feedback:          "Writing tasks require manual review by instructor.",
	}
}

type mcqSingleStrategy struct{}

func (mcqSingleStrategy) Score(q exam.Question, answer any) Outcome {
	if len(q.Options) == 0 || Normalize(answer) == "" {
		return Outcome{}
	}
	var correct *exam.Option
	for i := range q.Options {
		if q.Options[i].Correct {
			correct = &q.Options[i]
			break
		}
	}
	if correct == nil {
		// No option is flagged correct; fall back to the answer key. With
		// no key either the comparison cannot succeed, so say so instead
		// of failing silently.
		if q.CorrectAnswer == nil {
			return Outcome{Feedback: "no correct option flagged and no answer key on question"}
		}
		return Outcome{Correct: Normalize(answer) == Normalize(q.CorrectAnswer)}
	}
	got := Normalize(answer)
	return Outcome{Correct: got == Normalize(correct.ID) || got == Normalize(correct.Text)}
}

type mcqMultipleStrategy struct{}

func (mcqMultipleStrategy) Score(q exam.Question, answer any) Outcome {
	if len(q.Options) == 0 || answer == nil {
		return Outcome{}
	}
	var correctIDs []string
	for _, opt := range q.Options {
		if opt.Correct {
			correctIDs = append(correctIDs, Normalize(opt.ID))
		}
	}
	if len(correctIDs) == 0 {
		return Outcome{}
	}
	given := map[string]bool{}
	list := asList(answer)
	for _, v := range list {
		given[Normalize(v)] = true
	}
	// Equal membership and size, order-independent. A subset or superset
	// of the correct ids is wrong.
	if len(list) != len(correctIDs) {
		return Outcome{}
	}
	for _, id := range correctIDs {
		if !given[id] {
			return Outcome{}
		}
	}
	return Outcome{Correct: true}
}

type trueFalseNGStrategy struct{}

func (trueFalseNGStrategy) Score(q exam.Question, answer any) Outcome {
	got := Normalize(answer)
	if got == "" {
		return Outcome{}
	}
	return Outcome{Correct: got == Normalize(q.CorrectAnswer)}
}

// fillBlankStrategy covers the completion family and map labelling: the
// answer key may be a single string or a list of acceptable strings.
type fillBlankStrategy struct{}

func (fillBlankStrategy) Score(q exam.Question, answer any) Outcome {
	if q.CorrectAnswer == nil {
		return Outcome{}
	}
	got := Normalize(answer)
	if got == "" {
		return Outcome{}
	}
	for _, acceptable := range asList(q.CorrectAnswer) {
		if Normalize(acceptable) == got {
			return Outcome{Correct: true}
		}
	}
	return Outcome{}
}

// matchingStrategy compares structured key->value answers when both sides
// are maps, otherwise falls back to normalized string equality.
type matchingStrategy struct{}

func (matchingStrategy) Score(q exam.Question, answer any) Outcome {
	if answer == nil || q.CorrectAnswer == nil {
		return Outcome{}
	}
	gotMap, gok := asMap(answer)
	wantMap, wok := asMap(q.CorrectAnswer)
	if gok && wok {
		return Outcome{Correct: mapsEqual(normalizeMap(gotMap), normalizeMap(wantMap))}
	}
	return Outcome{Correct: Normalize(answer) == Normalize(q.CorrectAnswer)}
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
