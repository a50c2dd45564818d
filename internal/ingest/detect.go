package ingest

import (
	"strings"

	"github.com/bandnine/ielts-platform/internal/exam"
)

// pathTypeTable maps path substrings from ZIP packages to question types.
// Order matters: some keys are substrings of others ("Fill in the gaps
// short" must be checked before "Fill in the gaps"), so this is a slice,
// not a map. First match wins.
var pathTypeTable = []struct {
	key string
	typ exam.QuestionType
}{
	{"Fill in the gaps short", exam.TypeFillGapsShort},
	{"Fill in the gaps", exam.TypeFillGaps},
	{"Multiple Choice (one answer)", exam.TypeMCQSingle},
	{"Multiple Choice (more than one)", exam.TypeMCQMultiple},
	{"True/False/Not Given", exam.TypeTrueFalseNG},
	{"Identifying Information", exam.TypeTrueFalseNG},
	{"Matching", exam.TypeMatching},
	{"Sentence Completion", exam.TypeSentenceCompletion},
	{"Table Completion", exam.TypeTableCompletion},
	{"Flow-chart Completion", exam.TypeFlowchartCompletion},
	{"Form Completion", exam.TypeFormCompletion},
	{"Note Completion", exam.TypeNoteCompletion},
	{"Summary Completion", exam.TypeSummaryCompletion},
	{"Matching Headings", exam.TypeMatchingHeadings},
	{"Matching Features", exam.TypeMatchingFeatures},
	{"Matching Sentence Endings", exam.TypeMatchingEndings},
	{"Labelling on a map", exam.TypeMapLabelling},
	{"writing-part-1", exam.TypeWritingTask1},
	{"writing-part-2", exam.TypeWritingTask2},
}

// DetectFromPath derives a question type from a ZIP entry path.
func DetectFromPath(path string) exam.QuestionType {
	for _, e := range pathTypeTable {
		if strings.Contains(path, e.key) {
			return e.typ
		}
	}
	return exam.TypeUnknown
}

// sectionFromPath derives the exam section from a ZIP entry path.
func sectionFromPath(path string) exam.Section {
	switch {
	case strings.Contains(path, "Listening"):
		return exam.SectionListening
	case strings.Contains(path, "Reading"):
		return exam.SectionReading
	case strings.Contains(path, "Writing"):
		return exam.SectionWriting
	default:
		return exam.SectionUnknown
	}
}

// AutoDetect infers a question type from a JSON question object when its
// declared type is absent or not in the recognized set.
//
// The rules run in a fixed order and the first hit wins; later rules are
// tie-break fallbacks, not independent signals. A question whose text
// mentions both "match" and "table" is matching, never table_completion.
// Do not reorder.
func AutoDetect(q RawQuestion) exam.QuestionType {
	if t := exam.QuestionType(q.Type); t.IsValid() {
		return t
	}

	if strings.Contains(q.Type, "writing") {
		if strings.Contains(q.Type, "task2") {
			return exam.TypeWritingTask2
		}
		return exam.TypeWritingTask1
	}

	text := strings.ToLower(q.Text)

	if q.Options != nil {
		if strings.Contains(text, "select one") || strings.Contains(text, "choose one") {
			return exam.TypeMCQSingle
		}
		if strings.Contains(text, "select all") || strings.Contains(text, "choose all") {
			return exam.TypeMCQMultiple
		}
		return exam.TypeMCQSingle
	}

	if ans, ok := q.Answer.(string); ok {
		switch ans {
		case "True", "False", "Not Given", "Yes", "No":
			return exam.TypeTrueFalseNG
		}
	}

	if strings.Contains(q.Text, "_____") || strings.Contains(q.Text, "___") ||
		strings.Contains(text, "fill in") || strings.Contains(text, "complete") {
		return exam.TypeFillGaps
	}

	if strings.Contains(text, "match") || strings.Contains(text, "pair") {
		return exam.TypeMatching
	}

	if strings.Contains(text, "table") {
		return exam.TypeTableCompletion
	}
	if strings.Contains(text, "form") {
		return exam.TypeFormCompletion
	}
	if strings.Contains(text, "note") {
		return exam.TypeNoteCompletion
	}

	if strings.Contains(text, "sentence") {
		return exam.TypeSentenceCompletion
	}

	return exam.TypeFillGapsShort
}
