package ingest

import (
	"testing"

	"github.com/bandnine/ielts-platform/internal/exam"
)

func TestDetectFromPath(t *testing.T) {
	tests := []struct {
		path string
		want exam.QuestionType
	}{
		// Ordering guard: the short variant must win over its prefix.
		{"Listening/Fill in the gaps short/item1.xhtml", exam.TypeFillGapsShort},
		{"Listening/Fill in the gaps/item1.xhtml", exam.TypeFillGaps},
		{"Reading/Multiple Choice (one answer)/item2.xhtml", exam.TypeMCQSingle},
		{"Reading/Multiple Choice (more than one)/item2.xhtml", exam.TypeMCQMultiple},
		{"Reading/True/False/Not Given/item.xhtml", exam.TypeTrueFalseNG},
		{"Reading/Identifying Information/item.xhtml", exam.TypeTrueFalseNG},
		{"Reading/Sentence Completion/item.xhtml", exam.TypeSentenceCompletion},
		{"Listening/Table Completion/item.xhtml", exam.TypeTableCompletion},
		{"Listening/Flow-chart Completion/item.xhtml", exam.TypeFlowchartCompletion},
		{"Listening/Form Completion/item.xhtml", exam.TypeFormCompletion},
		{"Listening/Note Completion/item.xhtml", exam.TypeNoteCompletion},
		{"Reading/Summary Completion/item.xhtml", exam.TypeSummaryCompletion},
		{"Reading/Labelling on a map/item.xhtml", exam.TypeMapLabelling},
		{"Writing/writing-part-1/task.xhtml", exam.TypeWritingTask1},
		{"Writing/writing-part-2/task.xhtml", exam.TypeWritingTask2},
		{"Reading/Something Else/item.xhtml", exam.TypeUnknown},
	}
	for _, tc := range tests {
		if got := DetectFromPath(tc.path); got != tc.want {
			t.Errorf("DetectFromPath(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestSectionFromPath(t *testing.T) {
	tests := []struct {
		path string
		want exam.Section
	}{
		{"Listening/Fill in the gaps/q.xhtml", exam.SectionListening},
		{"pkg/Reading/q.xhtml", exam.SectionReading},
		{"Writing/task.xhtml", exam.SectionWriting},
		{"misc/q.xhtml", exam.SectionUnknown},
	}
	for _, tc := range tests {
		if got := sectionFromPath(tc.path); got != tc.want {
			t.Errorf("sectionFromPath(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestAutoDetect(t *testing.T) {
	opts := []exam.Option{{ID: "a"}, {ID: "b"}}
	tests := []struct {
		name string
		q    RawQuestion
		want exam.QuestionType
	}{
		{"explicit valid type wins", RawQuestion{Type: "matching_headings", Text: "fill in the table"}, exam.TypeMatchingHeadings},
		{"writing without task2", RawQuestion{Type: "writing"}, exam.TypeWritingTask1},
		{"writing with task2", RawQuestion{Type: "writing task2"}, exam.TypeWritingTask2},
		{"options select one", RawQuestion{Options: opts, Text: "Select one of the following"}, exam.TypeMCQSingle},
		{"options choose all", RawQuestion{Options: opts, Text: "Choose all that apply"}, exam.TypeMCQMultiple},
		{"options default single", RawQuestion{Options: opts, Text: "Which city?"}, exam.TypeMCQSingle},
		{"true false from answer", RawQuestion{Answer: "Not Given"}, exam.TypeTrueFalseNG},
		{"yes counts as tfng", RawQuestion{Answer: "Yes"}, exam.TypeTrueFalseNG},
		{"blank markers", RawQuestion{Text: "The capital is ___"}, exam.TypeFillGaps},
		{"complete keyword", RawQuestion{Text: "Complete the summary below"}, exam.TypeFillGaps},
		// Overlapping triggers resolve to the first matching rule.
		{"match beats table", RawQuestion{Text: "Match the rows of the table"}, exam.TypeMatching},
		{"table completion", RawQuestion{Text: "Use the table below"}, exam.TypeTableCompletion},
		{"form completion", RawQuestion{Text: "The booking form asks for a name"}, exam.TypeFormCompletion},
		{"note completion", RawQuestion{Text: "Use your notes"}, exam.TypeNoteCompletion},
		{"sentence completion", RawQuestion{Text: "Finish the sentence"}, exam.TypeSentenceCompletion},
		{"fallback", RawQuestion{Text: "Answer briefly"}, exam.TypeFillGapsShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AutoDetect(tc.q); got != tc.want {
				t.Errorf("AutoDetect = %s, want %s", got, tc.want)
			}
		})
	}
}
