package exam

import "strings"

// QuestionType identifies one of the closed set of IELTS question formats
// the platform can ingest and score. Anything else is TypeUnknown.
type QuestionType string

const (
	TypeMCQSingle           QuestionType = "mcq_single"
	TypeMCQMultiple         QuestionType = "mcq_multiple"
	TypeFillGaps            QuestionType = "fill_gaps"
	TypeFillGapsShort       QuestionType = "fill_gaps_short"
	TypeTrueFalseNG         QuestionType = "true_false_ng"
	TypeMatching            QuestionType = "matching"
	TypeMatchingHeadings    QuestionType = "matching_headings"
	TypeMatchingFeatures    QuestionType = "matching_features"
	TypeMatchingEndings     QuestionType = "matching_endings"
	TypeSentenceCompletion  QuestionType = "sentence_completion"
	TypeSummaryCompletion   QuestionType = "summary_completion"
	TypeFormCompletion      QuestionType = "form_completion"
	TypeNoteCompletion      QuestionType = "note_completion"
	TypeTableCompletion     QuestionType = "table_completion"
	TypeFlowchartCompletion QuestionType = "flowchart_completion"
	TypeMapLabelling        QuestionType = "map_labelling"
	TypeWritingTask1        QuestionType = "writing_task1"
	TypeWritingTask2        QuestionType = "writing_task2"
	TypeUnknown             QuestionType = "unknown"
)

// ValidTypes is the closed vocabulary shared by both parsers and the grader.
// Adding a type here requires registering a scoring strategy for it.
var ValidTypes = []QuestionType{
	TypeMCQSingle, TypeMCQMultiple, TypeFillGaps, TypeFillGapsShort,
	TypeTrueFalseNG, TypeMatching, TypeMatchingHeadings, TypeMatchingFeatures,
	TypeMatchingEndings, TypeSentenceCompletion, TypeSummaryCompletion,
	TypeFormCompletion, TypeNoteCompletion, TypeTableCompletion,
	TypeFlowchartCompletion, TypeMapLabelling, TypeWritingTask1, TypeWritingTask2,
}

// IsValid reports whether t is one of the 18 recognized types.
func (t QuestionType) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsWriting reports whether t is a writing task, which is never auto-scored.
func (t QuestionType) IsWriting() bool {
	return t == TypeWritingTask1 || t == TypeWritingTask2
}

// Section is the exam section a question belongs to.
type Section string

const (
	SectionListening Section = "Listening"
	SectionReading   Section = "Reading"
	SectionWriting   Section = "Writing"
	SectionUnknown   Section = "Unknown"
)

// ParseSection canonicalizes a source-package section label. Packages
// declare sections in whatever casing their authors chose ("reading",
// "LISTENING"); everything downstream keys on the canonical form, including
// the band conversion tables, so this is the single place casing is erased.
func ParseSection(s string) Section {
	for _, c := range []Section{SectionListening, SectionReading, SectionWriting} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return SectionUnknown
}
