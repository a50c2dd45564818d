package ingest

import "fmt"

// ParseErrorKind classifies ingestion failures for the caller's retry/UX
// policy. All kinds are terminal; none is retried.
type ParseErrorKind string

const (
	// InvalidFormat: bytes are not valid JSON/UTF-8, or the declared
	// package format is not registered.
	InvalidFormat ParseErrorKind = "invalid_format"
	// InvalidStructure: JSON decoded fine but lacks any recognized
	// top-level shape (questions, passages, tasks).
	InvalidStructure ParseErrorKind = "invalid_structure"
	// CorruptArchive: the ZIP archive cannot be opened or enumerated.
	CorruptArchive ParseErrorKind = "corrupt_archive"
)

type ParseError struct {
	Kind ParseErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match on kind: errors.Is(err, &ParseError{Kind: CorruptArchive}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

func parseErr(kind ParseErrorKind, msg string, err error) *ParseError {
	return &ParseError{Kind: kind, Msg: msg, Err: err}
}
