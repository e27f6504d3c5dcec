package index

import "fmt"

// ParseError means the submitted source could not be structurally
// modeled. It is fatal for the whole evaluation; no report is produced.
type ParseError struct {
	Language string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %s", e.Language, e.Reason)
}

// UnknownSnippetError means a checker's snippet id does not resolve in
// the submitted source. This is an authoring fault, not a submission
// failure, and is isolated per checker.
type UnknownSnippetError struct {
	SnippetID string
}

func (e *UnknownSnippetError) Error() string {
	return fmt.Sprintf("unknown snippet id: %s", e.SnippetID)
}

// AmbiguousSnippetError means a snippet id matches more than one
// structural element (duplicate class address or overloaded method
// name). Resolution fails rather than guessing.
type AmbiguousSnippetError struct {
	SnippetID string
	Matches   int
}

func (e *AmbiguousSnippetError) Error() string {
	return fmt.Sprintf("ambiguous snippet id %s: %d matches", e.SnippetID, e.Matches)
}
