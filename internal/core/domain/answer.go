package domain

import (
	"strings"
	"time"
)

// Assignment is a task the assistant is asked to complete.
type Assignment struct {
	// Title is the assignment title (required).
	Title string

	// Description is the assignment body. May be empty; the prompt
	// assembler substitutes a fixed placeholder in that case.
	Description string
}

// RetrievalQuery returns the text used to retrieve relevant context for
// the assignment: the title and description joined by a single space.
func (a Assignment) RetrievalQuery() string {
	return strings.TrimSpace(a.Title + " " + a.Description)
}

// AnswerKind distinguishes what produced an answer.
type AnswerKind string

// Answer kinds.
const (
	// AnswerKindQuestion is a direct tutor question.
	AnswerKindQuestion AnswerKind = "question"

	// AnswerKindAssignment is a solved assignment.
	AnswerKindAssignment AnswerKind = "assignment"
)

// IsValid returns true if the answer kind is recognised.
func (k AnswerKind) IsValid() bool {
	switch k {
	case AnswerKindQuestion, AnswerKindAssignment:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k AnswerKind) String() string {
	return string(k)
}

// Answer is a persisted generation result.
type Answer struct {
	// ID is the unique identifier for the answer.
	ID string

	// Kind says whether this answers a question or an assignment.
	Kind AnswerKind

	// Title is the assignment title (empty for questions).
	Title string

	// Question is the question text (empty for assignments).
	Question string

	// Body is the generated answer text.
	Body string

	// UsedContext reports whether retrieved course material backed the
	// generation. False means the answer came from general knowledge
	// only, which callers must be able to distinguish.
	UsedContext bool

	// ContextSources lists the distinct sources of the chunks used.
	ContextSources []string

	// Model is the model that generated the answer.
	Model string

	// CreatedAt is when the answer was generated.
	CreatedAt time.Time
}

// ExportName returns a file-system safe file name for the answer,
// derived from the title (or question for tutor answers).
func (a *Answer) ExportName() string {
	name := a.Title
	if name == "" {
		name = a.Question
	}
	if name == "" {
		name = a.ID
	}
	return SafeFileName(name) + ".txt"
}

// safeNameMax bounds generated file names.
const safeNameMax = 255

// SafeFileName replaces characters that are invalid in file names with
// underscores and caps the length.
func SafeFileName(name string) string {
	const invalid = `<>:"/\|?*`
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalid, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	out := b.String()
	runes := []rune(out)
	if len(runes) > safeNameMax {
		return string(runes[:safeNameMax])
	}
	return out
}
