package services

import "strings"

// Prompt construction is deterministic: identical inputs produce an
// identical prompt string. The assembled prompt is handed to the LLM
// service verbatim; nothing here talks to a model.

// noDescriptionPlaceholder stands in for an empty assignment description.
const noDescriptionPlaceholder = "No specific description provided."

// assignmentPreamble opens every assignment prompt.
const assignmentPreamble = "You are StudyMateAI, an expert academic assistant. " +
	"You must provide a complete, well-structured answer to the following assignment."

// assignmentInstructions follows the context section of an assignment prompt.
const assignmentInstructions = `Instructions:
1. Provide a comprehensive answer that demonstrates deep understanding
2. Use proper academic formatting with clear sections and subsections
3. Include relevant examples, explanations, and analysis
4. Ensure your response is college-level quality
5. If the assignment asks for specific formats (essay, report, case study), follow those guidelines
6. Draw from both the provided materials and your general knowledge

Your answer should be complete and ready for submission. Do not ask for clarification or additional information.

Answer:`

// tutorPreamble opens every tutoring prompt.
const tutorPreamble = `You are StudyMateAI, an AI tutor for students. Use the following documents only as references.
Answer the question with your own knowledge. If the context helps, you may use it to enrich your answer.`

// AssignmentPrompt assembles the generation prompt for an assignment.
// Each context chunk is previewed (truncated to previewRunes) to bound the
// prompt size; the materials section is omitted entirely when there are no
// chunks. An empty description is replaced by a fixed placeholder.
func AssignmentPrompt(title, description string, contextChunks []string, previewRunes int) string {
	if description == "" {
		description = noDescriptionPlaceholder
	}

	var contextSection string
	if len(contextChunks) > 0 {
		var b strings.Builder
		b.WriteString("\nRelevant course materials:\n")
		for i, chunk := range contextChunks {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- ")
			b.WriteString(truncateRunes(chunk, previewRunes))
			b.WriteString("...")
		}
		b.WriteString("\n\n")
		contextSection = b.String()
	}

	var b strings.Builder
	b.WriteString(assignmentPreamble)
	b.WriteString("\n\nAssignment Title: ")
	b.WriteString(title)
	b.WriteString("\n\nAssignment Description: ")
	b.WriteString(description)
	b.WriteString("\n\n")
	b.WriteString(contextSection)
	b.WriteString(assignmentInstructions)
	return b.String()
}

// TutorPrompt assembles the generation prompt for a free-form question.
// Chunks are joined by blank lines inside a context block; the block is
// present even when no context was retrieved, so the model is always told
// to answer from its own knowledge first.
func TutorPrompt(question string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString(tutorPreamble)
	b.WriteString("\n\n---Context---\n")
	b.WriteString(strings.Join(contextChunks, "\n\n"))
	b.WriteString("\n--------------\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
