package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSafeFileName tests file name sanitisation
func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean name passes through",
			input:    "Essay on Photosynthesis",
			expected: "Essay on Photosynthesis",
		},
		{
			name:     "invalid characters become underscores",
			input:    `Lab 2: Results/Analysis?`,
			expected: "Lab 2_ Results_Analysis_",
		},
		{
			name:     "windows reserved characters",
			input:    `<a>"b"|c*`,
			expected: "_a__b__c_",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeFileName(tt.input))
		})
	}
}

// TestSafeFileName_CapsLength verifies the 255 rune cap
func TestSafeFileName_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 400)

	out := SafeFileName(long)

	assert.Len(t, []rune(out), 255)
}

// TestAssignment_RetrievalQuery verifies the title+description query
func TestAssignment_RetrievalQuery(t *testing.T) {
	tests := []struct {
		name       string
		assignment Assignment
		expected   string
	}{
		{
			name: "title and description",
			assignment: Assignment{
				Title:       "Essay on X",
				Description: "Discuss X in depth",
			},
			expected: "Essay on X Discuss X in depth",
		},
		{
			name: "title only",
			assignment: Assignment{
				Title: "Essay on X",
			},
			expected: "Essay on X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.assignment.RetrievalQuery())
		})
	}
}

// TestAnswer_ExportName verifies file name derivation
func TestAnswer_ExportName(t *testing.T) {
	tests := []struct {
		name     string
		answer   Answer
		expected string
	}{
		{
			name: "assignment title wins",
			answer: Answer{
				ID:    "abc",
				Title: "Essay: Draft/1",
			},
			expected: "Essay_ Draft_1.txt",
		},
		{
			name: "question used when no title",
			answer: Answer{
				ID:       "abc",
				Question: "What is osmosis?",
			},
			expected: "What is osmosis_.txt",
		},
		{
			name: "id as last resort",
			answer: Answer{
				ID: "abc",
			},
			expected: "abc.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := tt.answer
			assert.Equal(t, tt.expected, answer.ExportName())
		})
	}
}

// TestAnswerKind_IsValid tests answer kind validity
func TestAnswerKind_IsValid(t *testing.T) {
	assert.True(t, AnswerKindQuestion.IsValid())
	assert.True(t, AnswerKindAssignment.IsValid())
	assert.False(t, AnswerKind("note").IsValid())
}
