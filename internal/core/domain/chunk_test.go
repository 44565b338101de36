package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChunkID verifies deterministic id derivation
func TestChunkID(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		seq      int
		expected string
	}{
		{
			name:     "first chunk",
			source:   "lecture_3.pdf",
			seq:      0,
			expected: "lecture_3.pdf_0",
		},
		{
			name:     "later chunk",
			source:   "notes.txt",
			seq:      12,
			expected: "notes.txt_12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChunkID(tt.source, tt.seq))
		})
	}
}

// TestChunkID_Deterministic verifies the same inputs always produce the same id
func TestChunkID_Deterministic(t *testing.T) {
	first := ChunkID("syllabus.md", 4)
	second := ChunkID("syllabus.md", 4)

	assert.Equal(t, first, second)
}

// TestNewChunk verifies chunk construction
func TestNewChunk(t *testing.T) {
	chunk := NewChunk("notes.txt", 2, "some content")

	assert.Equal(t, "notes.txt_2", chunk.ID)
	assert.Equal(t, "notes.txt", chunk.Source)
	assert.Equal(t, 2, chunk.Seq)
	assert.Equal(t, "some content", chunk.Content)
}

// TestNewMaterial verifies source and extension derivation
func TestNewMaterial(t *testing.T) {
	material := NewMaterial("/home/student/materials/Week 1/Intro.PDF", []byte("raw"))

	assert.Equal(t, "Intro.PDF", material.Source)
	assert.Equal(t, ".pdf", material.Ext)
	assert.Equal(t, []byte("raw"), material.Content)
}
