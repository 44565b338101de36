package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.SupportedExtensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
}

func TestNormalise_NilMaterial(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	text, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

func TestNormalise_StripsFormatting(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "heading markers removed",
			content:  "# Lecture 3\n\n## Dynamic Programming",
			expected: "Lecture 3\n\nDynamic Programming",
		},
		{
			name:     "bold and italic removed",
			content:  "This is **important** and *emphasised*.",
			expected: "This is important and emphasised.",
		},
		{
			name:     "links converted to text",
			content:  "See [the course page](https://example.com/cs101).",
			expected: "See the course page.",
		},
		{
			name:     "images removed",
			content:  "Diagram: ![state machine](fig1.png) end.",
			expected: "Diagram:  end.",
		},
		{
			name:     "code blocks removed",
			content:  "Before\n```go\nfunc main() {}\n```\nAfter",
			expected: "Before\n\nAfter",
		},
		{
			name:     "inline code removed",
			content:  "Call `sort.Slice` here.",
			expected: "Call  here.",
		},
		{
			name:     "list markers removed",
			content:  "- first\n- second\n1. third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "blockquotes unwrapped",
			content:  "> quoted text",
			expected: "quoted text",
		},
		{
			name:     "excess blank lines collapsed",
			content:  "one\n\n\n\n\ntwo",
			expected: "one\n\ntwo",
		},
	}

	normaliser := New()
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			material := domain.NewMaterial("/notes/lecture.md", []byte(tc.content))

			text, err := normaliser.Normalise(ctx, &material)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestNormalise_FullDocument(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	content := `# Graph Algorithms

Breadth-first search visits vertices in **layers**.

- Uses a queue
- Runs in O(V + E)

See [CLRS chapter 22](https://example.com) for proofs.`

	material := domain.NewMaterial("/notes/graphs.md", []byte(content))

	text, err := normaliser.Normalise(ctx, &material)
	require.NoError(t, err)

	assert.Contains(t, text, "Graph Algorithms")
	assert.Contains(t, text, "Breadth-first search visits vertices in layers.")
	assert.Contains(t, text, "Uses a queue")
	assert.Contains(t, text, "CLRS chapter 22")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "https://example.com")
}
