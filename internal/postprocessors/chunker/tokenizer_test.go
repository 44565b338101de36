package chunker

import (
	"bufio"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTokenizer_Sentences(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			want: nil,
		},
		{
			name: "single sentence",
			text: "Photosynthesis converts light into energy.",
			want: []string{"Photosynthesis converts light into energy."},
		},
		{
			name: "two sentences",
			text: "First point. Second point.",
			want: []string{"First point.", "Second point."},
		},
		{
			name: "mixed terminators",
			text: "Is this right? Yes! Moving on.",
			want: []string{"Is this right?", "Yes!", "Moving on."},
		},
		{
			name: "terminator runs",
			text: "Wait... What?! Done.",
			want: []string{"Wait...", "What?!", "Done."},
		},
		{
			name: "decimal number stays intact",
			text: "Pi is roughly 3.14159 in value. Next sentence.",
			want: []string{"Pi is roughly 3.14159 in value.", "Next sentence."},
		},
		{
			name: "version string stays intact",
			text: "Release v1.2.3 shipped today.",
			want: []string{"Release v1.2.3 shipped today."},
		},
		{
			name: "no trailing terminator",
			text: "Complete sentence. trailing fragment",
			want: []string{"Complete sentence.", "trailing fragment"},
		},
		{
			name: "blank line splits paragraphs",
			text: "Chapter One\n\nThe story begins here.",
			want: []string{"Chapter One", "The story begins here."},
		},
		{
			name: "crlf blank lines",
			text: "Intro\r\n\r\nDetails follow.",
			want: []string{"Intro", "Details follow."},
		},
		{
			name: "newline within paragraph is not a boundary",
			text: "One line\nstill the same sentence.",
			want: []string{"One line\nstill the same sentence."},
		},
		{
			name: "unicode text",
			text: "Первая мысль. Вторая мысль!",
			want: []string{"Первая мысль.", "Вторая мысль!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Sentences(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenizer_SentenceTooLong(t *testing.T) {
	tok := NewTokenizer()

	// A single paragraph beyond the scanner cap with no terminators.
	text := strings.Repeat("word ", (maxSentenceBytes/5)+1024)
	_, err := tok.Sentences(text)
	if err == nil {
		t.Fatal("expected an error for oversized sentence")
	}
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("expected bufio.ErrTooLong, got %v", err)
	}
}
