package chunker

import (
	"bufio"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// maxSentenceBytes caps the scanner buffer. A single sentence beyond
// this (pathological input without punctuation) fails tokenization and
// the chunker falls back to a whole-text chunk.
const maxSentenceBytes = 1 << 20

var paragraphBreak = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)

// Tokenizer segments text into sentences using punctuation and
// paragraph boundaries. It implements the SentenceTokenizer interface.
type Tokenizer struct{}

var _ driven.SentenceTokenizer = (*Tokenizer)(nil)

// NewTokenizer creates a new sentence tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Sentences splits text into sentences. A sentence ends at a run of
// '.', '!' or '?' followed by whitespace, or at a blank line. Periods
// inside words ("3.14", "v1.2.0") do not end a sentence.
func (t *Tokenizer) Sentences(text string) ([]string, error) {
	var sentences []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		scanner := bufio.NewScanner(strings.NewReader(paragraph))
		scanner.Buffer(make([]byte, 0, 64*1024), maxSentenceBytes)
		scanner.Split(scanSentences)
		for scanner.Scan() {
			sentence := strings.TrimSpace(scanner.Text())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return sentences, nil
}

// scanSentences is a bufio.SplitFunc that emits one sentence per token.
func scanSentences(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i := 0; i < len(data); i++ {
		if !isTerminator(data[i]) {
			continue
		}

		// Consume the whole terminator run ("...", "?!").
		j := i + 1
		for j < len(data) && isTerminator(data[j]) {
			j++
		}
		if j == len(data) {
			if atEOF {
				return j, data[:j], nil
			}
			// The run may continue past the buffered data.
			return 0, nil, nil
		}
		if !atEOF && !utf8.FullRune(data[j:]) {
			return 0, nil, nil
		}

		next, _ := utf8.DecodeRune(data[j:])
		if unicode.IsSpace(next) {
			return j, data[:j], nil
		}
		// Terminator inside a word, keep scanning.
		i = j - 1
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
