// Package chunker provides sentence-aware text chunking with word overlap.
package chunker

import (
	"strings"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Processor splits document text into chunks along sentence boundaries.
// Chunk sizes are measured in words, not characters, so a chunk never
// cuts a sentence in half. It implements the Chunker interface.
type Processor struct {
	chunkSize int
	overlap   int
	tokenizer driven.SentenceTokenizer
}

var _ driven.Chunker = (*Processor)(nil)

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithTokenizer sets the sentence tokenizer.
func WithTokenizer(t driven.SentenceTokenizer) Option {
	return func(p *Processor) {
		if t != nil {
			p.tokenizer = t
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
		tokenizer: NewTokenizer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Split divides text into chunks of whole sentences. Each chunk holds
// as many sentences as fit the word budget; consecutive chunks share a
// trailing run of sentences worth up to the overlap budget. A sentence
// longer than the budget becomes its own oversized chunk rather than
// being cut. When sentence tokenization fails, the whole text is kept
// as a single chunk and degraded is true.
func (p *Processor) Split(text string) (chunks []string, degraded bool) {
	sentences, err := p.tokenizer.Sentences(text)
	if err != nil {
		return []string{text}, true
	}
	if len(sentences) == 0 {
		return nil, false
	}

	var (
		current []string
		size    int
	)
	for _, sentence := range sentences {
		words := wordCount(sentence)
		if size+words > p.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, size = p.overlapTail(current)
		}
		current = append(current, sentence)
		size += words
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks, false
}

// Process splits text into chunks for source.
func (p *Processor) Process(source, text string) ([]domain.Chunk, bool) {
	texts, degraded := p.Split(text)
	if len(texts) == 0 {
		return nil, degraded
	}

	chunks := make([]domain.Chunk, 0, len(texts))
	for i, t := range texts {
		chunks = append(chunks, domain.NewChunk(source, i, t))
	}
	return chunks, degraded
}

// overlapTail returns the longest suffix of sentences that fits the
// overlap word budget, walking backward from the end and stopping at
// the first sentence that does not fit. The suffix seeds the next
// chunk so neighbouring chunks share context.
func (p *Processor) overlapTail(sentences []string) ([]string, int) {
	start := len(sentences)
	words := 0
	for start > 0 {
		n := wordCount(sentences[start-1])
		if words+n > p.overlap {
			break
		}
		start--
		words += n
	}
	if start == len(sentences) {
		return nil, 0
	}
	return append([]string(nil), sentences[start:]...), words
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
