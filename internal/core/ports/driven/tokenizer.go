package driven

// SentenceTokenizer segments text into sentences for the chunker.
// Implementations must be deterministic: the same text always yields the
// same sentence sequence. A failure is recoverable; the chunker falls back
// to treating the whole text as one chunk.
type SentenceTokenizer interface {
	// Sentences splits text into its sentence sequence, in order,
	// with no text dropped.
	Sentences(text string) ([]string, error)
}
