package domain

import "time"

// CorpusPhase is the ingestion lifecycle state of the chunk corpus.
type CorpusPhase string

// Corpus phases, in refresh order.
const (
	// PhaseEmpty means no chunks are stored.
	PhaseEmpty CorpusPhase = "empty"

	// PhaseLoading means materials are being read from their source.
	PhaseLoading CorpusPhase = "loading"

	// PhaseChunked means materials have been segmented into chunks.
	PhaseChunked CorpusPhase = "chunked"

	// PhaseEmbedded means chunk embeddings have been computed.
	PhaseEmbedded CorpusPhase = "embedded"

	// PhaseStored means the corpus is persisted and queryable.
	PhaseStored CorpusPhase = "stored"
)

// phaseOrder maps each phase to its position in a refresh.
var phaseOrder = map[CorpusPhase]int{
	PhaseEmpty:    0,
	PhaseLoading:  1,
	PhaseChunked:  2,
	PhaseEmbedded: 3,
	PhaseStored:   4,
}

// IsValid returns true if the phase is recognised.
func (p CorpusPhase) IsValid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// String returns the string representation.
func (p CorpusPhase) String() string {
	return string(p)
}

// CanTransition reports whether moving from p to next is a legal lifecycle
// step. Phases advance one-directionally per refresh; a reset returns the
// corpus to Empty from any phase.
func (p CorpusPhase) CanTransition(next CorpusPhase) bool {
	if !p.IsValid() || !next.IsValid() {
		return false
	}
	if next == PhaseEmpty {
		return true // reset
	}
	if p == PhaseStored && next == PhaseLoading {
		return true // a new refresh over an existing corpus
	}
	return phaseOrder[next] == phaseOrder[p]+1
}

// CorpusStatus describes the chunk corpus as observed by callers.
// No partial state is externally observable mid-refresh: the stored corpus
// either reflects the previous refresh or the completed new one.
type CorpusStatus struct {
	// Phase is the current lifecycle phase.
	Phase CorpusPhase

	// Running indicates a refresh is in progress.
	Running bool

	// Documents is the number of materials seen by the last refresh.
	Documents int

	// Chunks is the number of chunks currently stored.
	Chunks int

	// Sources is the number of distinct sources currently stored.
	Sources int

	// Dimensions is the embedding dimensionality the store is
	// schematised to (0 when empty).
	Dimensions int

	// LastRefresh is when the last successful refresh finished.
	LastRefresh time.Time

	// Errors counts documents skipped by the last refresh.
	Errors int
}

// RefreshReport summarises one corpus refresh.
type RefreshReport struct {
	// ID identifies the refresh run.
	ID string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Documents is how many materials the source supplied.
	Documents int

	// Chunks is how many chunks were produced.
	Chunks int

	// StoredChunks is how many chunks were embedded and persisted.
	StoredChunks int

	// SkippedDocuments counts materials that failed to load or
	// normalise and were skipped (the refresh continues past them).
	SkippedDocuments int

	// DegradedSources lists sources whose embeddings wholly failed;
	// their previously stored chunks were left intact.
	DegradedSources []string
}

// Duration returns how long the refresh took.
func (r *RefreshReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
