package driven

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// Normaliser extracts plain text from a raw material. Each normaliser
// handles specific file extensions (e.g. PDF, Markdown).
type Normaliser interface {
	// SupportedExtensions returns the lower-cased file extensions this
	// normaliser handles, with dots (".pdf").
	SupportedExtensions() []string

	// Normalise extracts the material's plain text.
	Normalise(ctx context.Context, material *domain.Material) (string, error)
}

// NormaliserRegistry routes materials to the normaliser registered for
// their file extension.
type NormaliserRegistry interface {
	// Normalise extracts plain text from the material using the
	// normaliser registered for its extension. Returns
	// domain.ErrUnsupportedFormat when no normaliser matches.
	Normalise(ctx context.Context, material *domain.Material) (string, error)

	// Supported reports whether ext has a registered normaliser.
	Supported(ext string) bool
}
