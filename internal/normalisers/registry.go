package normalisers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry routes materials to normalisers by file extension.
// A later registration for the same extension wins.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates a registry with the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byExt: make(map[string]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser for each extension it supports.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// Normalise extracts plain text from the material using the normaliser
// registered for its extension.
func (r *Registry) Normalise(ctx context.Context, material *domain.Material) (string, error) {
	if material == nil {
		return "", domain.ErrInvalidInput
	}

	n, ok := r.byExt[strings.ToLower(material.Ext)]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, material.Ext)
	}
	return n.Normalise(ctx, material)
}

// Supported reports whether ext has a registered normaliser.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
