// Package plaintext normalises plain text course materials.
package plaintext

import (
	"context"
	"strings"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text materials.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log"}
}

// Normalise returns the material content as UTF-8 text. Bytes that are
// not valid UTF-8 are dropped, matching a lenient text decode.
func (n *Normaliser) Normalise(_ context.Context, material *domain.Material) (string, error) {
	if material == nil {
		return "", domain.ErrInvalidInput
	}

	content := strings.ToValidUTF8(string(material.Content), "")
	content = strings.TrimPrefix(content, "\ufeff")
	return content, nil
}
