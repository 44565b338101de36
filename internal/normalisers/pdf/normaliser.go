// Package pdf normalises PDF course materials by extracting their
// plain text content.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF materials.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise extracts the plain text of a PDF material. Scanned PDFs
// without a text layer yield empty text rather than an error.
func (n *Normaliser) Normalise(_ context.Context, material *domain.Material) (string, error) {
	if material == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := pdf.NewReader(bytes.NewReader(material.Content), int64(len(material.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing pdf %s: %v", domain.ErrInvalidInput, material.Source, err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extracting text from %s: %v", domain.ErrInvalidInput, material.Source, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", fmt.Errorf("%w: reading text from %s: %v", domain.ErrInvalidInput, material.Source, err)
	}

	text := strings.ToValidUTF8(buf.String(), "")
	return strings.TrimSpace(text), nil
}
