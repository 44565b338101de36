// Package docx normalises DOCX course materials by extracting the text
// content of word/document.xml.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX materials.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Normalise extracts plain text from a DOCX material. A DOCX file is a
// ZIP archive; the document body lives in word/document.xml.
func (n *Normaliser) Normalise(_ context.Context, material *domain.Material) (string, error) {
	if material == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(material.Content), int64(len(material.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: opening docx %s: %v", domain.ErrInvalidInput, material.Source, err)
	}

	return extractDocumentText(reader, material.Source)
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader, source string) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: reading docx %s: %v", domain.ErrInvalidInput, source, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: reading docx %s: %v", domain.ErrInvalidInput, source, err)
		}

		return parseDocumentXML(content), nil
	}

	return "", fmt.Errorf("%w: docx %s has no word/document.xml", domain.ErrInvalidInput, source)
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, run := range para.Runs {
			for _, text := range run.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
