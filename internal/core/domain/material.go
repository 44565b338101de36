package domain

import (
	"path/filepath"
	"strings"
)

// Material is a raw course document supplied by a material source.
// It is immutable once loaded; its lifecycle ends when chunking consumes it.
type Material struct {
	// Source is the stable identifier chunks are keyed on,
	// typically the file name (e.g. "lecture_3.pdf").
	Source string

	// Path is where the material was read from.
	Path string

	// Ext is the lower-cased file extension including the dot (".pdf").
	Ext string

	// Content is the raw document bytes. Normalisers turn it into text.
	Content []byte
}

// NewMaterial builds a Material from a file path and its raw bytes.
// The source identifier is the base name; the extension is lower-cased.
// Base-name keying means two files with the same name under different
// material roots share one identifier, and the later one replaces the
// earlier during a refresh. Keep file names unique across roots.
func NewMaterial(path string, content []byte) Material {
	return Material{
		Source:  filepath.Base(path),
		Path:    path,
		Ext:     strings.ToLower(filepath.Ext(path)),
		Content: content,
	}
}

// ChangeType describes what happened to a watched material.
type ChangeType string

// Material change types.
const (
	// ChangeCreated indicates a new material appeared.
	ChangeCreated ChangeType = "created"

	// ChangeUpdated indicates an existing material changed.
	ChangeUpdated ChangeType = "updated"

	// ChangeDeleted indicates a material was removed.
	ChangeDeleted ChangeType = "deleted"
)

// IsValid returns true if the change type is recognised.
func (t ChangeType) IsValid() bool {
	switch t {
	case ChangeCreated, ChangeUpdated, ChangeDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ChangeType) String() string {
	return string(t)
}

// MaterialEvent is a change notification from a watching material source.
type MaterialEvent struct {
	// Type is what happened.
	Type ChangeType

	// Path is the affected file path.
	Path string
}
