// Package normalisers provides implementations of the Normaliser
// interface for the supported course material formats. Each normaliser
// knows how to extract plain text from specific file extensions.
//
// Normalisers are registered with the Registry at startup; the refresh
// pipeline routes each material through the registry before chunking.
package normalisers
