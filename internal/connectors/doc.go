// Package connectors provides implementations of the MaterialSource
// interface for course material origins. Each connector knows how to load
// and watch materials from a specific origin (local filesystem today).
package connectors
