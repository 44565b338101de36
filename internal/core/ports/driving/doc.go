// Package driving defines the driving ports for the application,
// following the hexagonal architecture pattern.
//
// Driving ports are interfaces that define how external actors
// (CLI commands, MCP tools, scheduled jobs) interact with the
// application core. The core services implement these interfaces;
// the driving adapters consume them.
package driving
