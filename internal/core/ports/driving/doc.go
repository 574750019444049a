// Package driving defines the driving ports (primary interfaces) through
// which the TUI, CLI, and MCP adapters operate on the plotline core.
package driving
