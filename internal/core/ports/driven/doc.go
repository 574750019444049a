// Package driven defines the driven ports (secondary adapters' interfaces)
// for plotline: storage, configuration, and LLM services consumed by the core.
package driven
