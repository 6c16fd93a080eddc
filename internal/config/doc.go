// Package config defines the format-agnostic killweb configuration model and
// the interfaces (Loader, Saver) implemented by format-specific adapters.
//
// A file holds one or more named graphs; each graph is an ordered list of
// component specifications. Only the first graph is consulted when a killweb
// is built. Concrete implementations for JSON, YAML and HCL live in separate
// packages.
package config
