// Package app contains the killweb controller. It wires the task registry,
// the component graph, the Monte Carlo engine and the metrics aggregator
// together, exposes the graph mutations and report printers, and drives a
// complete command-line run, decoupled from any specific entrypoint.
package app
