// Package metrics aggregates Monte Carlo trial data into per-chain statistics
// and computes degree centrality of a killweb.
//
// Every per-chain query accepts the chain either as its canonical key
// ("A, B, C") or as a []string. When no trial data exists for the chain the
// query logs a warning and reports ok=false; it never returns an error.
package metrics
