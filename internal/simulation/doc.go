// Package simulation enumerates the kill chains of a killweb and samples them
// with Monte Carlo trials.
//
// A kill chain is a simple directed path from a source (in-degree zero) to a
// sink (out-degree zero). Each trial walks a chain position by position: the
// component's task is evaluated to a probability p, the value is recorded, and
// a single Bernoulli draw with parameter p decides whether the walk continues.
// The first failure ends the trial, leaving every later outcome and
// probability at zero.
//
// Trials run sequentially on one random stream. Seed the stream with WithRand
// or WithSeed for reproducible runs.
package simulation
