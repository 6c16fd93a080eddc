// Package registry is the task factory of the killweb.
//
// The Registry maps task names to the Go constructors that implement them.
// Constructors arrive in two ways. Compiled task modules register themselves
// through the Module interface at startup, and task manifests discovered from
// a tasks directory declare additional names on top of those constructors:
//
//	task "Find" {
//	  handler     = "BetaBernoulli"
//	  description = "Radar detection of the surface contact."
//
//	  input "alpha" {
//	    type = number
//	  }
//	  input "beta" {
//	    type    = number
//	    default = 1
//	  }
//	}
//
// A manifest declares the inputs its handler needs. CreateTask applies input
// defaults, rejects missing required inputs with a configuration error and
// converts every declared input to its declared type before calling the
// handler. Names that resolve to nothing fall back to the static probability
// task when the arguments carry a "probability" key or the name is "Other".
//
// Registration is last-wins: a later Register call or a later-discovered
// manifest with the same name replaces the earlier one. Manifest files are
// discovered in lexical path order so the outcome is deterministic.
package registry
