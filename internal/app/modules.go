package app

import (
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/modules/assess"
	"github.com/specialistvlad/killweb/modules/betabernoulli"
	"github.com/specialistvlad/killweb/modules/expression"
)

// coreModules is the definitive list of all task modules that are compiled
// into the killweb binary.
var coreModules = []registry.Module{
	&assess.Module{},
	&betabernoulli.Module{},
	&expression.Module{},
}
