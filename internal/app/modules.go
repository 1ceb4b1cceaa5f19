package app

import (
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/lessons/conditionals"
	"github.com/vk/aplab/lessons/datatypes"
	"github.com/vk/aplab/lessons/dictionaries"
	"github.com/vk/aplab/lessons/functions"
	"github.com/vk/aplab/lessons/lists"
	"github.com/vk/aplab/lessons/loops"
	"github.com/vk/aplab/lessons/operations"
	"github.com/vk/aplab/lessons/programmingbasics"
	"github.com/vk/aplab/lessons/sets"
	"github.com/vk/aplab/lessons/variables"
)

// coreModules is the definitive list of all lesson modules that are compiled
// into the aplab binary.
var coreModules = []registry.Module{
	&programmingbasics.Module{},
	&variables.Module{},
	&datatypes.Module{},
	&operations.Module{},
	&conditionals.Module{},
	&loops.Module{},
	&functions.Module{},
	&lists.Module{},
	&dictionaries.Module{},
	&sets.Module{},
}

// CoreModules returns a copy of the built-in lesson modules.
func CoreModules() []registry.Module {
	return append([]registry.Module(nil), coreModules...)
}
