package app

import (
	"github.com/specialistvlad/rigup/internal/handlers"
	"github.com/specialistvlad/rigup/modules/env_vars"
	"github.com/specialistvlad/rigup/modules/print"
)

// coreModules is the definitive list of all handler modules that are
// compiled into the rigup binary.
var coreModules = []handlers.Module{
	&env_vars.Module{},
	&print.Module{},
}
