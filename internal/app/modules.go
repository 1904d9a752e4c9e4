package app

import (
	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/modules/arith"
	"github.com/specialistvlad/componentcatalog/modules/env_vars"
	"github.com/specialistvlad/componentcatalog/modules/filter"
	"github.com/specialistvlad/componentcatalog/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the catalog binary.
var coreModules = []catalog.Module{
	&arith.Module{},
	&filter.Module{},
	&env_vars.Module{},
	&print.Module{},
}
