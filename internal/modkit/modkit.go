package modkit

import "bazi/internal/modkit/module"

// Module is the surface API modules implement; it aliases module.Module so a
// module can be listed and registered without importing this package
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
