// Package module defines the contract API modules implement and a registry of their ports
package module

import (
	phttp "bazi/internal/platform/net/http"
)

// Module is mounted under Prefix by the API and registered under Name
// kept separate from modkit so a module's own ports type never imports modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
	Prefix() string
}
