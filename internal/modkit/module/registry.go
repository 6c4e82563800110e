package module

import (
	"sort"
	"sync"
)

// process wide registry filled while the API is mounted; reads after that are lock-free in practice
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register records the ports of a mounted module; modules without ports are listed with nil
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	var zero T
	if !ok {
		return zero, false
	}
	return portIn[T](v, zero)
}

// Names lists the registered modules in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
