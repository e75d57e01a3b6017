package domain

import (
	"sync"

	"go.trai.ch/zerr"
)

// Platform describes one native build target as a named
// (architecture, operating system) pair. Immutable once registered.
type Platform struct {
	Name string
	Arch string
	OS   string
}

// Well-known architecture and OS identifiers used by the default registry.
const (
	ArchX86     = "x86"
	ArchX86_64  = "x86-64"
	ArchAarch64 = "aarch64"

	OSWindows = "windows"
	OSLinux   = "linux"
	OSMac     = "macos"
)

// Registry is the catalog of supported target platforms, keyed by name.
// It is populated at configuration time and frozen before execution begins.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Platform
	order  []string
	frozen bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Platform),
	}
}

// DefaultRegistry returns a Registry populated with the stock platforms:
// both Windows architectures, 64-bit Linux and 64-bit macOS.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []Platform{
		{Name: "win32", Arch: ArchX86, OS: OSWindows},
		{Name: "win64", Arch: ArchX86_64, OS: OSWindows},
		{Name: "linux64", Arch: ArchX86_64, OS: OSLinux},
		{Name: "mac64", Arch: ArchAarch64, OS: OSMac},
	} {
		// Stock names cannot collide in an empty registry.
		_ = r.Register(p.Name, p.Arch, p.OS)
	}
	return r
}

// Register adds a platform to the registry.
// It returns an error if the name is already taken or the registry is frozen.
func (r *Registry) Register(name, arch, os string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return zerr.With(zerr.Wrap(ErrRegistryFrozen, "cannot register platform"), "platform", name)
	}
	if _, exists := r.byName[name]; exists {
		return zerr.With(zerr.Wrap(ErrPlatformAlreadyExists, "cannot register platform"), "platform", name)
	}
	r.byName[name] = Platform{Name: name, Arch: arch, OS: os}
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the platform registered under name.
func (r *Registry) Lookup(name string) (Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byName[name]
	if !ok {
		return Platform{}, zerr.With(zerr.Wrap(ErrPlatformNotFound, "platform lookup failed"), "platform", name)
	}
	return p, nil
}

// Names returns all registered platform names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Freeze forbids further registration. Lookups remain available.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}
