package domain

import (
	"strings"
	"sync"
)

// UnitKind classifies a build unit.
type UnitKind string

const (
	// UnitExecutable links a native executable.
	UnitExecutable UnitKind = "executable"
	// UnitSharedLibrary links a native shared (dynamic) library.
	UnitSharedLibrary UnitKind = "shared-library"
	// UnitMakeStep is a custom per-platform build step. Its target platform is
	// embedded in its name: the name starts with the platform name and ends
	// with the literal "Make".
	UnitMakeStep UnitKind = "make-step"
)

// LinkProducing reports whether the kind produces a linked artifact whose
// output path is subject to per-platform relocation.
func (k UnitKind) LinkProducing() bool {
	return k == UnitExecutable || k == UnitSharedLibrary
}

// Valid reports whether the kind is one of the known kinds.
func (k UnitKind) Valid() bool {
	return k.LinkProducing() || k == UnitMakeStep
}

// PlatformResolver yields a build unit's target platform name. Resolution may
// only be possible after the unit is declared, so it runs lazily on first use.
type PlatformResolver func() string

// BuildUnit represents one native build target. Its dependency edges live in
// the Graph; the unit itself carries the command to run and the output path,
// which is rewritten exactly once when the graph is finalized.
type BuildUnit struct {
	Name        InternedString
	Kind        UnitKind
	Command     []string
	Environment map[string]string
	OutputPath  string

	resolve      PlatformResolver
	platformOnce sync.Once
	platform     string
}

// NewBuildUnit creates a unit whose target platform is known at declaration time.
func NewBuildUnit(name string, kind UnitKind, platform string) *BuildUnit {
	return &BuildUnit{
		Name:    NewInternedString(name),
		Kind:    kind,
		resolve: func() string { return platform },
	}
}

// NewDeferredBuildUnit creates a unit whose target platform is resolved lazily
// via the given resolver, the first time TargetPlatform is called.
func NewDeferredBuildUnit(name string, kind UnitKind, resolve PlatformResolver) *BuildUnit {
	return &BuildUnit{
		Name:    NewInternedString(name),
		Kind:    kind,
		resolve: resolve,
	}
}

// TargetPlatform resolves and memoizes the unit's target platform name.
// For make-step units the platform is parsed from the unit name instead.
func (u *BuildUnit) TargetPlatform() string {
	u.platformOnce.Do(func() {
		if u.resolve != nil {
			u.platform = u.resolve()
		}
	})
	return u.platform
}

// MatchesMakeStep reports whether the unit is a custom per-platform build step
// belonging to the given platform, per the <platform>...Make naming convention.
func (u *BuildUnit) MatchesMakeStep(platform string) bool {
	if u.Kind != UnitMakeStep {
		return false
	}
	name := u.Name.String()
	return strings.HasPrefix(name, platform) && strings.HasSuffix(name, "Make")
}
