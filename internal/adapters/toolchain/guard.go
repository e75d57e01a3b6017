// Package toolchain implements the native toolchain presence check.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolchainVerifier = (*Guard)(nil)

// Guard verifies that the required native toolchain is installed on the host.
//
// The check runs lazily, the first time any build unit is about to execute,
// and at most once per invocation: concurrent callers share a single
// verification and all observe the same outcome.
type Guard struct {
	spec       domain.ToolchainSpec
	configPath string
	hostOS     string
	statFn     func(string) (os.FileInfo, error)

	once    sync.Once
	outcome error
}

// Option configures a Guard.
type Option func(*Guard)

// WithHostOS overrides the host operating system. Used by tests.
func WithHostOS(goos string) Option {
	return func(g *Guard) { g.hostOS = goos }
}

// WithStatFn overrides the filesystem lookup. Used by tests.
func WithStatFn(fn func(string) (os.FileInfo, error)) Option {
	return func(g *Guard) { g.statFn = fn }
}

// NewGuard creates a Guard for the given toolchain requirements. configPath
// names the configuration file they came from, so failure messages can point
// the user at the right place to correct it.
func NewGuard(spec domain.ToolchainSpec, configPath string, opts ...Option) *Guard {
	g := &Guard{
		spec:       spec,
		configPath: configPath,
		hostOS:     runtime.GOOS,
		statFn:     os.Stat,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Verify checks toolchain presence on first call and memoizes the outcome.
// Subsequent calls return immediately with the memoized result.
func (g *Guard) Verify(_ context.Context) error {
	g.once.Do(func() {
		g.outcome = g.check()
	})
	return g.outcome
}

func (g *Guard) check() error {
	candidates := g.spec.Paths[g.hostOS]
	if len(candidates) == 0 {
		// This host OS carries no toolchain requirement.
		return nil
	}

	for _, dir := range candidates {
		info, err := g.statFn(dir)
		if err == nil && info.IsDir() {
			return nil
		}
	}

	err := zerr.Wrap(domain.ErrToolchainMissing, fmt.Sprintf(
		"install the native toolchain under one of [%s], or correct toolchain.paths.%s in %s",
		strings.Join(candidates, ", "), g.hostOS, g.configPath))
	err = zerr.With(err, "expected_install_paths", strings.Join(candidates, ", "))
	err = zerr.With(err, "config_file", g.configPath)
	return zerr.With(err, "config_key", "toolchain.paths."+g.hostOS)
}
