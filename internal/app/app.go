// Package app implements the application layer for nativ.
package app

import (
	"context"
	"runtime"

	"go.trai.ch/nativ/internal/adapters/stage"
	"go.trai.ch/nativ/internal/adapters/toolchain"
	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/nativ/internal/engine/binder"
	"go.trai.ch/nativ/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic: it loads the project, constructs
// and freezes the build graph, and hands it to the scheduler.
type App struct {
	loader    ports.ConfigLoader
	backend   ports.Backend
	telemetry ports.Telemetry
	logger    ports.Logger

	configPath  string
	parallelism int
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, backend ports.Backend, telemetry ports.Telemetry, logger ports.Logger) *App {
	return &App{
		loader:      loader,
		backend:     backend,
		telemetry:   telemetry,
		logger:      logger,
		configPath:  domain.ConfigFileName,
		parallelism: runtime.NumCPU(),
	}
}

// SetConfigPath overrides the configuration file path.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// SetParallelism overrides the scheduler parallelism.
func (a *App) SetParallelism(n int) {
	if n > 0 {
		a.parallelism = n
	}
}

// Build runs the build aggregates for the requested platforms.
// With no platforms given it builds for the host platform, so a bare build
// invocation always exercises the toolchain check.
func (a *App) Build(ctx context.Context, platforms []string) error {
	return a.run(ctx, platforms, false)
}

// Stage runs the staging aggregates for the requested platforms: each builds
// the platform and then copies its outputs into the artifact repository.
func (a *App) Stage(ctx context.Context, platforms []string) error {
	return a.run(ctx, platforms, true)
}

// Platforms loads the project and returns the full platform catalog, stock
// platforms plus any the project registers.
func (a *App) Platforms() ([]domain.Platform, error) {
	project, err := a.loader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	registry, err := buildRegistry(project)
	if err != nil {
		return nil, err
	}

	var platforms []domain.Platform
	for _, name := range registry.Names() {
		p, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

func (a *App) run(ctx context.Context, platforms []string, staging bool) error {
	project, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	registry, err := buildRegistry(project)
	if err != nil {
		return err
	}

	if len(platforms) == 0 {
		host, err := domain.HostPlatformName()
		if err != nil {
			return err
		}
		platforms = []string{host}
	}

	graph, targets, err := a.constructGraph(project, registry, platforms, staging)
	if err != nil {
		return err
	}

	guard := toolchain.NewGuard(project.Toolchain, a.configPath)
	stager := stage.NewStager(project.Root, project.Repository, a.logger)
	sched := scheduler.NewScheduler(a.backend, guard, stager, a.telemetry)

	return sched.Run(ctx, graph, targets, a.parallelism)
}

// constructGraph performs the whole configuration phase: declare units,
// materialize the requested aggregates and freeze the graph.
func (a *App) constructGraph(
	project *domain.Project,
	registry *domain.Registry,
	platforms []string,
	staging bool,
) (*domain.Graph, []domain.InternedString, error) {
	graph := domain.NewGraph()
	b, err := binder.New(graph, registry, project.Root, a.logger)
	if err != nil {
		return nil, nil, err
	}

	for _, unit := range project.Units {
		if err := b.RegisterUnit(unit); err != nil {
			return nil, nil, err
		}
	}

	targets := make([]domain.InternedString, 0, len(platforms))
	for _, platform := range platforms {
		var (
			name domain.InternedString
			err  error
		)
		if staging {
			name, err = b.StageAggregate(platform)
		} else {
			name, err = b.BuildAggregate(platform)
		}
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, name)
	}

	if err := b.Freeze(); err != nil {
		return nil, nil, err
	}
	return graph, targets, nil
}

func buildRegistry(project *domain.Project) (*domain.Registry, error) {
	registry := domain.DefaultRegistry()
	for _, p := range project.Platforms {
		if err := registry.Register(p.Name, p.Arch, p.OS); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
