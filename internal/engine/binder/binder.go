// Package binder constructs the build graph. It wires build units to their
// platform aggregates and to the toolchain guard, materializes aggregates on
// first request, and finalizes the graph before execution.
package binder

import (
	"fmt"
	"sync"

	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// GuardNodeName is the name of the singleton toolchain guard node.
	GuardNodeName = "verifyToolchain"

	buildAggregatePrefix = "buildNatives_"
	stageAggregatePrefix = "prebuildNatives_"
)

// BuildAggregateName returns the task name of the build aggregate for a platform.
func BuildAggregateName(platform string) string {
	return buildAggregatePrefix + platform
}

// StageAggregateName returns the task name of the staging aggregate for a platform.
func StageAggregateName(platform string) string {
	return stageAggregatePrefix + platform
}

// Binder owns graph construction. Units and aggregates may be declared in any
// order: requesting an aggregate first scans all currently-declared units,
// then subscribes to future declarations, so membership never depends on
// configuration ordering.
//
// All methods are safe for concurrent use during the configuration phase.
// After Freeze the graph is immutable and further declarations fail.
type Binder struct {
	graph       *domain.Graph
	registry    *domain.Registry
	logger      ports.Logger
	projectRoot string

	mu          sync.Mutex
	units       []*domain.BuildUnit
	subscribers []func(*domain.BuildUnit) error
	buildAggs   map[string]domain.InternedString
	stageAggs   map[string]domain.InternedString
	guard       domain.InternedString
	frozen      bool
}

// New creates a Binder over the given graph and platform registry and adds
// the singleton toolchain guard node.
func New(graph *domain.Graph, registry *domain.Registry, projectRoot string, logger ports.Logger) (*Binder, error) {
	guard := domain.NewInternedString(GuardNodeName)
	if err := graph.AddNode(&domain.Node{Name: guard, Kind: domain.NodeGuard}); err != nil {
		return nil, err
	}

	return &Binder{
		graph:       graph,
		registry:    registry,
		logger:      logger,
		projectRoot: projectRoot,
		buildAggs:   make(map[string]domain.InternedString),
		stageAggs:   make(map[string]domain.InternedString),
		guard:       guard,
	}, nil
}

// Graph returns the underlying build graph.
func (b *Binder) Graph() *domain.Graph {
	return b.graph
}

// RegisterUnit declares a build unit. If any aggregates were already
// requested, the unit is bound to each of them immediately.
func (b *Binder) RegisterUnit(unit *domain.BuildUnit) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return zerr.With(zerr.Wrap(domain.ErrGraphFrozen, "cannot register unit"), "unit", unit.Name.String())
	}
	if !unit.Kind.Valid() {
		err := zerr.Wrap(domain.ErrUnknownUnitKind, "cannot register unit")
		err = zerr.With(err, "unit", unit.Name.String())
		return zerr.With(err, "kind", string(unit.Kind))
	}

	node := &domain.Node{Name: unit.Name, Kind: domain.NodeUnit, Unit: unit}
	if err := b.graph.AddNode(node); err != nil {
		return err
	}
	b.units = append(b.units, unit)

	for _, subscribe := range b.subscribers {
		if err := subscribe(unit); err != nil {
			return err
		}
	}
	return nil
}

// BuildAggregate materializes the buildNatives_<platform> aggregate on first
// request and returns its node name. Subsequent requests for the same
// platform return the existing aggregate.
//
// A platform name absent from the registry is accepted: the aggregate is
// created (and stays empty unless matching units exist) and a warning is
// logged. This mirrors the permissive behavior of native build scripts where
// aggregate names are not validated against the platform catalog.
func (b *Binder) BuildAggregate(platform string) (domain.InternedString, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buildAggregateLocked(platform)
}

func (b *Binder) buildAggregateLocked(platform string) (domain.InternedString, error) {
	if name, ok := b.buildAggs[platform]; ok {
		return name, nil
	}
	if b.frozen {
		return domain.InternedString{}, zerr.With(zerr.Wrap(domain.ErrGraphFrozen, "cannot create aggregate"), "platform", platform)
	}

	if _, err := b.registry.Lookup(platform); err != nil {
		b.logger.Warn(fmt.Sprintf("platform %q is not registered; aggregate %q will have no members", platform, BuildAggregateName(platform)))
	}

	name := domain.NewInternedString(BuildAggregateName(platform))
	node := &domain.Node{Name: name, Kind: domain.NodeAggregate, Platform: platform}
	if err := b.graph.AddNode(node); err != nil {
		return domain.InternedString{}, err
	}

	// Phase one: bind every currently-declared unit.
	for _, unit := range b.units {
		if err := b.bindLocked(unit, name, platform); err != nil {
			return domain.InternedString{}, err
		}
	}

	// Phase two: subscribe to units declared after this aggregate, so
	// membership never depends on declaration order.
	b.subscribers = append(b.subscribers, func(unit *domain.BuildUnit) error {
		return b.bindLocked(unit, name, platform)
	})

	b.buildAggs[platform] = name
	return name, nil
}

// StageAggregate materializes the prebuildNatives_<platform> aggregate, which
// depends on the platform's build aggregate (created transitively if needed)
// and stages its outputs once the build completes.
func (b *Binder) StageAggregate(platform string) (domain.InternedString, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name, ok := b.stageAggs[platform]; ok {
		return name, nil
	}
	if b.frozen {
		return domain.InternedString{}, zerr.With(zerr.Wrap(domain.ErrGraphFrozen, "cannot create aggregate"), "platform", platform)
	}

	buildName, err := b.buildAggregateLocked(platform)
	if err != nil {
		return domain.InternedString{}, err
	}

	name := domain.NewInternedString(StageAggregateName(platform))
	node := &domain.Node{Name: name, Kind: domain.NodeAggregate, Platform: platform, Staging: true}
	if err := b.graph.AddNode(node); err != nil {
		return domain.InternedString{}, err
	}
	if err := b.graph.AddEdge(name, buildName); err != nil {
		return domain.InternedString{}, err
	}

	b.stageAggs[platform] = name
	return name, nil
}

// bindLocked wires a unit into an aggregate if it belongs to the aggregate's
// platform. Link-producing units resolve their target platform lazily, here,
// at bind time; make-step units match purely on their naming convention.
// Non-members are left untouched. Idempotent: duplicate edges are not created.
func (b *Binder) bindLocked(unit *domain.BuildUnit, aggregate domain.InternedString, platform string) error {
	switch {
	case unit.Kind.LinkProducing():
		if unit.TargetPlatform() != platform {
			return nil
		}
	case unit.Kind == domain.UnitMakeStep:
		if !unit.MatchesMakeStep(platform) {
			return nil
		}
	default:
		return nil
	}

	if err := b.graph.AddEdge(aggregate, unit.Name); err != nil {
		return err
	}
	return b.graph.AddEdge(unit.Name, b.guard)
}

// Freeze finalizes the graph. The unit set is closed, every link-producing
// unit's output path is rewritten to the per-platform layout, the platform
// registry is frozen and the graph becomes immutable. Must be called exactly
// once, before execution begins.
func (b *Binder) Freeze() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return domain.ErrGraphFrozen
	}

	for _, unit := range b.units {
		if !unit.Kind.LinkProducing() || unit.OutputPath == "" {
			continue
		}
		unit.OutputPath = domain.RelocatedPath(b.projectRoot, unit.TargetPlatform(), unit.OutputPath)
	}

	b.registry.Freeze()
	b.frozen = true
	return b.graph.Freeze()
}
