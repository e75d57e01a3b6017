// Package scheduler implements the build graph executor.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeStatus represents the execution status of a graph node.
type NodeStatus string

const (
	// StatusPending indicates the node is waiting to be executed.
	StatusPending NodeStatus = "Pending"
	// StatusRunning indicates the node is currently executing.
	StatusRunning NodeStatus = "Running"
	// StatusCompleted indicates the node finished successfully.
	StatusCompleted NodeStatus = "Completed"
	// StatusFailed indicates the node execution failed.
	StatusFailed NodeStatus = "Failed"
	// StatusSkipped indicates the node never became ready because an upstream
	// dependency failed.
	StatusSkipped NodeStatus = "Skipped"
)

// Scheduler executes a frozen, validated build graph with bounded
// parallelism. Nodes with no mutual dependency run concurrently; aggregates
// are pure barriers except for staging aggregates, which run the staging copy
// once their build aggregate completes.
type Scheduler struct {
	backend   ports.Backend
	guard     ports.ToolchainVerifier
	stager    ports.Stager
	telemetry ports.Telemetry

	mu         sync.RWMutex
	nodeStatus map[domain.InternedString]NodeStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	backend ports.Backend,
	guard ports.ToolchainVerifier,
	stager ports.Stager,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		backend:    backend,
		guard:      guard,
		stager:     stager,
		telemetry:  telemetry,
		nodeStatus: make(map[domain.InternedString]NodeStatus),
	}
}

// Status returns the recorded status of a node.
func (s *Scheduler) Status(name domain.InternedString) NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodeStatus[name]
}

func (s *Scheduler) updateStatus(name domain.InternedString, status NodeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodeStatus[name] = status
}

// Run executes the dependency closure of the given target nodes with the
// specified parallelism. Nodes outside the closure are never scheduled.
// The graph must be frozen; Run validates it (cycle check, execution order)
// before starting. The first failure cancels the invocation: running nodes
// observe the cancelled context and nodes downstream of a failure never start.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, targets []domain.InternedString, parallelism int) error {
	if !graph.Frozen() {
		return zerr.New("graph must be frozen before execution")
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	needed, err := closure(graph, targets)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := s.newRunState(ctx, cancel, graph, needed, parallelism)

	for name := range needed {
		s.updateStatus(name, StatusPending)
	}

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		// Workers always deliver a result, even on cancellation, so blocking
		// here cannot deadlock: active > 0 whenever we reach this point.
		res := <-state.resultsCh
		state.handleResult(res)
	}

	s.markSkipped(state)

	if state.errs != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, state.errs)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// markSkipped records nodes that never ran because an upstream failed.
func (s *Scheduler) markSkipped(state *runState) {
	if state.errs == nil {
		return
	}
	for name := range state.inDegree {
		if s.Status(name) == StatusPending {
			s.updateStatus(name, StatusSkipped)
		}
	}
}

type result struct {
	node domain.InternedString
	err  error
}

type runState struct {
	inDegree    map[domain.InternedString]int
	nodes       map[domain.InternedString]*domain.Node
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	cancel      context.CancelFunc
	graph       *domain.Graph
	parallelism int
	s           *Scheduler
}

// closure collects the targets and everything they transitively depend on.
func closure(graph *domain.Graph, targets []domain.InternedString) (map[domain.InternedString]bool, error) {
	needed := make(map[domain.InternedString]bool)
	var visit func(name domain.InternedString) error
	visit = func(name domain.InternedString) error {
		if needed[name] {
			return nil
		}
		node, err := graph.Node(name)
		if err != nil {
			return err
		}
		needed[name] = true
		for _, dep := range node.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, target := range targets {
		if err := visit(target); err != nil {
			return nil, err
		}
	}
	return needed, nil
}

func (s *Scheduler) newRunState(ctx context.Context, cancel context.CancelFunc, graph *domain.Graph, needed map[domain.InternedString]bool, parallelism int) *runState {
	inDegree := make(map[domain.InternedString]int, len(needed))
	nodes := make(map[domain.InternedString]*domain.Node, len(needed))

	for node := range graph.Walk() {
		if !needed[node.Name] {
			continue
		}
		nodes[node.Name] = node
		inDegree[node.Name] = len(node.Dependencies())
	}

	var ready []domain.InternedString
	// Walk order keeps the ready seed deterministic.
	for node := range graph.Walk() {
		if needed[node.Name] && inDegree[node.Name] == 0 {
			ready = append(ready, node.Name)
		}
	}

	return &runState{
		inDegree:    inDegree,
		nodes:       nodes,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		cancel:      cancel,
		graph:       graph,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && (len(state.ready) == 0 || state.ctx.Err() != nil)
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(name, StatusRunning)

		go func(n *domain.Node) {
			state.resultsCh <- result{node: n.Name, err: state.executeNode(state.ctx, n)}
		}(state.nodes[name])
	}
}

// executeNode dispatches on the node kind. Every node is recorded as a
// telemetry vertex.
func (state *runState) executeNode(ctx context.Context, node *domain.Node) error {
	vertex := state.s.telemetry.Record(ctx, node.Name.String())

	var err error
	switch node.Kind {
	case domain.NodeGuard:
		err = state.s.guard.Verify(ctx)
	case domain.NodeUnit:
		err = state.s.backend.Link(ctx, node.Unit, nil, vertex.Stdout())
	case domain.NodeAggregate:
		// Build aggregates are pure barriers. Staging aggregates copy their
		// platform's outputs once the build aggregate has completed.
		if node.Staging {
			err = state.s.stager.Stage(ctx, node.Platform)
		}
	}

	vertex.Complete(err)
	return err
}

func (state *runState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "node execution failed"), "node", res.node.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.node, StatusFailed)
		// First failure stops the invocation.
		state.cancel()
		return
	}

	state.s.updateStatus(res.node, StatusCompleted)
	for _, dep := range state.graph.Dependents(res.node) {
		if _, scheduled := state.inDegree[dep]; !scheduled {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
