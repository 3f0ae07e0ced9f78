package problem

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"dendron/internal/genotype"
	"dendron/internal/model"
	"dendron/internal/tree"
)

var (
	ErrProblemExists   = errors.New("problem already registered")
	ErrProblemNotFound = errors.New("problem not found")
)

// Problem supplies everything run-specific, resolved once before a run
// starts: the legal operators and leaves, the fitness cases, the fitness
// measure, the run parameters, and the termination rule.
type Problem interface {
	Name() string
	FunctionSet() []genotype.FunctionSpec
	TerminalSet() []genotype.TerminalSpec

	// FitnessCases returns the problem's evaluation data, fixed for the run.
	// The engine treats it as opaque and hands it back to Fitness unchanged.
	FitnessCases() any

	// Fitness scores one program against the cases. Standardized fitness is
	// lower-is-better and >= 0; hits counts cases solved within tolerance.
	Fitness(program tree.Node, cases any) (standardized float64, hits int, err error)

	// Parameters populates the run configuration. Called once before
	// population creation.
	Parameters(cfg *model.RunConfig)

	// Terminate reports whether the run should continue after the given
	// generation.
	Terminate(generation, maxGenerations int, bestStandardized float64, bestHits int) bool
}

type Factory func() Problem

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a problem resolvable by name.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("problem name is required")
	}
	if factory == nil {
		return fmt.Errorf("problem factory is required")
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrProblemExists, name)
	}
	registry[name] = factory
	return nil
}

// Resolve instantiates a registered problem.
func Resolve(name string) (Problem, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, name)
	}
	return factory(), nil
}

// Names lists the registered problems in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
