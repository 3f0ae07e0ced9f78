package evo

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"dendron/internal/genotype"
	"dendron/internal/model"
	"dendron/internal/problem"
	"dendron/internal/tree"
)

// Reporter observes a run: once per generation with the ranked population,
// and once at run end with the best of run. Rendering is the reporter's
// concern, not the monitor's.
type Reporter interface {
	Generation(generation int, population model.Population)
	RunEnd(best model.BestOfRun)
}

type MonitorConfig struct {
	Problem        problem.Problem
	PopulationSize int
	MaxGenerations int
	Seed           int64

	// SeedPrograms fill the lowest-indexed generation-0 slots verbatim.
	SeedPrograms []tree.Node
	Reporter     Reporter
}

type RunResult struct {
	FinalPopulation  model.Population
	FitnessCases     any
	Best             model.BestOfRun
	BestByGeneration []float64
	Diagnostics      []model.GenerationDiagnostics
	Generations      int
	Evaluations      int
	Config           model.RunConfig
	BuildStats       genotype.BuildStats
}

// PopulationMonitor drives the generational loop: breed, evaluate, rank,
// track the best of run, report, and consult the problem's termination
// predicate. Single-threaded; one seeded random stream consumed in a fixed
// order makes runs reproducible.
type PopulationMonitor struct {
	cfg       MonitorConfig
	run       model.RunConfig
	rng       *rand.Rand
	generator genotype.Generator
	selector  Selector
	cases     any
}

func NewPopulationMonitor(cfg MonitorConfig) (*PopulationMonitor, error) {
	if cfg.Problem == nil {
		return nil, fmt.Errorf("%w: problem is required", ErrConfiguration)
	}
	if cfg.MaxGenerations < 0 {
		return nil, fmt.Errorf("%w: max generations must be >= 0, got %d", ErrConfiguration, cfg.MaxGenerations)
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be > 0, got %d", ErrConfiguration, cfg.PopulationSize)
	}

	run := model.RunConfig{}
	cfg.Problem.Parameters(&run)
	run.Seed = cfg.Seed
	if run.Selection == model.SelectionOverSelection && cfg.PopulationSize < overSelectionMinPopulation {
		return nil, fmt.Errorf("%w: over-selection requires population >= %d, got %d",
			ErrConfiguration, overSelectionMinPopulation, cfg.PopulationSize)
	}
	selector, err := SelectorFor(run.Selection)
	if err != nil {
		return nil, err
	}

	return &PopulationMonitor{
		cfg: cfg,
		run: run,
		rng: rand.New(rand.NewSource(run.Seed)),
		generator: genotype.Generator{
			Functions: cfg.Problem.FunctionSet(),
			Terminals: cfg.Problem.TerminalSet(),
		},
		selector: selector,
		cases:    cfg.Problem.FitnessCases(),
	}, nil
}

// RunConfig exposes the problem-defined configuration the monitor runs under.
func (m *PopulationMonitor) RunConfig() model.RunConfig {
	return m.run
}

func (m *PopulationMonitor) Run(ctx context.Context) (RunResult, error) {
	builder := genotype.Builder{Generator: m.generator, Config: m.run}
	population, buildStats, err := builder.Build(m.rng, m.cfg.PopulationSize, m.cfg.SeedPrograms)
	if err != nil {
		return RunResult{}, err
	}

	// Sentinel best so generation 0 always improves on it.
	best := model.BestOfRun{
		Individual: model.Individual{StandardizedFitness: math.MaxFloat64},
		Generation: -1,
	}
	pipeline := Pipeline{Problem: m.cfg.Problem, Cases: m.cases}
	bestHistory := make([]float64, 0, m.cfg.MaxGenerations+1)
	diagnostics := make([]model.GenerationDiagnostics, 0, m.cfg.MaxGenerations+1)
	evaluations := 0

	generation := 0
	for {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}
		if generation > 0 {
			if err := m.breed(population); err != nil {
				return RunResult{}, err
			}
		}
		if err := pipeline.Run(population); err != nil {
			return RunResult{}, err
		}
		evaluations += len(population)

		leader := population[0]
		if leader.StandardizedFitness < best.Individual.StandardizedFitness {
			best = model.BestOfRun{Individual: snapshot(leader), Generation: generation}
		}
		bestHistory = append(bestHistory, leader.StandardizedFitness)
		diagnostics = append(diagnostics, summarizeGeneration(population, generation))
		if m.cfg.Reporter != nil {
			m.cfg.Reporter.Generation(generation, population)
		}

		if !m.cfg.Problem.Terminate(generation, m.cfg.MaxGenerations, leader.StandardizedFitness, leader.Hits) {
			break
		}
		generation++
	}

	if m.cfg.Reporter != nil {
		m.cfg.Reporter.RunEnd(best)
	}
	return RunResult{
		FinalPopulation:  population,
		FitnessCases:     m.cases,
		Best:             best,
		BestByGeneration: bestHistory,
		Diagnostics:      diagnostics,
		Generations:      generation + 1,
		Evaluations:      evaluations,
		Config:           m.run,
		BuildStats:       buildStats,
	}, nil
}

// breed fills a same-sized scratch buffer from the ranked population, then
// commits it back into the population slots. Crossover consumes two slots,
// so the realized fractions may slightly overshoot the configured thresholds
// at the boundary.
func (m *PopulationMonitor) breed(population model.Population) error {
	size := len(population)
	scratch := make([]tree.Node, 0, size)
	crossoverShare := m.run.CrossoverFunctionFraction + m.run.CrossoverAnyFraction

	for len(scratch) < size {
		ratio := float64(len(scratch)) / float64(size)
		parent, err := m.selector.Pick(m.rng, population)
		if err != nil {
			return err
		}
		switch {
		case ratio < crossoverShare && size-len(scratch) >= 2:
			mate, err := m.selector.Pick(m.rng, population)
			if err != nil {
				return err
			}
			scheme := tree.AnyPoints
			if ratio < m.run.CrossoverFunctionFraction {
				scheme = tree.FunctionPoints
			}
			maleChild, femaleChild, err := Crossover(m.rng, scheme, parent.Program, mate.Program, m.run.MaxDepthCrossover)
			if err != nil {
				return err
			}
			scratch = append(scratch, maleChild, femaleChild)
		case ratio < crossoverShare+m.run.ReproductionFraction:
			scratch = append(scratch, parent.Program.Clone())
		default:
			child, err := Mutate(m.rng, m.generator, parent.Program, m.run.MaxDepthMutation)
			if err != nil {
				return err
			}
			scratch = append(scratch, child)
		}
	}

	// Fitness fields stay stale here; the pipeline's zero/evaluate steps run
	// immediately after.
	for i, program := range scratch {
		population[i].Program = program
	}
	return nil
}

func snapshot(individual *model.Individual) model.Individual {
	out := *individual
	out.Program = individual.Program.Clone()
	return out
}

func summarizeGeneration(population model.Population, generation int) model.GenerationDiagnostics {
	totalStandardized := 0.0
	totalDepth := 0
	totalSize := 0
	for _, individual := range population {
		totalStandardized += individual.StandardizedFitness
		totalDepth += individual.Program.Depth()
		totalSize += individual.Program.Size()
	}
	count := float64(len(population))
	return model.GenerationDiagnostics{
		Generation:       generation,
		BestStandardized: population[0].StandardizedFitness,
		MeanStandardized: totalStandardized / count,
		BestHits:         population[0].Hits,
		MeanDepth:        float64(totalDepth) / count,
		MeanSize:         float64(totalSize) / count,
	}
}
