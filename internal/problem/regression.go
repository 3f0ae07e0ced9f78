package problem

import (
	"fmt"
	"math"

	"dendron/internal/genotype"
	"dendron/internal/model"
	"dendron/internal/tree"
)

func init() {
	if err := Register("quartic-regression", func() Problem { return QuarticRegression{} }); err != nil {
		panic(err)
	}
}

// RegressionCase is one (x, target) sample for a symbolic-regression problem.
type RegressionCase struct {
	X      float64
	Target float64
}

const (
	quarticCaseCount = 50
	quarticTolerance = 0.01
)

// QuarticRegression searches for x^4 + x^3 + x^2 + x over [-1, 1).
type QuarticRegression struct{}

func (QuarticRegression) Name() string {
	return "quartic-regression"
}

func (QuarticRegression) FunctionSet() []genotype.FunctionSpec {
	return []genotype.FunctionSpec{
		{Op: tree.OpAdd, Arity: 2},
		{Op: tree.OpSub, Arity: 2},
		{Op: tree.OpMul, Arity: 2},
		{Op: tree.OpDiv, Arity: 2},
	}
}

func (QuarticRegression) TerminalSet() []genotype.TerminalSpec {
	return []genotype.TerminalSpec{
		{Kind: genotype.TerminalVariable, Variables: []string{"x"}},
	}
}

func (QuarticRegression) FitnessCases() any {
	cases := make([]RegressionCase, quarticCaseCount)
	for i := range cases {
		x := -1.0 + 2.0*float64(i)/quarticCaseCount
		cases[i] = RegressionCase{X: x, Target: x*x*x*x + x*x*x + x*x + x}
	}
	return cases
}

func (QuarticRegression) Fitness(program tree.Node, cases any) (float64, int, error) {
	return regressionFitness(program, cases, quarticTolerance)
}

func (QuarticRegression) Parameters(cfg *model.RunConfig) {
	cfg.MinDepthNew = 2
	cfg.MaxDepthNew = 6
	cfg.MaxDepthCrossover = 17
	cfg.MaxDepthMutation = 4
	cfg.ReproductionFraction = 0.1
	cfg.CrossoverFunctionFraction = 0.2
	cfg.CrossoverAnyFraction = 0.7
	cfg.Selection = model.SelectionFitnessProportional
	cfg.Generation = model.GenerationRamped
	cfg.FitnessCases = quarticCaseCount
}

func (QuarticRegression) Terminate(generation, maxGenerations int, _ float64, bestHits int) bool {
	return generation < maxGenerations && bestHits < quarticCaseCount
}

// regressionFitness sums absolute errors over the cases; a case within the
// tolerance counts as a hit. Each case is evaluated against a fresh binding
// environment, never shared across cases.
func regressionFitness(program tree.Node, cases any, tolerance float64) (float64, int, error) {
	samples, ok := cases.([]RegressionCase)
	if !ok {
		return 0, 0, fmt.Errorf("regression fitness requires []RegressionCase, got %T", cases)
	}

	standardized := 0.0
	hits := 0
	for _, sample := range samples {
		value, err := tree.Eval(program, tree.Env{"x": sample.X})
		if err != nil {
			return 0, 0, err
		}
		delta := math.Abs(value - sample.Target)
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			delta = math.MaxFloat32
		}
		standardized += delta
		if delta < tolerance {
			hits++
		}
	}
	return standardized, hits, nil
}
