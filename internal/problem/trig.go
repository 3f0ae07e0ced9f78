package problem

import (
	"math"

	"dendron/internal/genotype"
	"dendron/internal/model"
	"dendron/internal/tree"
)

func init() {
	if err := Register("trig-regression", func() Problem { return TrigRegression{} }); err != nil {
		panic(err)
	}
}

const (
	trigCaseCount = 20
	trigTolerance = 0.05
)

// TrigRegression searches for sin(2x) + cos(x) over [0, 2*pi), exercising the
// unary operators and both ephemeral-constant kinds.
type TrigRegression struct{}

func (TrigRegression) Name() string {
	return "trig-regression"
}

func (TrigRegression) FunctionSet() []genotype.FunctionSpec {
	return []genotype.FunctionSpec{
		{Op: tree.OpAdd, Arity: 2},
		{Op: tree.OpSub, Arity: 2},
		{Op: tree.OpMul, Arity: 2},
		{Op: tree.OpDiv, Arity: 2},
		{Op: tree.OpSin, Arity: 1},
		{Op: tree.OpCos, Arity: 1},
	}
}

func (TrigRegression) TerminalSet() []genotype.TerminalSpec {
	return []genotype.TerminalSpec{
		{Kind: genotype.TerminalVariable, Variables: []string{"x"}},
		{Kind: genotype.TerminalFloatConstant},
		{Kind: genotype.TerminalIntConstant},
	}
}

func (TrigRegression) FitnessCases() any {
	cases := make([]RegressionCase, trigCaseCount)
	for i := range cases {
		x := 2 * math.Pi * float64(i) / trigCaseCount
		cases[i] = RegressionCase{X: x, Target: math.Sin(2*x) + math.Cos(x)}
	}
	return cases
}

func (TrigRegression) Fitness(program tree.Node, cases any) (float64, int, error) {
	return regressionFitness(program, cases, trigTolerance)
}

func (TrigRegression) Parameters(cfg *model.RunConfig) {
	cfg.MinDepthNew = 2
	cfg.MaxDepthNew = 6
	cfg.MaxDepthCrossover = 17
	cfg.MaxDepthMutation = 4
	cfg.ReproductionFraction = 0.1
	cfg.CrossoverFunctionFraction = 0.2
	cfg.CrossoverAnyFraction = 0.7
	cfg.Selection = model.SelectionTournament
	cfg.Generation = model.GenerationRamped
	cfg.FitnessCases = trigCaseCount
}

func (TrigRegression) Terminate(generation, maxGenerations int, _ float64, bestHits int) bool {
	return generation < maxGenerations && bestHits < trigCaseCount
}
