package problem

import (
	"errors"
	"math"
	"testing"

	"dendron/internal/model"
	"dendron/internal/tree"
)

func TestRegistryResolvesBuiltins(t *testing.T) {
	for _, name := range []string{"quartic-regression", "trig-regression"} {
		prob, err := Resolve(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		if prob.Name() != name {
			t.Fatalf("problem name = %s, want %s", prob.Name(), name)
		}
	}
}

func TestRegistryUnknownProblem(t *testing.T) {
	_, err := Resolve("hexapawn")
	if !errors.Is(err, ErrProblemNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	err := Register("quartic-regression", func() Problem { return QuarticRegression{} })
	if !errors.Is(err, ErrProblemExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected at least the builtin problems, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestQuarticFitnessPerfectProgram(t *testing.T) {
	x := func() tree.Node { return &tree.Variable{Name: "x"} }
	mul := func(l, r tree.Node) tree.Node { return &tree.Binary{Op: tree.OpMul, Left: l, Right: r} }
	add := func(l, r tree.Node) tree.Node { return &tree.Binary{Op: tree.OpAdd, Left: l, Right: r} }
	perfect := add(
		add(mul(mul(mul(x(), x()), x()), x()), mul(mul(x(), x()), x())),
		add(mul(x(), x()), x()),
	)

	prob := QuarticRegression{}
	standardized, hits, err := prob.Fitness(perfect, prob.FitnessCases())
	if err != nil {
		t.Fatalf("fitness: %v", err)
	}
	if standardized > 1e-9 {
		t.Fatalf("standardized fitness = %v, want 0", standardized)
	}
	if hits != 50 {
		t.Fatalf("hits = %d, want 50", hits)
	}
}

func TestQuarticFitnessImperfectProgram(t *testing.T) {
	prob := QuarticRegression{}
	// The constant 0 misses every case except where the target is near 0.
	standardized, hits, err := prob.Fitness(&tree.Binary{
		Op:    tree.OpSub,
		Left:  &tree.Variable{Name: "x"},
		Right: &tree.Variable{Name: "x"},
	}, prob.FitnessCases())
	if err != nil {
		t.Fatalf("fitness: %v", err)
	}
	if standardized <= 0 {
		t.Fatalf("standardized fitness = %v, want > 0", standardized)
	}
	if hits >= 50 {
		t.Fatalf("hits = %d, want below 50", hits)
	}
}

func TestRegressionFitnessClampsNonFinite(t *testing.T) {
	prob := QuarticRegression{}
	// sub of an enormous product can overflow to +Inf for some x; the huge
	// constant here forces non-finite deltas directly.
	huge := &tree.Constant{Value: math.Inf(1)}
	standardized, _, err := prob.Fitness(huge, prob.FitnessCases())
	if err != nil {
		t.Fatalf("fitness: %v", err)
	}
	if math.IsNaN(standardized) || math.IsInf(standardized, 0) {
		t.Fatalf("standardized fitness = %v, want finite", standardized)
	}
	want := float64(math.MaxFloat32) * 50
	if standardized != want {
		t.Fatalf("standardized fitness = %v, want %v", standardized, want)
	}
}

func TestRegressionFitnessWrongCases(t *testing.T) {
	prob := QuarticRegression{}
	if _, _, err := prob.Fitness(&tree.Variable{Name: "x"}, "not cases"); err == nil {
		t.Fatal("expected an error for malformed fitness cases")
	}
}

func TestQuarticParameters(t *testing.T) {
	var cfg model.RunConfig
	QuarticRegression{}.Parameters(&cfg)
	if cfg.MinDepthNew != 2 || cfg.MaxDepthNew != 6 {
		t.Fatalf("new-program depths = [%d, %d], want [2, 6]", cfg.MinDepthNew, cfg.MaxDepthNew)
	}
	if cfg.MaxDepthCrossover != 17 || cfg.MaxDepthMutation != 4 {
		t.Fatalf("operator depths = (%d, %d), want (17, 4)", cfg.MaxDepthCrossover, cfg.MaxDepthMutation)
	}
	total := cfg.ReproductionFraction + cfg.CrossoverFunctionFraction + cfg.CrossoverAnyFraction
	if math.Abs(total-1.0) > 1e-12 {
		t.Fatalf("breeding fractions sum to %v, want 1", total)
	}
	if cfg.Selection != model.SelectionFitnessProportional {
		t.Fatalf("selection = %s", cfg.Selection)
	}
	if cfg.Generation != model.GenerationRamped {
		t.Fatalf("generation = %s", cfg.Generation)
	}
}

func TestTerminatePredicates(t *testing.T) {
	quartic := QuarticRegression{}
	if !quartic.Terminate(3, 50, 12.5, 10) {
		t.Fatal("run should continue with generations and hits remaining")
	}
	if quartic.Terminate(50, 50, 12.5, 10) {
		t.Fatal("run should stop at the generation budget")
	}
	if quartic.Terminate(3, 50, 0, 50) {
		t.Fatal("run should stop once every case is a hit")
	}

	trig := TrigRegression{}
	if trig.Terminate(5, 5, 1, 0) {
		t.Fatal("trig run should stop at the generation budget")
	}
	if trig.Terminate(0, 5, 0, 20) {
		t.Fatal("trig run should stop on a perfect score")
	}
}

func TestTrigCasesCoverThePeriod(t *testing.T) {
	cases, ok := TrigRegression{}.FitnessCases().([]RegressionCase)
	if !ok {
		t.Fatal("trig cases are not []RegressionCase")
	}
	if len(cases) != 20 {
		t.Fatalf("case count = %d, want 20", len(cases))
	}
	for _, sample := range cases {
		if sample.X < 0 || sample.X >= 2*math.Pi {
			t.Fatalf("sample x = %v outside [0, 2*pi)", sample.X)
		}
		want := math.Sin(2*sample.X) + math.Cos(sample.X)
		if sample.Target != want {
			t.Fatalf("target at %v = %v, want %v", sample.X, sample.Target, want)
		}
	}
}
