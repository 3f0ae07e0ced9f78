package genotype

import (
	"math/rand"
	"testing"

	"dendron/internal/model"
	"dendron/internal/tree"
)

func arithmeticFunctions() []FunctionSpec {
	return []FunctionSpec{
		{Op: tree.OpAdd, Arity: 2},
		{Op: tree.OpSub, Arity: 2},
		{Op: tree.OpMul, Arity: 2},
		{Op: tree.OpDiv, Arity: 2},
	}
}

func variableTerminal(names ...string) []TerminalSpec {
	return []TerminalSpec{{Kind: TerminalVariable, Variables: names}}
}

func isFunctionNode(n tree.Node) bool {
	switch n.(type) {
	case *tree.Binary, *tree.Unary:
		return true
	}
	return false
}

// fullShape asserts every node above the leaves is an operator and every
// leaf sits exactly at the depth budget.
func fullShape(t *testing.T, n tree.Node, depthLeft int) {
	t.Helper()
	switch node := n.(type) {
	case *tree.Binary:
		if depthLeft <= 1 {
			t.Fatalf("function node %s below the depth budget", node.Op)
		}
		fullShape(t, node.Left, depthLeft-1)
		fullShape(t, node.Right, depthLeft-1)
	case *tree.Unary:
		if depthLeft <= 1 {
			t.Fatalf("function node %s below the depth budget", node.Op)
		}
		fullShape(t, node.Child, depthLeft-1)
	default:
		if depthLeft != 1 {
			t.Fatalf("terminal %s at depth budget %d, want 1", n, depthLeft)
		}
	}
}

func TestProgramFullReachesTargetDepth(t *testing.T) {
	g := Generator{Functions: arithmeticFunctions(), Terminals: variableTerminal("x")}
	rng := rand.New(rand.NewSource(11))
	for target := 2; target <= 6; target++ {
		program, err := g.Program(rng, model.GenerationFull, target)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := program.Depth(); got != target {
			t.Fatalf("full tree depth = %d, want %d", got, target)
		}
		fullShape(t, program, target)
	}
}

func TestProgramGrowStaysWithinTargetDepth(t *testing.T) {
	g := Generator{Functions: arithmeticFunctions(), Terminals: variableTerminal("x")}
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 200; i++ {
		program, err := g.Program(rng, model.GenerationGrow, 6)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := program.Depth(); got < 2 || got > 6 {
			t.Fatalf("grow tree depth = %d, want within [2, 6]", got)
		}
	}
}

func TestProgramRootIsAlwaysFunction(t *testing.T) {
	g := Generator{Functions: arithmeticFunctions(), Terminals: variableTerminal("x")}
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 100; i++ {
		program, err := g.Program(rng, model.GenerationGrow, 2)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !isFunctionNode(program) {
			t.Fatalf("program root %s is a terminal", program)
		}
	}
}

func TestProgramRejectsEmptySets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := (Generator{Terminals: variableTerminal("x")}).Program(rng, model.GenerationFull, 3); err == nil {
		t.Fatal("expected error for an empty function set")
	}
	if _, err := (Generator{Functions: arithmeticFunctions()}).Program(rng, model.GenerationFull, 3); err == nil {
		t.Fatal("expected error for an empty terminal set")
	}
	g := Generator{Functions: arithmeticFunctions(), Terminals: variableTerminal("x")}
	if _, err := g.Program(rng, model.GenerationRamped, 3); err == nil {
		t.Fatal("expected error for the ramped method on a single program")
	}
}

func TestEphemeralConstantRanges(t *testing.T) {
	g := Generator{
		Functions: arithmeticFunctions(),
		Terminals: []TerminalSpec{
			{Kind: TerminalFloatConstant},
			{Kind: TerminalIntConstant},
		},
	}
	rng := rand.New(rand.NewSource(14))
	floats, ints := 0, 0
	for i := 0; i < 400; i++ {
		program, err := g.Program(rng, model.GenerationFull, 2)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		binary, ok := program.(*tree.Binary)
		if !ok {
			t.Fatalf("depth-2 full tree root is %T", program)
		}
		for _, leaf := range []tree.Node{binary.Left, binary.Right} {
			constant, ok := leaf.(*tree.Constant)
			if !ok {
				t.Fatalf("leaf %s is not a constant", leaf)
			}
			if constant.Integer {
				ints++
				if constant.Value != float64(int(constant.Value)) {
					t.Fatalf("integer constant %v is not whole", constant.Value)
				}
				if constant.Value < -10 || constant.Value >= 10 {
					t.Fatalf("integer constant %v outside [-10, 10)", constant.Value)
				}
			} else {
				floats++
				if constant.Value < -5 || constant.Value >= 5 {
					t.Fatalf("float constant %v outside [-5, 5)", constant.Value)
				}
			}
		}
	}
	if floats == 0 || ints == 0 {
		t.Fatalf("terminal kinds not both drawn: %d floats, %d ints", floats, ints)
	}
}

func TestMutationSubtreeRootIsFunction(t *testing.T) {
	g := Generator{
		Functions: append(arithmeticFunctions(), FunctionSpec{Op: tree.OpSin, Arity: 1}),
		Terminals: variableTerminal("x"),
	}
	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 100; i++ {
		fragment, err := g.MutationSubtree(rng, 4)
		if err != nil {
			t.Fatalf("mutation subtree: %v", err)
		}
		if !isFunctionNode(fragment) {
			t.Fatalf("fragment root %s is a terminal", fragment)
		}
		if got := fragment.Depth(); got > 4 {
			t.Fatalf("fragment depth = %d, want at most 4", got)
		}
	}
}

func TestFunctionPointsNeverExceedAnyPoints(t *testing.T) {
	g := Generator{
		Functions: append(arithmeticFunctions(), FunctionSpec{Op: tree.OpSin, Arity: 1}, FunctionSpec{Op: tree.OpCos, Arity: 1}),
		Terminals: variableTerminal("x", "y"),
	}
	rng := rand.New(rand.NewSource(16))
	for i := 0; i < 200; i++ {
		program, err := g.Program(rng, model.GenerationGrow, 6)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		fc := tree.Count(tree.FunctionPoints, program)
		ac := tree.Count(tree.AnyPoints, program)
		if fc <= 0 {
			t.Fatalf("%s: no function points", program)
		}
		if fc > ac {
			t.Fatalf("%s: function points %d exceed any points %d", program, fc, ac)
		}
	}
}
