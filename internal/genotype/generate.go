package genotype

import (
	"fmt"
	"math/rand"

	"dendron/internal/model"
	"dendron/internal/tree"
)

// FunctionSpec declares one legal internal-node operator with its fixed arity.
type FunctionSpec struct {
	Op    tree.Op
	Arity int
}

// TerminalKind discriminates the leaf choices a terminal set may offer.
type TerminalKind int

const (
	// TerminalVariable draws uniformly from a named-variable pool.
	TerminalVariable TerminalKind = iota
	// TerminalFloatConstant draws an ephemeral constant from [-5.0, 5.0).
	TerminalFloatConstant
	// TerminalIntConstant draws an ephemeral integer constant from [-10, 10),
	// stored as a float.
	TerminalIntConstant
)

// TerminalSpec declares one legal leaf choice.
type TerminalSpec struct {
	Kind      TerminalKind
	Variables []string
}

const (
	floatConstantMin = -5.0
	floatConstantMax = 5.0
	intConstantMin   = -10
	intConstantMax   = 10
)

// Generator builds random programs from an ordered function and terminal set.
type Generator struct {
	Functions []FunctionSpec
	Terminals []TerminalSpec
}

// Program generates one whole program of the target depth. The root is
// always a function: a bare terminal is never a whole program.
func (g Generator) Program(rng *rand.Rand, method model.GenerationMethod, targetDepth int) (tree.Node, error) {
	if len(g.Functions) == 0 {
		return nil, fmt.Errorf("function set is empty")
	}
	if len(g.Terminals) == 0 {
		return nil, fmt.Errorf("terminal set is empty")
	}
	var build func(*rand.Rand, int) tree.Node
	switch method {
	case model.GenerationFull:
		build = g.full
	case model.GenerationGrow:
		build = g.grow
	default:
		return nil, fmt.Errorf("unsupported generation method for a single program: %s", method)
	}
	return g.functionNode(rng, build, targetDepth), nil
}

// MutationSubtree generates the replacement fragment for subtree mutation:
// a Grow-built tree with a forced function root, capped at maxDepth.
func (g Generator) MutationSubtree(rng *rand.Rand, maxDepth int) (tree.Node, error) {
	return g.Program(rng, model.GenerationGrow, maxDepth)
}

func (g Generator) functionNode(rng *rand.Rand, build func(*rand.Rand, int) tree.Node, targetDepth int) tree.Node {
	spec := g.Functions[rng.Intn(len(g.Functions))]
	if spec.Arity == 1 {
		return &tree.Unary{Op: spec.Op, Child: build(rng, targetDepth-1)}
	}
	return &tree.Binary{
		Op:    spec.Op,
		Left:  build(rng, targetDepth-1),
		Right: build(rng, targetDepth-1),
	}
}

// full places a function at every node until the depth budget runs out.
func (g Generator) full(rng *rand.Rand, budget int) tree.Node {
	if budget <= 1 {
		return g.terminal(rng)
	}
	return g.functionNode(rng, g.full, budget)
}

// grow chooses uniformly among functions and terminals by count, forcing a
// terminal once the depth budget runs out.
func (g Generator) grow(rng *rand.Rand, budget int) tree.Node {
	if budget <= 1 {
		return g.terminal(rng)
	}
	pick := rng.Intn(len(g.Functions) + len(g.Terminals))
	if pick < len(g.Functions) {
		spec := g.Functions[pick]
		if spec.Arity == 1 {
			return &tree.Unary{Op: spec.Op, Child: g.grow(rng, budget-1)}
		}
		return &tree.Binary{
			Op:    spec.Op,
			Left:  g.grow(rng, budget-1),
			Right: g.grow(rng, budget-1),
		}
	}
	return g.sampleTerminal(rng, g.Terminals[pick-len(g.Functions)])
}

func (g Generator) terminal(rng *rand.Rand) tree.Node {
	return g.sampleTerminal(rng, g.Terminals[rng.Intn(len(g.Terminals))])
}

func (g Generator) sampleTerminal(rng *rand.Rand, spec TerminalSpec) tree.Node {
	switch spec.Kind {
	case TerminalVariable:
		return &tree.Variable{Name: spec.Variables[rng.Intn(len(spec.Variables))]}
	case TerminalIntConstant:
		value := intConstantMin + rng.Intn(intConstantMax-intConstantMin)
		return &tree.Constant{Value: float64(value), Integer: true}
	default:
		value := floatConstantMin + rng.Float64()*(floatConstantMax-floatConstantMin)
		return &tree.Constant{Value: value}
	}
}
