package evo

import (
	"fmt"
	"math/rand"

	"dendron/internal/genotype"
	"dendron/internal/tree"
)

// Crossover exchanges subtrees between two parent programs under the given
// point-counting scheme and always yields exactly two offspring. Each
// candidate is validated independently: a candidate that degenerates to a
// bare terminal (depth 1) or exceeds maxDepth is discarded and the
// corresponding original parent is kept unchanged.
func Crossover(rng *rand.Rand, scheme tree.CountScheme, male, female tree.Node, maxDepth int) (tree.Node, tree.Node, error) {
	maleCount := tree.Count(scheme, male)
	femaleCount := tree.Count(scheme, female)
	if maleCount <= 0 || femaleCount <= 0 {
		return nil, nil, fmt.Errorf("%w: program has no addressable points", tree.ErrStructural)
	}
	malePoint := rng.Intn(maleCount)
	femalePoint := rng.Intn(femaleCount)

	maleCopy := male.Clone()
	femaleCopy := female.Clone()
	maleFragment, err := tree.Subtree(scheme, maleCopy, malePoint)
	if err != nil {
		return nil, nil, err
	}
	femaleFragment, err := tree.Subtree(scheme, femaleCopy, femalePoint)
	if err != nil {
		return nil, nil, err
	}

	maleChild, err := tree.ReplaceAt(scheme, maleCopy, femaleFragment, malePoint)
	if err != nil {
		return nil, nil, err
	}
	femaleChild, err := tree.ReplaceAt(scheme, femaleCopy, maleFragment, femalePoint)
	if err != nil {
		return nil, nil, err
	}

	if depth := maleChild.Depth(); depth == 1 || depth > maxDepth {
		maleChild = male.Clone()
	}
	if depth := femaleChild.Depth(); depth == 1 || depth > maxDepth {
		femaleChild = female.Clone()
	}
	return maleChild, femaleChild, nil
}

// Mutate replaces the subtree at a random any-point of a copy of the program
// with a freshly grown subtree capped at maxDepth. The original program is
// never touched.
func Mutate(rng *rand.Rand, gen genotype.Generator, program tree.Node, maxDepth int) (tree.Node, error) {
	count := tree.Count(tree.AnyPoints, program)
	if count <= 0 {
		return nil, fmt.Errorf("%w: program has no addressable points", tree.ErrStructural)
	}
	point := rng.Intn(count)
	fragment, err := gen.MutationSubtree(rng, maxDepth)
	if err != nil {
		return nil, err
	}
	return tree.ReplaceAt(tree.AnyPoints, program.Clone(), fragment, point)
}
