package genotype

import (
	"math/rand"

	"dendron/internal/model"
	"dendron/internal/tree"
)

// duplicateAttemptsPerSlot is how many structurally duplicate programs one
// slot tolerates before the depth floor is raised to widen the search space.
const duplicateAttemptsPerSlot = 20

// BuildStats reports how generation 0 was constructed.
type BuildStats struct {
	// MinDepthFloor is the effective minimum depth after any escape-valve
	// escalations; it starts at the configured minimum.
	MinDepthFloor int
	MaxDepthBound int
	Duplicates    int
}

// Builder constructs generation 0: seeded programs fill the lowest-indexed
// slots verbatim and unchecked, the remaining slots are generated with
// structural-duplicate rejection.
type Builder struct {
	Generator Generator
	Config    model.RunConfig
}

// Build fills a population of the given size. It never hard-fails on
// duplicates: after duplicateAttemptsPerSlot rejections at one slot the
// minimum depth floor is incremented (and the maximum bound raised to stay
// at or above it), then the same slot is retried.
func (b Builder) Build(rng *rand.Rand, size int, seeds []tree.Node) (model.Population, BuildStats, error) {
	minDepth := b.Config.MinDepthNew
	if minDepth < 2 {
		minDepth = 2
	}
	maxDepth := b.Config.MaxDepthNew
	if maxDepth < minDepth {
		maxDepth = minDepth
	}
	stats := BuildStats{MinDepthFloor: minDepth, MaxDepthBound: maxDepth}

	population := make(model.Population, 0, size)
	for _, seed := range seeds {
		if len(population) >= size {
			break
		}
		population = append(population, &model.Individual{Program: seed.Clone()})
	}

	seen := make(map[string]struct{}, size)
	for generated := 0; len(population) < size; generated++ {
		attempts := 0
		for {
			method, depth := b.slotPlan(generated, minDepth, maxDepth)
			program, err := b.Generator.Program(rng, method, depth)
			if err != nil {
				return nil, BuildStats{}, err
			}
			key := program.String()
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				population = append(population, &model.Individual{Program: program})
				break
			}
			stats.Duplicates++
			attempts++
			if attempts >= duplicateAttemptsPerSlot {
				minDepth++
				if maxDepth < minDepth {
					maxDepth = minDepth
				}
				stats.MinDepthFloor = minDepth
				stats.MaxDepthBound = maxDepth
				attempts = 0
			}
		}
	}
	return population, stats, nil
}

// slotPlan assigns the generation method and target depth for the i-th
// generated slot. Ramped half-and-half steps the depth across
// [minDepth, maxDepth] and alternates Full and Grow each time a full depth
// cycle completes; the fixed methods use the maximum depth throughout.
func (b Builder) slotPlan(index, minDepth, maxDepth int) (model.GenerationMethod, int) {
	switch b.Config.Generation {
	case model.GenerationFull:
		return model.GenerationFull, maxDepth
	case model.GenerationGrow:
		return model.GenerationGrow, maxDepth
	default:
		cycle := maxDepth - minDepth + 1
		depth := minDepth + index%cycle
		if (index/cycle)%2 == 0 {
			return model.GenerationFull, depth
		}
		return model.GenerationGrow, depth
	}
}
