package evo

import (
	"sort"

	"dendron/internal/model"
	"dendron/internal/problem"
)

// Pipeline runs the per-generation fitness steps in their required order:
// zero, evaluate, adjust, normalize, rank. Selection assumes the population
// is left in the ranked, normalized state this produces.
type Pipeline struct {
	Problem problem.Problem
	Cases   any
}

func (p Pipeline) Run(population model.Population) error {
	Zero(population)
	for _, individual := range population {
		standardized, hits, err := p.Problem.Fitness(individual.Program, p.Cases)
		if err != nil {
			return err
		}
		individual.StandardizedFitness = standardized
		individual.Hits = hits
	}
	Adjust(population)
	Normalize(population)
	Rank(population)
	return nil
}

// Zero resets every fitness field before evaluation.
func Zero(population model.Population) {
	for _, individual := range population {
		individual.StandardizedFitness = 0
		individual.AdjustedFitness = 0
		individual.NormalizedFitness = 0
		individual.Hits = 0
	}
}

// Adjust converts standardized fitness (lower is better, unbounded) into
// adjusted fitness 1/(1+standardized), higher is better in (0, 1].
func Adjust(population model.Population) {
	for _, individual := range population {
		individual.AdjustedFitness = 1.0 / (1.0 + individual.StandardizedFitness)
	}
}

// Normalize scales adjusted fitness into a probability distribution over the
// population: the normalized values sum to 1.
func Normalize(population model.Population) {
	total := 0.0
	for _, individual := range population {
		total += individual.AdjustedFitness
	}
	if total == 0 {
		return
	}
	for _, individual := range population {
		individual.NormalizedFitness = individual.AdjustedFitness / total
	}
}

// Rank sorts the population descending by normalized fitness; index 0 is the
// best of the generation. Ties order arbitrarily.
func Rank(population model.Population) {
	sort.Slice(population, func(i, j int) bool {
		return population[i].NormalizedFitness > population[j].NormalizedFitness
	})
}
