package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"dendron/internal/model"
)

// ErrConfiguration marks invalid run setup detected before any generation
// runs.
var ErrConfiguration = errors.New("invalid run configuration")

// overSelectionMinPopulation is the smallest population over-selection is
// defined for; the elite boundary is 320/populationSize.
const overSelectionMinPopulation = 1000

// Selector chooses one parent from a ranked, normalized population.
type Selector interface {
	Name() string
	Pick(rng *rand.Rand, ranked model.Population) (*model.Individual, error)
}

// SelectorFor dispatches the configured selection method.
func SelectorFor(method model.SelectionMethod) (Selector, error) {
	switch method {
	case model.SelectionTournament:
		return TournamentSelector{}, nil
	case model.SelectionFitnessProportional:
		return FitnessProportionateSelector{}, nil
	case model.SelectionOverSelection:
		return OverSelector{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown selection method %q", ErrConfiguration, method)
	}
}

// TournamentSelector draws two individuals uniformly with replacement and
// keeps the one with the lower standardized fitness.
type TournamentSelector struct{}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (TournamentSelector) Pick(rng *rand.Rand, ranked model.Population) (*model.Individual, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: population is empty", ErrConfiguration)
	}
	first := ranked[rng.Intn(len(ranked))]
	second := ranked[rng.Intn(len(ranked))]
	if second.StandardizedFitness < first.StandardizedFitness {
		return second, nil
	}
	return first, nil
}

// FitnessProportionateSelector scans the ranked population accumulating
// normalized fitness until the running sum crosses a uniform target.
type FitnessProportionateSelector struct{}

func (FitnessProportionateSelector) Name() string {
	return "fitness_proportionate"
}

func (FitnessProportionateSelector) Pick(rng *rand.Rand, ranked model.Population) (*model.Individual, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: population is empty", ErrConfiguration)
	}
	return scanProportionate(ranked, rng.Float64()), nil
}

// OverSelector concentrates selection pressure on the elite slice of a large
// ranked population: with probability 0.8 the proportionate target falls
// inside [0, 320/populationSize), otherwise beyond it.
type OverSelector struct{}

func (OverSelector) Name() string {
	return "over_selection"
}

func (OverSelector) Pick(rng *rand.Rand, ranked model.Population) (*model.Individual, error) {
	if len(ranked) < overSelectionMinPopulation {
		return nil, fmt.Errorf("%w: over-selection requires population >= %d, got %d",
			ErrConfiguration, overSelectionMinPopulation, len(ranked))
	}
	boundary := 320.0 / float64(len(ranked))
	var target float64
	if rng.Float64() < 0.8 {
		target = rng.Float64() * boundary
	} else {
		target = boundary + rng.Float64()*(1.0-boundary)
	}
	return scanProportionate(ranked, target), nil
}

// scanProportionate returns the first individual whose inclusion pushes the
// running normalized-fitness sum past the target, falling back to the last
// individual if floating-point rounding exhausts the scan.
func scanProportionate(ranked model.Population, target float64) *model.Individual {
	sum := 0.0
	for _, individual := range ranked {
		sum += individual.NormalizedFitness
		if sum > target {
			return individual
		}
	}
	return ranked[len(ranked)-1]
}
