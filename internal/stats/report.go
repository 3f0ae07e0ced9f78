package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"dendron/internal/model"
)

// ConsoleReporter renders one line per generation and a run-end summary.
// Every controls thinning: a value of n prints every n-th generation (the
// best-of-run line always prints).
type ConsoleReporter struct {
	Out   io.Writer
	Every int

	started     time.Time
	evaluations int64
}

func NewConsoleReporter(out io.Writer, every int) *ConsoleReporter {
	if every <= 0 {
		every = 1
	}
	return &ConsoleReporter{Out: out, Every: every}
}

func (r *ConsoleReporter) Generation(generation int, population model.Population) {
	if r.started.IsZero() {
		r.started = time.Now()
	}
	r.evaluations += int64(len(population))
	if generation%r.Every != 0 {
		return
	}

	best := population[0]
	meanStandardized := 0.0
	meanSize := 0
	for _, individual := range population {
		meanStandardized += individual.StandardizedFitness
		meanSize += individual.Program.Size()
	}
	fmt.Fprintf(r.Out, "gen %3d  best=%.6f hits=%d  mean=%.4f  mean-size=%.1f\n",
		generation,
		best.StandardizedFitness,
		best.Hits,
		meanStandardized/float64(len(population)),
		float64(meanSize)/float64(len(population)),
	)
}

func (r *ConsoleReporter) RunEnd(best model.BestOfRun) {
	elapsed := time.Duration(0)
	if !r.started.IsZero() {
		elapsed = time.Since(r.started).Round(time.Millisecond)
	}
	fmt.Fprintf(r.Out, "best of run (generation %d): fitness=%.6f hits=%d depth=%d size=%d\n",
		best.Generation,
		best.Individual.StandardizedFitness,
		best.Individual.Hits,
		best.Individual.Program.Depth(),
		best.Individual.Program.Size(),
	)
	fmt.Fprintf(r.Out, "  %s\n", best.Individual.Program)
	fmt.Fprintf(r.Out, "%s evaluations in %s\n", humanize.Comma(r.evaluations), elapsed)
}
