package model

import "dendron/internal/tree"

// SelectionMethod names the parent-selection strategy for a run.
type SelectionMethod string

const (
	SelectionTournament          SelectionMethod = "tournament"
	SelectionFitnessProportional SelectionMethod = "fitness_proportionate"
	SelectionOverSelection       SelectionMethod = "over_selection"
)

// GenerationMethod names the strategy used to build fresh programs.
type GenerationMethod string

const (
	GenerationFull   GenerationMethod = "full"
	GenerationGrow   GenerationMethod = "grow"
	GenerationRamped GenerationMethod = "ramped_half_and_half"
)

// RunConfig bundles the knobs a problem's parameter definer populates once
// before population creation. It is not mutated after setup.
type RunConfig struct {
	MinDepthNew       int
	MaxDepthNew       int
	MaxDepthCrossover int
	MaxDepthMutation  int

	ReproductionFraction      float64
	CrossoverFunctionFraction float64
	CrossoverAnyFraction      float64

	Selection  SelectionMethod
	Generation GenerationMethod

	Seed         int64
	FitnessCases int
}

// Individual owns one program plus its fitness measures. It is mutated in
// place each generation and never aliased between two population slots.
type Individual struct {
	Program tree.Node

	StandardizedFitness float64
	AdjustedFitness     float64
	NormalizedFitness   float64
	Hits                int
}

// Population is a fixed-size ordered sequence of individuals. Order is
// meaningful only after ranking: index 0 is the best of the generation.
type Population []*Individual

// BestOfRun snapshots the best individual seen so far and the generation at
// which it was captured. Replaced only on strict fitness improvement.
type BestOfRun struct {
	Individual Individual
	Generation int
}

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord describes one completed run for the archive store.
type RunRecord struct {
	VersionedRecord
	RunID        string `json:"run_id"`
	Problem      string `json:"problem"`
	Seed         int64  `json:"seed"`
	Population   int    `json:"population"`
	Generations  int    `json:"generations"`
	CreatedAtUTC string `json:"created_at_utc"`
}

// GenerationDiagnostics summarizes one generation for reports and storage.
type GenerationDiagnostics struct {
	Generation       int     `json:"generation"`
	BestStandardized float64 `json:"best_standardized"`
	MeanStandardized float64 `json:"mean_standardized"`
	BestHits         int     `json:"best_hits"`
	MeanDepth        float64 `json:"mean_depth"`
	MeanSize         float64 `json:"mean_size"`
}

// BestRecord is the persisted best-of-run: the rendered program, never the
// population itself.
type BestRecord struct {
	VersionedRecord
	RunID               string  `json:"run_id"`
	Generation          int     `json:"generation"`
	StandardizedFitness float64 `json:"standardized_fitness"`
	Hits                int     `json:"hits"`
	Program             string  `json:"program"`
	ProgramLatex        string  `json:"program_latex"`
	Depth               int     `json:"depth"`
	Size                int     `json:"size"`
}
