// Package dendron is the public client surface: it wires a problem, the
// population monitor, the archive store and the artifacts writer into one
// run entrypoint.
package dendron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dendron/internal/evo"
	"dendron/internal/model"
	"dendron/internal/problem"
	"dendron/internal/stats"
	"dendron/internal/storage"
	"dendron/internal/tree"
)

const (
	defaultDBPath     = "dendron.db"
	defaultExportsDir = "exports"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	return &Client{store: store, exportsDir: exportsDir}, nil
}

// NewWithStore wraps an already initialized store; the caller keeps
// ownership of its lifecycle.
func NewWithStore(store storage.Store, exportsDir string) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	return &Client{store: store, exportsDir: exportsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type RunRequest struct {
	RunID       string
	Problem     string
	Population  int
	Generations int
	Seed        int64

	// SeedPrograms fill the lowest generation-0 slots verbatim.
	SeedPrograms []tree.Node
	Reporter     evo.Reporter
}

type RunSummary struct {
	RunID            string
	Problem          string
	ArtifactsDir     string
	Generations      int
	Evaluations      int
	BestByGeneration []float64
	Best             model.BestRecord
}

// Run executes one evolution run, archives its statistics and writes the
// JSON artifacts.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	prob, err := problem.Resolve(req.Problem)
	if err != nil {
		return RunSummary{}, err
	}
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	monitor, err := evo.NewPopulationMonitor(evo.MonitorConfig{
		Problem:        prob,
		PopulationSize: req.Population,
		MaxGenerations: req.Generations,
		Seed:           req.Seed,
		SeedPrograms:   req.SeedPrograms,
		Reporter:       req.Reporter,
	})
	if err != nil {
		return RunSummary{}, err
	}
	result, err := monitor.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	record := model.RunRecord{
		VersionedRecord: versioned(),
		RunID:           runID,
		Problem:         prob.Name(),
		Seed:            req.Seed,
		Population:      req.Population,
		Generations:     result.Generations,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, result.BestByGeneration); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveGenerationDiagnostics(ctx, runID, result.Diagnostics); err != nil {
		return RunSummary{}, err
	}
	best := stats.BestRecordOf(runID, result.Best)
	best.VersionedRecord = versioned()
	if err := c.store.SaveBest(ctx, best); err != nil {
		return RunSummary{}, err
	}

	artifacts := stats.BuildRunArtifacts(runID, prob.Name(), req.Population, result)
	artifacts.Best = best
	artifactsDir, err := stats.WriteRunArtifacts(c.exportsDir, artifacts)
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:            runID,
		Problem:          prob.Name(),
		ArtifactsDir:     artifactsDir,
		Generations:      result.Generations,
		Evaluations:      result.Evaluations,
		BestByGeneration: result.BestByGeneration,
		Best:             best,
	}, nil
}

func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

func (c *Client) FitnessHistory(ctx context.Context, runID string) ([]float64, error) {
	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run: %s", runID)
	}
	return history, nil
}

func (c *Client) Diagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, error) {
	diagnostics, ok, err := c.store.GetGenerationDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("generation diagnostics not found for run: %s", runID)
	}
	return diagnostics, nil
}

func (c *Client) Best(ctx context.Context, runID string) (model.BestRecord, error) {
	best, ok, err := c.store.GetBest(ctx, runID)
	if err != nil {
		return model.BestRecord{}, err
	}
	if !ok {
		return model.BestRecord{}, fmt.Errorf("best program not found for run: %s", runID)
	}
	return best, nil
}

// Export rebuilds the JSON artifacts for an archived run from the store.
func (c *Client) Export(ctx context.Context, runID string) (string, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("run not found: %s", runID)
	}
	history, _, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return "", err
	}
	diagnostics, _, err := c.store.GetGenerationDiagnostics(ctx, runID)
	if err != nil {
		return "", err
	}
	best, _, err := c.store.GetBest(ctx, runID)
	if err != nil {
		return "", err
	}
	return stats.WriteRunArtifacts(c.exportsDir, stats.RunArtifacts{
		RunID:                 runID,
		Problem:               run.Problem,
		Seed:                  run.Seed,
		Population:            run.Population,
		BestByGeneration:      history,
		GenerationDiagnostics: diagnostics,
		Best:                  best,
	})
}

func versioned() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
