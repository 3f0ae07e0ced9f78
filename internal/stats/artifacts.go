package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dendron/internal/evo"
	"dendron/internal/model"
)

// RunArtifacts is the JSON export of one completed run.
type RunArtifacts struct {
	RunID                 string                        `json:"run_id"`
	Problem               string                        `json:"problem"`
	Seed                  int64                         `json:"seed"`
	Population            int                           `json:"population"`
	Config                model.RunConfig               `json:"config"`
	BestByGeneration      []float64                     `json:"best_by_generation"`
	GenerationDiagnostics []model.GenerationDiagnostics `json:"generation_diagnostics,omitempty"`
	Best                  model.BestRecord              `json:"best"`
}

// BuildRunArtifacts assembles the export payload from a finished run.
func BuildRunArtifacts(runID, problemName string, populationSize int, result evo.RunResult) RunArtifacts {
	return RunArtifacts{
		RunID:                 runID,
		Problem:               problemName,
		Seed:                  result.Config.Seed,
		Population:            populationSize,
		Config:                result.Config,
		BestByGeneration:      result.BestByGeneration,
		GenerationDiagnostics: result.Diagnostics,
		Best:                  BestRecordOf(runID, result.Best),
	}
}

// BestRecordOf renders a best-of-run snapshot into its persisted form.
func BestRecordOf(runID string, best model.BestOfRun) model.BestRecord {
	return model.BestRecord{
		RunID:               runID,
		Generation:          best.Generation,
		StandardizedFitness: best.Individual.StandardizedFitness,
		Hits:                best.Individual.Hits,
		Program:             best.Individual.Program.String(),
		ProgramLatex:        best.Individual.Program.Latex(),
		Depth:               best.Individual.Program.Depth(),
		Size:                best.Individual.Program.Size(),
	}
}

// WriteRunArtifacts writes the export under dir/<run-id>/run.json and
// returns the run directory.
func WriteRunArtifacts(dir string, artifacts RunArtifacts) (string, error) {
	if artifacts.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}
	runDir := filepath.Join(dir, artifacts.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}
	payload, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(runDir, "run.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}
	return runDir, nil
}

// ReadRunArtifacts loads a previously written export.
func ReadRunArtifacts(dir, runID string) (RunArtifacts, bool, error) {
	path := filepath.Join(dir, runID, "run.json")
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunArtifacts{}, false, nil
		}
		return RunArtifacts{}, false, err
	}
	var artifacts RunArtifacts
	if err := json.Unmarshal(payload, &artifacts); err != nil {
		return RunArtifacts{}, false, err
	}
	return artifacts, true, nil
}
