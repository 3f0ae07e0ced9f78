package stats

import (
	"strings"
	"testing"

	"dendron/internal/evo"
	"dendron/internal/model"
	"dendron/internal/tree"
)

func sampleBest() model.BestOfRun {
	program := &tree.Binary{
		Op:    tree.OpAdd,
		Left:  &tree.Binary{Op: tree.OpMul, Left: &tree.Variable{Name: "x"}, Right: &tree.Variable{Name: "x"}},
		Right: &tree.Variable{Name: "x"},
	}
	return model.BestOfRun{
		Individual: model.Individual{
			Program:             program,
			StandardizedFitness: 0.5,
			Hits:                42,
		},
		Generation: 7,
	}
}

func TestBestRecordOf(t *testing.T) {
	record := BestRecordOf("run-a", sampleBest())
	if record.RunID != "run-a" || record.Generation != 7 {
		t.Fatalf("record identity = (%s, %d)", record.RunID, record.Generation)
	}
	if record.Program != "((x * x) + x)" {
		t.Fatalf("rendered program = %q", record.Program)
	}
	if record.ProgramLatex == "" {
		t.Fatal("latex rendering is empty")
	}
	if record.Depth != 3 || record.Size != 5 {
		t.Fatalf("program shape = (depth %d, size %d), want (3, 5)", record.Depth, record.Size)
	}
	if record.StandardizedFitness != 0.5 || record.Hits != 42 {
		t.Fatalf("fitness carried over wrong: %+v", record)
	}
}

func TestWriteAndReadRunArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := RunArtifacts{
		RunID:            "run-a",
		Problem:          "quartic-regression",
		Seed:             7,
		Population:       500,
		BestByGeneration: []float64{9.0, 4.5, 1.25},
		Best:             BestRecordOf("run-a", sampleBest()),
	}
	runDir, err := WriteRunArtifacts(dir, artifacts)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(runDir, "run-a") {
		t.Fatalf("run directory = %s", runDir)
	}

	got, ok, err := ReadRunArtifacts(dir, "run-a")
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got.Problem != artifacts.Problem || got.Seed != artifacts.Seed {
		t.Fatalf("round trip changed the payload: %+v", got)
	}
	if len(got.BestByGeneration) != 3 || got.BestByGeneration[2] != 1.25 {
		t.Fatalf("history round trip = %v", got.BestByGeneration)
	}
	if got.Best.Program != artifacts.Best.Program {
		t.Fatalf("best program round trip = %q", got.Best.Program)
	}
}

func TestReadRunArtifactsMissing(t *testing.T) {
	_, ok, err := ReadRunArtifacts(t.TempDir(), "nope")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Fatal("missing export reported as present")
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{}); err == nil {
		t.Fatal("expected an error for a missing run id")
	}
}

func TestBuildRunArtifacts(t *testing.T) {
	result := evo.RunResult{
		Best:             sampleBest(),
		BestByGeneration: []float64{3.5, 2.0},
		Diagnostics:      []model.GenerationDiagnostics{{Generation: 0}, {Generation: 1}},
		Config:           model.RunConfig{Seed: 11},
	}
	artifacts := BuildRunArtifacts("run-b", "trig-regression", 200, result)
	if artifacts.RunID != "run-b" || artifacts.Problem != "trig-regression" {
		t.Fatalf("identity = (%s, %s)", artifacts.RunID, artifacts.Problem)
	}
	if artifacts.Seed != 11 || artifacts.Population != 200 {
		t.Fatalf("run shape = (seed %d, population %d)", artifacts.Seed, artifacts.Population)
	}
	if len(artifacts.GenerationDiagnostics) != 2 {
		t.Fatalf("diagnostics length = %d", len(artifacts.GenerationDiagnostics))
	}
	if artifacts.Best.Generation != 7 {
		t.Fatalf("best generation = %d", artifacts.Best.Generation)
	}
}

func TestConsoleReporterOutput(t *testing.T) {
	var buf strings.Builder
	reporter := NewConsoleReporter(&buf, 2)

	population := model.Population{
		{Program: &tree.Variable{Name: "x"}, StandardizedFitness: 1.5, Hits: 3},
		{Program: &tree.Variable{Name: "x"}, StandardizedFitness: 2.5, Hits: 1},
	}
	reporter.Generation(0, population)
	reporter.Generation(1, population)
	reporter.Generation(2, population)
	reporter.RunEnd(sampleBest())

	out := buf.String()
	if strings.Count(out, "gen ") != 2 {
		t.Fatalf("thinning printed wrong generations:\n%s", out)
	}
	if !strings.Contains(out, "best=1.500000") {
		t.Fatalf("missing best fitness:\n%s", out)
	}
	if !strings.Contains(out, "best of run (generation 7)") {
		t.Fatalf("missing run-end summary:\n%s", out)
	}
	if !strings.Contains(out, "((x * x) + x)") {
		t.Fatalf("missing best program:\n%s", out)
	}
	if !strings.Contains(out, "6 evaluations in") {
		t.Fatalf("missing evaluation count:\n%s", out)
	}
}
