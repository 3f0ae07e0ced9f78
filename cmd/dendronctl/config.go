package main

import (
	"encoding/json"
	"io"
	"os"

	"dendron/internal/evo"
	"dendron/internal/stats"
	"dendron/pkg/dendron"
)

func loadRunRequestFromConfig(path string) (dendron.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dendron.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return dendron.RunRequest{}, err
	}

	var req dendron.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["problem"]); ok {
		req.Problem = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	return req, nil
}

// mergeRunRequests overlays the config-file request on the flag defaults:
// any field the file sets wins.
func mergeRunRequests(base, loaded dendron.RunRequest) dendron.RunRequest {
	if loaded.RunID != "" {
		base.RunID = loaded.RunID
	}
	if loaded.Problem != "" {
		base.Problem = loaded.Problem
	}
	if loaded.Population != 0 {
		base.Population = loaded.Population
	}
	if loaded.Generations != 0 {
		base.Generations = loaded.Generations
	}
	if loaded.Seed != 0 {
		base.Seed = loaded.Seed
	}
	return base
}

func newReporter(out io.Writer, every int) evo.Reporter {
	return stats.NewConsoleReporter(out, every)
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func asInt(value any) (int, bool) {
	f, ok := value.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asInt64(value any) (int64, bool) {
	f, ok := value.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}
