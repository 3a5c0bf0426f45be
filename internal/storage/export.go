package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/freefall/internal/dynamo"
)

type ExportData struct {
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Drag       float64            `json:"drag"`
	Mass       float64            `json:"mass"`
	Gravity    float64            `json:"gravity"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExport(meta *RunMetadata, states [][]float64, times []float64) ExportData {
	return ExportData{
		ID:         meta.ID,
		System:     meta.System,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Drag:       meta.Drag,
		Mass:       meta.Mass,
		Gravity:    meta.Gravity,
		Steps:      len(times),
		Times:      times,
		States:     states,
		Metrics:    meta.Metrics,
	}
}

func ExportJSONTo(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(meta, states, times))
}

func ExportJSON(path string, meta *RunMetadata, states [][]float64, times []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSONTo(file, meta, states, times)
}

// ExportJSONStdout dumps a completed run (not yet stored) to stdout.
func ExportJSONStdout(meta *RunMetadata, result *dynamo.Result) error {
	states := make([][]float64, len(result.States))
	for i, s := range result.States {
		states[i] = s
	}
	return ExportJSONTo(os.Stdout, meta, states, result.Times)
}
