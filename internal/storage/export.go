package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID      string             `json:"id"`
	Scene   string             `json:"scene"`
	Engine  string             `json:"engine"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	States  [][]float64        `json:"states"`
	Metrics map[string]float64 `json:"metrics"`
}

func ExportJSON(path string, meta *RunMetadata, states [][]float64, times []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, meta, states, times)
}

func ExportJSONStdout(meta *RunMetadata, states [][]float64, times []float64) error {
	return writeExport(os.Stdout, meta, states, times)
}

func writeExport(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	data := ExportData{
		ID:      meta.ID,
		Scene:   meta.Scene,
		Engine:  meta.Engine,
		Dt:      meta.Dt,
		Steps:   meta.Steps,
		Times:   times,
		States:  states,
		Metrics: meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
