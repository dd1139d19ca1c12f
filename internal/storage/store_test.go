package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

func sampleResult() *simulation.Result {
	return &simulation.Result{
		States: []rigid.State{
			{0, 0, 0, 0, 0, 0},
			{0, -0.001, 0, 0, -0.098, 0},
		},
		Impulses: [][]float64{
			{0, 0.098, 0},
		},
		Times:      []float64{0.0, 0.01},
		Metrics:    map[string]float64{"energy": 1.5},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("ground-drop", 0.01, "default", 2, 3, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scene != "ground-drop" {
		t.Errorf("expected scene 'ground-drop', got '%s'", meta.Scene)
	}
	if meta.Engine != "default" {
		t.Errorf("expected engine 'default', got '%s'", meta.Engine)
	}
	if meta.Dofs != 3 {
		t.Errorf("expected 3 dofs, got %d", meta.Dofs)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(states))
	}
	if len(times) != 2 {
		t.Errorf("expected 2 times, got %d", len(times))
	}

	// time + 6 state + 3 impulse columns, minus the time column.
	if len(states[0]) != 9 {
		t.Errorf("expected 9 value columns, got %d", len(states[0]))
	}

	// Initial row has zero impulse columns; the stepped row carries the
	// resolution that produced it.
	if states[0][7] != 0 {
		t.Errorf("expected zero impulse on initial row, got %f", states[0][7])
	}
	if math.Abs(states[1][7]-0.098) > 1e-9 {
		t.Errorf("expected impulse 0.098 on stepped row, got %f", states[1][7])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("resting-circle", 0.01, "none", 2, 3, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("stack", 0.005, "frictionless", 4, 9, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	meta := &RunMetadata{ID: "x_1", Scene: "x", Engine: "default", Dt: 0.01, Steps: 1}

	err := ExportJSON(path, meta, [][]float64{{1, 2}}, []float64{0})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
