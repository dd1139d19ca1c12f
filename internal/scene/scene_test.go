package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()

	if s.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if s.GravityY >= 0 {
		t.Error("default gravity should point down")
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := GetPreset("ground-drop")
	path := filepath.Join(t.TempDir(), "scene.yaml")

	if err := Save(path, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != s.Name {
		t.Errorf("expected name %q, got %q", s.Name, loaded.Name)
	}
	if loaded.GravityY != s.GravityY {
		t.Errorf("expected gravity %f, got %f", s.GravityY, loaded.GravityY)
	}
	if len(loaded.Bodies) != len(s.Bodies) {
		t.Fatalf("expected %d bodies, got %d", len(s.Bodies), len(loaded.Bodies))
	}
	if loaded.Bodies[1].Y != 2.0 {
		t.Errorf("expected circle y 2.0, got %f", loaded.Bodies[1].Y)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "name: partial\nbodies:\n  - kind: ground\n    height: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Dt != DefaultDt {
		t.Errorf("expected default dt %f, got %f", DefaultDt, s.Dt)
	}
	if s.GravityY != DefaultGravityY {
		t.Errorf("expected default gravity %f, got %f", DefaultGravityY, s.GravityY)
	}
}

func TestBuild(t *testing.T) {
	s := GetPreset("sliding-block")

	w, err := s.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if w.NumBodies() != 2 {
		t.Errorf("expected 2 bodies, got %d", w.NumBodies())
	}
	if w.NumDofs() != 3 {
		t.Errorf("expected 3 dofs, got %d", w.NumDofs())
	}

	circle, err := w.Body(1)
	if err != nil {
		t.Fatalf("body lookup failed: %v", err)
	}
	if circle.Velocity.X() != 3.0 {
		t.Errorf("expected vx 3.0, got %f", circle.Velocity.X())
	}
	if circle.FrictionCoeff() != 0.6 {
		t.Errorf("expected friction 0.6, got %f", circle.FrictionCoeff())
	}
}

func TestBuildRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		spec BodySpec
		want string
	}{
		{"unknown kind", BodySpec{Kind: "triangle"}, "unknown body kind"},
		{"zero radius", BodySpec{Kind: "circle", Mass: 1}, "positive radius"},
		{"zero mass", BodySpec{Kind: "circle", Radius: 0.5}, "positive mass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scene{Dt: 0.01, Bodies: []BodySpec{tt.spec}}
			_, err := s.Build()
			if err == nil {
				t.Fatal("expected build to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if s := GetPreset("nonexistent"); s != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	found := false
	for _, n := range names {
		if n == "resting-circle" {
			found = true
		}
	}
	if !found {
		t.Error("expected resting-circle among presets")
	}
}

func TestPresetsBuild(t *testing.T) {
	for name := range Presets {
		t.Run(name, func(t *testing.T) {
			s := GetPreset(name)
			if _, err := s.Build(); err != nil {
				t.Errorf("preset %s does not build: %v", name, err)
			}
		})
	}
}
