package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

const (
	DefaultDt       = 0.01
	DefaultGravityY = -9.8
)

// Scene is a YAML description of a world: gravity, timestep, solver
// iterations and the body list.
type Scene struct {
	Name       string     `yaml:"name"`
	GravityX   float64    `yaml:"gravity_x"`
	GravityY   float64    `yaml:"gravity_y"`
	Dt         float64    `yaml:"dt"`
	Iterations int        `yaml:"iterations"`
	Bodies     []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body. Kind selects the shape: "circle" uses
// x/y/radius/mass plus the optional motion fields, "ground" uses height.
type BodySpec struct {
	Kind        string  `yaml:"kind"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Angle       float64 `yaml:"angle"`
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
	Omega       float64 `yaml:"omega"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	Height      float64 `yaml:"height"`
}

// DefaultScene is an empty world under standard gravity.
func DefaultScene() *Scene {
	return &Scene{
		Name:     "empty",
		GravityY: DefaultGravityY,
		Dt:       DefaultDt,
	}
}

// Load reads a scene file. Fields absent from the file keep the
// DefaultScene values.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScene()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the world the scene describes. Body order in the
// YAML fixes body index order.
func (s *Scene) Build() (*simulation.World, error) {
	w := simulation.NewWorld(mgl64.Vec2{s.GravityX, s.GravityY}, s.Dt, s.Iterations)

	for i, spec := range s.Bodies {
		b, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		w.AddBody(b)
	}
	return w, nil
}

func (spec BodySpec) build() (*rigid.Body, error) {
	switch spec.Kind {
	case "circle":
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("circle needs a positive radius, got %f", spec.Radius)
		}
		if spec.Mass <= 0 {
			return nil, fmt.Errorf("circle needs a positive mass, got %f", spec.Mass)
		}
		b := rigid.NewCircle(mgl64.Vec2{spec.X, spec.Y}, spec.Radius, spec.Mass)
		b.Angle = spec.Angle
		b.Velocity = mgl64.Vec2{spec.VX, spec.VY}
		b.AngularVelocity = spec.Omega
		b.Restitution = spec.Restitution
		b.SetFrictionCoeff(spec.Friction)
		return b, nil

	case "ground":
		b := rigid.NewGround(spec.Height)
		b.Restitution = spec.Restitution
		b.SetFrictionCoeff(spec.Friction)
		return b, nil

	default:
		return nil, fmt.Errorf("unknown body kind %q", spec.Kind)
	}
}
