package scene

var Presets = map[string]*Scene{
	"resting-circle": {
		Name: "resting-circle", GravityX: 0, GravityY: 0, Dt: 0.01,
		Bodies: []BodySpec{
			{Kind: "ground", Height: -0.5},
			{Kind: "circle", X: 0, Y: 0, Radius: 0.5, Mass: 1.0},
		},
	},
	"ground-drop": {
		Name: "ground-drop", GravityY: -9.8, Dt: 0.01,
		Bodies: []BodySpec{
			{Kind: "ground", Height: 0, Friction: 0.3},
			{Kind: "circle", X: 0, Y: 2.0, Radius: 0.5, Mass: 1.0, Friction: 0.3, Restitution: 0.5},
		},
	},
	"sliding-block": {
		Name: "sliding-block", GravityY: -9.8, Dt: 0.01,
		Bodies: []BodySpec{
			{Kind: "ground", Height: 0, Friction: 0.6},
			{Kind: "circle", X: -2.0, Y: 0.5, VX: 3.0, Radius: 0.5, Mass: 1.0, Friction: 0.6},
		},
	},
	"colliding-circles": {
		Name: "colliding-circles", GravityX: 0, GravityY: 0, Dt: 0.01,
		Bodies: []BodySpec{
			{Kind: "circle", X: -1.0, Y: 0, VX: 2.0, Radius: 0.5, Mass: 1.0, Restitution: 0.8},
			{Kind: "circle", X: 1.0, Y: 0, VX: -2.0, Radius: 0.5, Mass: 1.0, Restitution: 0.8},
		},
	},
	"stack": {
		Name: "stack", GravityY: -9.8, Dt: 0.005, Iterations: 32,
		Bodies: []BodySpec{
			{Kind: "ground", Height: 0, Friction: 0.5},
			{Kind: "circle", X: 0, Y: 0.5, Radius: 0.5, Mass: 1.0, Friction: 0.5},
			{Kind: "circle", X: 0.05, Y: 1.5, Radius: 0.5, Mass: 1.0, Friction: 0.5},
			{Kind: "circle", X: -0.05, Y: 2.5, Radius: 0.5, Mass: 1.0, Friction: 0.5},
		},
	},
}

func GetPreset(name string) *Scene {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	return s
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
