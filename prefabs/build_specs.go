package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed      float64 `yaml:"move_speed"`
	JumpHeight     float64 `yaml:"jump_height"`
	JumpTimeToPeak float64 `yaml:"jump_time_to_peak"`
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type SpriteComponentSpec struct {
	Image  string    `yaml:"image"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	FlipX  bool      `yaml:"flip_x"`
	Fill   YAMLColor `yaml:"fill"`
}

type AnimatedSpriteComponentSpec struct {
	FrameW   int     `yaml:"frame_w"`
	FrameH   int     `yaml:"frame_h"`
	Columns  int     `yaml:"columns"`
	First    int     `yaml:"first"`
	Last     int     `yaml:"last"`
	Interval float64 `yaml:"interval"`
}

type RenderLayerComponentSpec struct {
	Z float64 `yaml:"z"`
}

type ColliderComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Shape  string  `yaml:"shape"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

type HealthComponentSpec struct {
	Max float64 `yaml:"max"`
}

type EnemyComponentSpec struct {
	Damage float64 `yaml:"damage"`
}

// MovementComponentSpec bounds are in tiles.
type MovementComponentSpec struct {
	Kind     string  `yaml:"kind"`
	Left     float64 `yaml:"left"`
	Right    float64 `yaml:"right"`
	MinSpeed float64 `yaml:"min_speed"`
}

type GrappleComponentSpec struct {
	PullStrength      float64 `yaml:"pull_strength"`
	GuidelineDistance float64 `yaml:"guideline_distance"`
}

type CameraComponentSpec struct {
	Divisor   float64 `yaml:"divisor"`
	DeadZone  float64 `yaml:"dead_zone"`
	MaxSpeedX float64 `yaml:"max_speed_x"`
	MaxSpeedY float64 `yaml:"max_speed_y"`
	Zoom      float64 `yaml:"zoom"`
}
