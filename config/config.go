// Package config loads starfall settings from TOML and watches the file for edits
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/field"
	"github.com/lixenwraith/starfall/meteor"
	"github.com/lixenwraith/starfall/parameter"
)

// ErrInvalid marks a config value outside its accepted range
var ErrInvalid = errors.New("invalid config")

// DefaultLocation is the config path before home expansion
const DefaultLocation = "~/.config/starfall/config.toml"

type Config struct {
	Scene  SceneConfig  `toml:"scene"`
	Field  FieldConfig  `toml:"field"`
	Meteor MeteorConfig `toml:"meteor"`
	Camera CameraConfig `toml:"camera"`
	Render RenderConfig `toml:"render"`
	Audio  AudioConfig  `toml:"audio"`
	Log    LogConfig    `toml:"log"`
}

type SceneConfig struct {
	Seed    int64   `toml:"seed"`
	Speed   float64 `toml:"speed"`
	Paused  bool    `toml:"paused"`
	Focused bool    `toml:"focused"`
}

type FieldConfig struct {
	Density   int     `toml:"density"` // clamped to [0, 20000]
	RadiusMin float64 `toml:"radius_min"`
	RadiusMax float64 `toml:"radius_max"`
	YScale    float64 `toml:"y_scale"` // < 1 flattens the shell
}

type MeteorConfig struct {
	SpawnDelay  float64 `toml:"spawn_delay"` // seconds, >= 0.05
	Jitter      float64 `toml:"jitter"`      // 0 gives a fixed cadence
	SpeedMin    float64 `toml:"speed_min"`
	SpeedMax    float64 `toml:"speed_max"`
	LifetimeMin float64 `toml:"lifetime_min"`
	LifetimeMax float64 `toml:"lifetime_max"`
}

type CameraConfig struct {
	FOV           float64       `toml:"fov"`
	Distance      float64       `toml:"distance"`
	FocusDistance float64       `toml:"focus_distance"`
	FocusDuration time.Duration `toml:"focus_duration"`
}

type RenderConfig struct {
	PixelRatio float64 `toml:"pixel_ratio"` // 1 glyph cells, 2 half blocks
	FPS        int     `toml:"fps"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Level string `toml:"level"` // "debug", "info", "warn"
}

// Load reads path over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load but a missing file yields the defaults
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// DefaultPath resolves DefaultLocation against the user home directory
func DefaultPath() (string, error) {
	p, err := homedir.Expand(DefaultLocation)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Clean(p), nil
}

func Defaults() *Config {
	return &Config{
		Scene: SceneConfig{
			Seed:  1,
			Speed: parameter.SpeedDefault,
		},
		Field: FieldConfig{
			Density:   parameter.FieldDefaultDensity,
			RadiusMin: parameter.FieldRadiusMin,
			RadiusMax: parameter.FieldRadiusMax,
			YScale:    parameter.FieldYScale,
		},
		Meteor: MeteorConfig{
			SpawnDelay:  parameter.MeteorSpawnDelay,
			Jitter:      parameter.MeteorSpawnJitter,
			SpeedMin:    parameter.MeteorSpeedMin,
			SpeedMax:    parameter.MeteorSpeedMax,
			LifetimeMin: parameter.MeteorLifetimeMin,
			LifetimeMax: parameter.MeteorLifetimeMax,
		},
		Camera: CameraConfig{
			FOV:           parameter.CameraFOV,
			Distance:      parameter.CameraDistance,
			FocusDistance: parameter.CameraFocusDistance,
			FocusDuration: parameter.CameraFocusDuration,
		},
		Render: RenderConfig{
			PixelRatio: 2,
			FPS:        int(time.Second / parameter.FrameInterval),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  parameter.ChimeVolume,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects values no component can run with
// Density is clamped rather than rejected
func (c *Config) Validate() error {
	c.Field.Density = field.ClampDensity(c.Field.Density)

	for _, f := range c.floats() {
		if !control.Finite(f.v) {
			return invalid("%s %v is not finite", f.key, f.v)
		}
	}

	switch {
	case c.Scene.Speed < 0:
		return invalid("scene.speed %v < 0", c.Scene.Speed)
	case c.Field.RadiusMin <= 0 || c.Field.RadiusMax < c.Field.RadiusMin:
		return invalid("field radius [%v, %v]", c.Field.RadiusMin, c.Field.RadiusMax)
	case c.Field.YScale <= 0:
		return invalid("field.y_scale %v <= 0", c.Field.YScale)
	case c.Meteor.SpawnDelay <= 0:
		return invalid("meteor.spawn_delay %v <= 0", c.Meteor.SpawnDelay)
	case c.Meteor.Jitter < 0 || c.Meteor.Jitter >= 1:
		return invalid("meteor.jitter %v outside [0, 1)", c.Meteor.Jitter)
	case c.Meteor.SpeedMin <= 0 || c.Meteor.SpeedMax < c.Meteor.SpeedMin:
		return invalid("meteor speed [%v, %v]", c.Meteor.SpeedMin, c.Meteor.SpeedMax)
	case c.Meteor.LifetimeMin <= 0 || c.Meteor.LifetimeMax < c.Meteor.LifetimeMin:
		return invalid("meteor lifetime [%v, %v]", c.Meteor.LifetimeMin, c.Meteor.LifetimeMax)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return invalid("camera.fov %v", c.Camera.FOV)
	case c.Camera.Distance <= 0 || c.Camera.FocusDistance <= 0:
		return invalid("camera distances must be > 0")
	case c.Camera.FocusDuration < 0:
		return invalid("camera.focus_duration %v < 0", c.Camera.FocusDuration)
	case c.Render.FPS <= 0:
		return invalid("render.fps %d <= 0", c.Render.FPS)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return invalid("audio.volume %v outside [0, 1]", c.Audio.Volume)
	case c.Render.PixelRatio <= 0:
		return invalid("render.pixel_ratio %v <= 0", c.Render.PixelRatio)
	}
	c.Meteor.SpawnDelay = max(parameter.MeteorSpawnDelayMin, c.Meteor.SpawnDelay)
	return nil
}

type floatSetting struct {
	key string
	v   float64
}

// floats lists every float setting by its TOML key
func (c *Config) floats() []floatSetting {
	return []floatSetting{
		{"scene.speed", c.Scene.Speed},
		{"field.radius_min", c.Field.RadiusMin},
		{"field.radius_max", c.Field.RadiusMax},
		{"field.y_scale", c.Field.YScale},
		{"meteor.spawn_delay", c.Meteor.SpawnDelay},
		{"meteor.jitter", c.Meteor.Jitter},
		{"meteor.speed_min", c.Meteor.SpeedMin},
		{"meteor.speed_max", c.Meteor.SpeedMax},
		{"meteor.lifetime_min", c.Meteor.LifetimeMin},
		{"meteor.lifetime_max", c.Meteor.LifetimeMax},
		{"camera.fov", c.Camera.FOV},
		{"camera.distance", c.Camera.Distance},
		{"camera.focus_distance", c.Camera.FocusDistance},
		{"render.pixel_ratio", c.Render.PixelRatio},
		{"audio.volume", c.Audio.Volume},
	}
}

// FieldConfig converts the field section
func (c *Config) FieldConfig() field.Config {
	return field.Config{
		RadiusMin: float32(c.Field.RadiusMin),
		RadiusMax: float32(c.Field.RadiusMax),
		YScale:    float32(c.Field.YScale),
	}
}

// MeteorConfig overlays the meteor section onto the defaults
func (c *Config) MeteorConfig() meteor.Config {
	m := meteor.DefaultConfig()
	m.SpawnDelay = c.Meteor.SpawnDelay
	m.Jitter = c.Meteor.Jitter
	m.SpeedMin, m.SpeedMax = c.Meteor.SpeedMin, c.Meteor.SpeedMax
	m.LifetimeMin, m.LifetimeMax = c.Meteor.LifetimeMin, c.Meteor.LifetimeMax
	return m
}

// Controls returns the startup controls
func (c *Config) Controls() control.Controls {
	return control.Controls{
		Speed:      c.Scene.Speed,
		Density:    c.Field.Density,
		Paused:     c.Scene.Paused,
		Focused:    c.Scene.Focused,
		SpawnDelay: c.Meteor.SpawnDelay,
	}
}

// FrameInterval returns the ticker period for render.fps
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}
