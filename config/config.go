// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Atom      AtomConfig      `yaml:"atom"`
	Nucleus   NucleusConfig   `yaml:"nucleus"`
	Electron  ElectronConfig  `yaml:"electron"`
	Shells    ShellsConfig    `yaml:"shells"`
	Colors    ColorsConfig    `yaml:"colors"`
	Textures  TexturesConfig  `yaml:"textures"`
	Stars     StarsConfig     `yaml:"stars"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Bloom     BloomConfig     `yaml:"bloom"`
	Tone      ToneConfig      `yaml:"tone"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Elements  []ElementConfig `yaml:"elements"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Device pixel ratio is clamped to this
	Background    string  `yaml:"background"`      // Hex colour, e.g. "#020212"
	MSAA          bool    `yaml:"msaa"`
}

// CameraConfig holds perspective and orbit control parameters.
type CameraConfig struct {
	FOV         float64    `yaml:"fov"` // Vertical field of view in degrees
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	Position    [3]float64 `yaml:"position"`
	Target      [3]float64 `yaml:"target"`
	Damping     float64    `yaml:"damping"`      // Fraction of pending motion applied per update
	MinDistance float64    `yaml:"min_distance"` // Closest orbit radius
	MaxDistance float64    `yaml:"max_distance"` // Farthest orbit radius
	RotateSpeed float64    `yaml:"rotate_speed"` // Radians per pixel of mouse drag
	ZoomSpeed   float64    `yaml:"zoom_speed"`   // Scale step per wheel notch
}

// AtomConfig selects which element is displayed at startup.
type AtomConfig struct {
	Element         string  `yaml:"element"`          // Symbol of the initial element
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Global scale on shell angular velocities
}

// NucleusConfig holds nucleon cluster parameters.
type NucleusConfig struct {
	ParticleRadius float64          `yaml:"particle_radius"`
	ClusterScale   float64          `yaml:"cluster_scale"` // Distance of every nucleon centre from the origin
	Segments       int              `yaml:"segments"`      // Sphere mesh rings and slices
	Material       MaterialConfig   `yaml:"material"`
	Glow           GlowConfig       `yaml:"glow"`
	Halo           GlowConfig       `yaml:"halo"`
	Light          PointLightConfig `yaml:"light"`
}

// ElectronConfig holds electron sphere parameters.
type ElectronConfig struct {
	Radius   float64          `yaml:"radius"`
	Segments int              `yaml:"segments"`
	Material MaterialConfig   `yaml:"material"`
	Glow     GlowConfig       `yaml:"glow"`
	Light    PointLightConfig `yaml:"light"`
}

// MaterialConfig holds physically based shading parameters.
type MaterialConfig struct {
	Color              string  `yaml:"color"` // Empty = use the particle colour
	Roughness          float64 `yaml:"roughness"`
	Metalness          float64 `yaml:"metalness"`
	EmissiveIntensity  float64 `yaml:"emissive_intensity"`
	NormalScale        float64 `yaml:"normal_scale"`
	Clearcoat          float64 `yaml:"clearcoat"`
	ClearcoatRoughness float64 `yaml:"clearcoat_roughness"`
	EnvIntensity       float64 `yaml:"env_intensity"`
	Opacity            float64 `yaml:"opacity"`
}

// GlowConfig describes an additive billboard sprite.
type GlowConfig struct {
	Color   string  `yaml:"color"`
	Scale   float64 `yaml:"scale"`
	Opacity float64 `yaml:"opacity"`
}

// PointLightConfig describes a point light with distance falloff.
type PointLightConfig struct {
	Color     string     `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Range     float64    `yaml:"range"` // 0 = no cutoff
	Decay     float64    `yaml:"decay"`
	Position  [3]float64 `yaml:"position"`
}

// ShellsConfig holds the derived shell geometry used when an element does not list shells.
type ShellsConfig struct {
	Capacities   []int        `yaml:"capacities"`    // Bohr filling order
	BaseRadius   float64      `yaml:"base_radius"`   // Radius of the innermost shell
	Spacing      float64      `yaml:"spacing"`       // Radius step between shells
	BaseSpeed    float64      `yaml:"base_speed"`    // Angular velocity of the innermost shell (rad/s)
	SpeedFalloff float64      `yaml:"speed_falloff"` // Multiplier applied per outer shell
	Alternate    bool         `yaml:"alternate"`     // Reverse direction on every other shell
	Tilts        [][2]float64 `yaml:"tilts"`         // Per-shell plane tilt (degrees about X, Z), cycled
	RingTube     float64      `yaml:"ring_tube"`     // Inner ring tube radius
	HaloTube     float64      `yaml:"halo_tube"`     // Outer additive halo tube radius
	RingSegments int          `yaml:"ring_segments"`
	RingColor    string       `yaml:"ring_color"`
	RingOpacity  float64      `yaml:"ring_opacity"`
	RingEmissive float64      `yaml:"ring_emissive"`
	HaloOpacity  float64      `yaml:"halo_opacity"`

	RingRoughness    float64 `yaml:"ring_roughness"`
	RingMetalness    float64 `yaml:"ring_metalness"`
	RingEnvIntensity float64 `yaml:"ring_env_intensity"`
}

// ColorsConfig holds the palette for atom parts.
type ColorsConfig struct {
	Proton   string `yaml:"proton"`
	Neutron  string `yaml:"neutron"`
	Electron string `yaml:"electron"`
	Orbit    string `yaml:"orbit"`
}

// TexturesConfig holds procedural texture parameters.
type TexturesConfig struct {
	Seed         int64             `yaml:"seed"` // 0 = time-based
	NormalSize   int               `yaml:"normal_size"`
	NormalBumps  int               `yaml:"normal_bumps"`
	EmissiveSize int               `yaml:"emissive_size"`
	GlowSize     int               `yaml:"glow_size"`
	ElectronGlow [3]uint8          `yaml:"electron_glow"` // RGB baked into the electron sprite
	NucleusGlow  [3]uint8          `yaml:"nucleus_glow"`  // RGB baked into the nucleus sprite
	Environment  EnvironmentConfig `yaml:"environment"`
}

// EnvironmentConfig describes the light-only scene baked into the environment map.
type EnvironmentConfig struct {
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	Background string             `yaml:"background"`
	Blur       float64            `yaml:"blur"` // Angular lobe width scale
	Lights     []PointLightConfig `yaml:"lights"`
}

// StarsConfig holds starfield parameters.
type StarsConfig struct {
	Count     int         `yaml:"count"`
	MinRadius float64     `yaml:"min_radius"`
	Spread    float64     `yaml:"spread"` // Radius = min_radius + rand*spread
	Size      float64     `yaml:"size"`
	Opacity   float64     `yaml:"opacity"`
	Classes   []StarClass `yaml:"classes"`
}

// StarClass assigns a colour to stars whose roll falls below Threshold.
type StarClass struct {
	Threshold float64    `yaml:"threshold"`
	Color     [3]float64 `yaml:"color"`
}

// LightingConfig holds the studio light rig.
type LightingConfig struct {
	AmbientColor     string             `yaml:"ambient_color"`
	AmbientIntensity float64            `yaml:"ambient_intensity"`
	Lights           []PointLightConfig `yaml:"lights"`
	MaxLights        int                `yaml:"max_lights"` // Shader light slots
}

// BloomConfig holds post-process bloom parameters.
type BloomConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
	Strength  float64 `yaml:"strength"`
	Radius    float64 `yaml:"radius"`
	Downscale int     `yaml:"downscale"` // Bloom targets are this many times smaller
}

// ToneConfig holds tone mapping parameters.
type ToneConfig struct {
	Exposure float64 `yaml:"exposure"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow   int `yaml:"perf_window"`   // Frames averaged per perf sample
	PerfInterval int `yaml:"perf_interval"` // Frames between perf log lines
}

// ElementConfig defines an element preset.
type ElementConfig struct {
	Symbol    string        `yaml:"symbol"`
	Name      string        `yaml:"name"`
	Protons   int           `yaml:"protons"`
	Neutrons  int           `yaml:"neutrons"`
	Electrons int           `yaml:"electrons"` // 0 = neutral atom (electrons = protons)
	Shells    []ShellConfig `yaml:"shells"`    // Empty = derived from ShellsConfig
}

// ShellConfig is an explicit shell override for an element.
type ShellConfig struct {
	Radius    float64    `yaml:"radius"`
	Electrons int        `yaml:"electrons"`
	Speed     float64    `yaml:"speed"`
	Tilt      [2]float64 `yaml:"tilt"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32        // Screen.Width as float32
	ScreenH32    float32        // Screen.Height as float32
	Aspect       float32        // Screen.Width / Screen.Height
	ElementIndex map[string]int // upper-case symbol -> index into Elements
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the layout code cannot honour.
func (c *Config) validate() error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("config: no elements defined")
	}
	for _, el := range c.Elements {
		if el.Protons < 0 || el.Neutrons < 0 || el.Electrons < 0 {
			return fmt.Errorf("config: element %q has negative particle counts", el.Symbol)
		}
		for i, sh := range el.Shells {
			if sh.Radius <= 0 {
				return fmt.Errorf("config: element %q shell %d has non-positive radius", el.Symbol, i)
			}
			if sh.Electrons < 0 {
				return fmt.Errorf("config: element %q shell %d has negative electron count", el.Symbol, i)
			}
		}
	}
	if len(c.Shells.Capacities) == 0 {
		return fmt.Errorf("config: shells.capacities is empty")
	}
	if c.Screen.Height <= 0 || c.Screen.Width <= 0 {
		return fmt.Errorf("config: screen size must be positive")
	}
	return c.validateColors()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Aspect = c.Derived.ScreenW32 / c.Derived.ScreenH32

	if c.Screen.MaxPixelRatio <= 0 {
		c.Screen.MaxPixelRatio = 2
	}
	if c.Bloom.Downscale < 1 {
		c.Bloom.Downscale = 1
	}
	if c.Atom.SpeedMultiplier == 0 {
		c.Atom.SpeedMultiplier = 1
	}

	c.Derived.ElementIndex = make(map[string]int, len(c.Elements))
	for i := range c.Elements {
		el := &c.Elements[i]
		if el.Electrons == 0 {
			el.Electrons = el.Protons
		}
		c.Derived.ElementIndex[strings.ToUpper(el.Symbol)] = i
	}
}

// Element looks up an element preset by symbol (case-insensitive).
func (c *Config) Element(symbol string) (ElementConfig, error) {
	i, ok := c.Derived.ElementIndex[strings.ToUpper(symbol)]
	if !ok {
		return ElementConfig{}, fmt.Errorf("config: unknown element %q", symbol)
	}
	return c.Elements[i], nil
}

// ElementAt returns the element preset at index i, wrapping in both directions.
func (c *Config) ElementAt(i int) (int, ElementConfig) {
	n := len(c.Elements)
	i = ((i % n) + n) % n
	return i, c.Elements[i]
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
