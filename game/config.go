package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and LoadConfig for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the simulation configuration
type Config struct {
	// ScreenWidth and ScreenHeight are the play area in pixels
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`

	// FPS is the frame rate cap of the front-ends
	FPS int `yaml:"fps"`

	// Seed for the random source; 0 seeds from the clock
	Seed int64 `yaml:"seed"`

	// CellSize is the size of each collision grid cell in pixels
	CellSize float64 `yaml:"cell_size"`

	// GridThreshold is the group size from which collisions use the grid; 0 disables it
	GridThreshold int `yaml:"grid_threshold"`

	Log       LogConfig       `yaml:"log"`
	Wind      WindConfig      `yaml:"wind"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Burst     BurstConfig     `yaml:"burst"`
	Smoke     SmokeConfig     `yaml:"smoke"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Predictor PredictorConfig `yaml:"predictor"`
	Audio     AudioConfig     `yaml:"audio"`
	Profile   ProfileConfig   `yaml:"profile"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

type WindConfig struct {
	InitialMin float64 `yaml:"initial_min"`
	InitialMax float64 `yaml:"initial_max"`
	Max        float64 `yaml:"max"`
}

// ScenarioConfig is the geometry of both scenarios
type ScenarioConfig struct {
	LaunchX float64 `yaml:"launch_x"`
	LaunchY float64 `yaml:"launch_y"`

	// static target: the band guided rockets are judged against
	BandLow      float64 `yaml:"band_low"`
	BandHigh     float64 `yaml:"band_high"`
	ThresholdX   float64 `yaml:"threshold_x"`
	GuidedSpeed  float64 `yaml:"guided_speed"`
	SalvoSize    int     `yaml:"salvo_size"`
	SalvoLimit   int     `yaml:"salvo_limit"`
	TumbleSpeed  float64 `yaml:"tumble_speed"`
	BeamSpeed    float64 `yaml:"beam_speed"`
	GuidedSmoke  bool    `yaml:"guided_smoke"`
	RangeFactor  float64 `yaml:"range_factor"` // guided max distance in screen widths
	TargetY      float64 `yaml:"target_y"`
	TargetSize   float64 `yaml:"target_size"`
	TargetSpeed  float64 `yaml:"target_speed"`
	InterceptVel float64 `yaml:"intercept_speed"`
}

// Band returns the guided rocket target band
func (s ScenarioConfig) Band() TargetBand {
	return TargetBand{Low: s.BandLow, High: s.BandHigh, ThresholdX: s.ThresholdX}
}

// Launch returns the launch point shared by both scenarios
func (s ScenarioConfig) Launch() Vector2 {
	return Vec(s.LaunchX, s.LaunchY)
}

// BurstConfig describes an explosion: how many sparks and how they fly
type BurstConfig struct {
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Color       Color   `yaml:"color"`
	MaxDuration float64 `yaml:"max_duration"`
	Gravity     float64 `yaml:"gravity"` // px/s², down the screen
	SparksMin   int     `yaml:"sparks_min"`
	SparksMax   int     `yaml:"sparks_max"`
	AngleFrom   float64 `yaml:"angle_from"`
	AngleTo     float64 `yaml:"angle_to"`
}

type SmokeConfig struct {
	Chance     float64 `yaml:"chance"`
	EndRadius  float64 `yaml:"end_radius"`
	MaxAge     float64 `yaml:"max_age"`
	AlphaStart float64 `yaml:"alpha_start"`
	AlphaEnd   float64 `yaml:"alpha_end"`
	WindFactor float64 `yaml:"wind_factor"`
	Color      Color   `yaml:"color"`
}

type DatasetConfig struct {
	Record  bool   `yaml:"record"`
	Backend string `yaml:"backend"` // file or gdata
	Dir     string `yaml:"dir"`
	AppName string `yaml:"app_name"`
}

type PredictorConfig struct {
	// Classifier and Aim name a JS file, a script on the server (server:<name>),
	// "builtin" for the embedded script, or "intercept" for the analytic solver
	Classifier string `yaml:"classifier"`
	Aim        string `yaml:"aim"`
	ServerURL  string `yaml:"server_url"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// ProfileConfig controls the frame-drop profiler of the window front-end
type ProfileConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Dir      string  `yaml:"dir"`
	MinFPS   float64 `yaml:"min_fps"`
	Warmup   float64 `yaml:"warmup"`   // seconds after start with no captures
	Cooldown float64 `yaml:"cooldown"` // seconds between captures
	Duration float64 `yaml:"duration"` // seconds captured
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   1200,
		ScreenHeight:  800,
		FPS:           60,
		CellSize:      100,
		GridThreshold: 32,
		Log:           LogConfig{Level: "info", Format: "text"},
		Wind: WindConfig{
			InitialMin: 50,
			InitialMax: 250,
			Max:        400,
		},
		Scenario: ScenarioConfig{
			LaunchX:      100,
			LaunchY:      400,
			BandLow:      200,
			BandHigh:     600,
			ThresholdX:   800,
			GuidedSpeed:  50,
			SalvoSize:    5,
			SalvoLimit:   500,
			TumbleSpeed:  120,
			BeamSpeed:    300,
			RangeFactor:  2,
			TargetY:      100,
			TargetSize:   50,
			TargetSpeed:  50,
			InterceptVel: 200,
		},
		Burst: BurstConfig{
			MinSpeed:    20,
			MaxSpeed:    150,
			Color:       Color{R: 255, G: 255, A: 255},
			MaxDuration: 2.5,
			Gravity:     3.7,
			SparksMin:   5,
			SparksMax:   20,
			AngleFrom:   0,
			AngleTo:     360,
		},
		Smoke: SmokeConfig{
			Chance:     0.7,
			EndRadius:  10,
			MaxAge:     7.5,
			AlphaStart: 64,
			AlphaEnd:   0,
			WindFactor: 0.05,
			Color:      Color{R: 100, G: 100, B: 100, A: 255},
		},
		Dataset: DatasetConfig{
			Backend: "file",
			Dir:     ".",
			AppName: "rocketsim",
		},
		Predictor: PredictorConfig{
			Classifier: "builtin",
			Aim:        "intercept",
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.3,
		},
		Profile: ProfileConfig{
			Dir:      "profiles",
			MinFPS:   45,
			Warmup:   3,
			Cooldown: 10,
			Duration: 5,
		},
	}
}

// Bounds returns the global play area
func (c Config) Bounds() Rect {
	return NewRect(0, 0, float64(c.ScreenWidth), float64(c.ScreenHeight))
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}
	check(c.ScreenWidth > 0 && c.ScreenHeight > 0, "screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	check(c.FPS > 0, "fps %d", c.FPS)
	check(c.CellSize > 0, "cell_size %g", c.CellSize)
	check(c.Wind.Max >= 0, "wind.max %g", c.Wind.Max)
	check(c.Wind.InitialMin <= c.Wind.InitialMax, "wind initial range %g..%g", c.Wind.InitialMin, c.Wind.InitialMax)
	check(c.Scenario.BandLow < c.Scenario.BandHigh, "target band %g..%g", c.Scenario.BandLow, c.Scenario.BandHigh)
	check(c.Scenario.SalvoSize > 0, "salvo_size %d", c.Scenario.SalvoSize)
	check(c.Scenario.SalvoLimit >= c.Scenario.SalvoSize, "salvo_limit %d below salvo_size", c.Scenario.SalvoLimit)
	check(c.Burst.SparksMin >= 0 && c.Burst.SparksMin <= c.Burst.SparksMax, "burst sparks %d..%d", c.Burst.SparksMin, c.Burst.SparksMax)
	check(c.Burst.MinSpeed <= c.Burst.MaxSpeed, "burst speed %g..%g", c.Burst.MinSpeed, c.Burst.MaxSpeed)
	check(c.Smoke.Chance >= 0 && c.Smoke.Chance <= 1, "smoke.chance %g", c.Smoke.Chance)
	check(c.Smoke.MaxAge > 0, "smoke.max_age %g", c.Smoke.MaxAge)
	switch c.Dataset.Backend {
	case "file", "gdata":
	default:
		check(false, "dataset.backend %q", c.Dataset.Backend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		check(false, "log.format %q", c.Log.Format)
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Color is an RGBA colour written as "#rrggbb" or "#rrggbbaa" in YAML
type Color color.RGBA

// ToRGBA returns the colour as color.RGBA
func (c Color) ToRGBA() color.RGBA { return color.RGBA(c) }

// String formats the colour as #rrggbbaa
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"; alpha defaults to opaque
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: colour %q: want 6 or 8 hex digits", ErrInvalidConfig, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
