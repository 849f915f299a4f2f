// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Progression ProgressionConfig `yaml:"progression"`
	Click       ClickConfig       `yaml:"click"`
	Division    DivisionConfig    `yaml:"division"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Background  BackgroundConfig  `yaml:"background"`
	Food        FoodConfig        `yaml:"food"`
	Feeding     FeedingConfig     `yaml:"feeding"`
	Satiety     SatietyConfig     `yaml:"satiety"`
	Expression  ExpressionConfig  `yaml:"expression"`
	Store       StoreConfig       `yaml:"store"`
	AutoClick   AutoClickConfig   `yaml:"auto_click"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Audio       AudioConfig       `yaml:"audio"`
	Version     VersionConfig     `yaml:"version"`
	DevTools    DevToolsConfig    `yaml:"devtools"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	TargetFPS  int  `yaml:"target_fps"`
	Fullscreen bool `yaml:"fullscreen"`
	Borderless bool `yaml:"borderless"`
}

// ProgressionConfig holds the cumulative click thresholds for each stage.
// Thresholds must be non-decreasing in declaration order.
type ProgressionConfig struct {
	Initial             int64 `yaml:"initial"`
	PreEvolutionStart   int64 `yaml:"pre_evolution_start"`
	PreEvolutionEnd     int64 `yaml:"pre_evolution_end"`
	PostEvolutionStart  int64 `yaml:"post_evolution_start"`
	CellDivisionEnd     int64 `yaml:"cell_division_end"`
	SquidTransformation int64 `yaml:"squid_transformation"`
	ClicksPerDivision   int64 `yaml:"clicks_per_division"`
	GrowthClicks        int64 `yaml:"growth_clicks"` // Clicks over which the dormant cell grows to full size
}

// ClickConfig holds click admission settings.
type ClickConfig struct {
	CooldownMS int `yaml:"cooldown_ms"` // Minimum interval between accepted clicks
}

// DivisionConfig holds cell division geometry.
type DivisionConfig struct {
	CellDiameter float64 `yaml:"cell_diameter"`
	Overlap      float64 `yaml:"overlap"`      // Fraction of the diameter shared with the parent
	ScaleJitter  float64 `yaml:"scale_jitter"` // New cell scale = 1 - jitter/2 + rand*jitter
}

// ParticlesConfig holds ambient particle parameters. Positions are in percent space [0, 100).
type ParticlesConfig struct {
	InitialCount int     `yaml:"initial_count"`
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	AngleJitter  float64 `yaml:"angle_jitter"` // Full width of the per-tick heading wobble
	PushDecay    float64 `yaml:"push_decay"`   // Geometric decay of push velocity per tick
	PushStrength float64 `yaml:"push_strength"`
	PushRadius   float64 `yaml:"push_radius"`
	TickMS       int     `yaml:"tick_ms"`
}

// BackgroundConfig holds background cell parameters.
type BackgroundConfig struct {
	CellCount   int     `yaml:"cell_count"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MaxOpacity  float64 `yaml:"max_opacity"`
	OpacityStep float64 `yaml:"opacity_step"`
	Types       int     `yaml:"types"`
}

// FoodConfig holds food particle parameters.
type FoodConfig struct {
	MinSize        float64 `yaml:"min_size"`
	MaxSize        float64 `yaml:"max_size"`
	Types          int     `yaml:"types"`
	MaxParticles   int     `yaml:"max_particles"`
	FadeStartMS    int     `yaml:"fade_start_ms"`
	FadeDurationMS int     `yaml:"fade_duration_ms"`
	RemoveAfterMS  int     `yaml:"remove_after_ms"`
}

// FeedingConfig holds the squid consumption parameters.
type FeedingConfig struct {
	MinParticlesForSuck int     `yaml:"min_particles_for_suck"`
	SuckRadius          float64 `yaml:"suck_radius"`
	EatingDurationMS    int     `yaml:"eating_duration_ms"`
	SquidX              float64 `yaml:"squid_x"` // Home position the squid idles back to
	SquidY              float64 `yaml:"squid_y"`
	SwimTickMS          int     `yaml:"swim_tick_ms"`
	SwimSpeed           float64 `yaml:"swim_speed"`     // Percent per tick while chasing food
	IdleSpeed           float64 `yaml:"idle_speed"`     // Percent per tick while returning home
	SwimDamping         float64 `yaml:"swim_damping"`   // Velocity kept each tick
	SwimInfluence       float64 `yaml:"swim_influence"` // Share of the steering velocity added each tick
	ArriveRadius        float64 `yaml:"arrive_radius"`  // Close enough to the target to stop chasing
}

// SatietyTier maps a range of satiety levels to growth and per-particle gain.
// A tier applies to levels <= MaxLevel; the last tier applies to every level above.
type SatietyTier struct {
	MaxLevel int     `yaml:"max_level"`
	Growth   float64 `yaml:"growth"` // Multiplier applied to max on level up
	Gain     float64 `yaml:"gain"`   // Satiety gained per particle eaten
}

// SatietyConfig holds the satiety meter parameters.
type SatietyConfig struct {
	InitialMax float64       `yaml:"initial_max"`
	Tiers      []SatietyTier `yaml:"tiers"`
}

// ExpressionConfig holds squid expression timing.
type ExpressionConfig struct {
	BlinkDurationMS      int     `yaml:"blink_duration_ms"`
	BlinkChance          float64 `yaml:"blink_chance"`
	BlinkCheckIntervalMS int     `yaml:"blink_check_interval_ms"`
}

// StoreConfig holds store parameters.
type StoreConfig struct {
	BoostWindowSec float64 `yaml:"boost_window_sec"`
	CatalogPath    string  `yaml:"catalog_path"` // Empty = embedded catalog
}

// AutoClickConfig holds auto-clicker accrual parameters.
type AutoClickConfig struct {
	IntervalSec float64 `yaml:"interval_sec"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled      bool              `yaml:"enabled"`
	MasterVolume float64           `yaml:"master_volume"` // 0..1
	SampleRate   int               `yaml:"sample_rate"`
	Sounds       map[string]string `yaml:"sounds"` // key -> wav path
}

// VersionConfig holds the remote version gate settings.
type VersionConfig struct {
	Enabled    bool    `yaml:"enabled"`
	URL        string  `yaml:"url"`
	AnonKey    string  `yaml:"anon_key"`
	TimeoutSec float64 `yaml:"timeout_sec"`
}

// DevToolsConfig holds developer tooling settings.
type DevToolsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ClickCooldown      time.Duration
	ParticleTick       time.Duration
	FoodFadeStart      time.Duration
	FoodFadeDuration   time.Duration
	FoodRemoveAfter    time.Duration
	EatingDuration     time.Duration
	SwimTick           time.Duration
	BlinkDuration      time.Duration
	BlinkCheckInterval time.Duration
	BoostWindow        time.Duration
	AutoClickInterval  time.Duration
	StatsWindow        time.Duration
	VersionTimeout     time.Duration
	ScreenW32          float32
	ScreenH32          float32
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Refresh validates c and recomputes Derived. Call it after editing fields in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// applyEnv overrides secrets and toggles from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("FITV_VERSION_URL"); v != "" {
		c.Version.URL = v
	}
	if v := os.Getenv("FITV_VERSION_KEY"); v != "" {
		c.Version.AnonKey = v
	}
	if v := os.Getenv("FITV_AUDIO_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = enabled
		}
	}
}

// Validate checks invariants the game relies on.
func (c *Config) Validate() error {
	p := c.Progression
	thresholds := []struct {
		name  string
		value int64
	}{
		{"initial", p.Initial},
		{"pre_evolution_start", p.PreEvolutionStart},
		{"pre_evolution_end", p.PreEvolutionEnd},
		{"post_evolution_start", p.PostEvolutionStart},
		{"cell_division_end", p.CellDivisionEnd},
		{"squid_transformation", p.SquidTransformation},
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].value < thresholds[i-1].value {
			return fmt.Errorf("progression.%s (%d) is below progression.%s (%d)",
				thresholds[i].name, thresholds[i].value, thresholds[i-1].name, thresholds[i-1].value)
		}
	}
	if p.ClicksPerDivision <= 0 {
		return errors.New("progression.clicks_per_division must be positive")
	}
	if c.Food.MaxParticles < c.Feeding.MinParticlesForSuck {
		return fmt.Errorf("food.max_particles (%d) is below feeding.min_particles_for_suck (%d)",
			c.Food.MaxParticles, c.Feeding.MinParticlesForSuck)
	}
	if d := c.Feeding.SwimDamping; d < 0 || d >= 1 {
		return fmt.Errorf("feeding.swim_damping (%v) must be in [0, 1)", d)
	}
	if len(c.Satiety.Tiers) == 0 {
		return errors.New("satiety.tiers must not be empty")
	}
	if c.Satiety.InitialMax <= 0 {
		return errors.New("satiety.initial_max must be positive")
	}
	if c.Store.BoostWindowSec <= 0 {
		return errors.New("store.boost_window_sec must be positive")
	}
	if c.AutoClick.IntervalSec <= 0 {
		return errors.New("auto_click.interval_sec must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ClickCooldown = millis(c.Click.CooldownMS)
	c.Derived.ParticleTick = millis(c.Particles.TickMS)
	c.Derived.FoodFadeStart = millis(c.Food.FadeStartMS)
	c.Derived.FoodFadeDuration = millis(c.Food.FadeDurationMS)
	c.Derived.FoodRemoveAfter = millis(c.Food.RemoveAfterMS)
	c.Derived.EatingDuration = millis(c.Feeding.EatingDurationMS)
	c.Derived.SwimTick = millis(c.Feeding.SwimTickMS)
	c.Derived.BlinkDuration = millis(c.Expression.BlinkDurationMS)
	c.Derived.BlinkCheckInterval = millis(c.Expression.BlinkCheckIntervalMS)
	c.Derived.BoostWindow = seconds(c.Store.BoostWindowSec)
	c.Derived.AutoClickInterval = seconds(c.AutoClick.IntervalSec)
	c.Derived.StatsWindow = seconds(c.Telemetry.StatsWindow)
	c.Derived.VersionTimeout = seconds(c.Version.TimeoutSec)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
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
