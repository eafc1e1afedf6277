package qrel

import (
	"math"

	"github.com/spf13/viper"
)

const (
	DefaultSimulations = 100
	DefaultShots       = 8192
	DefaultConfidence  = 0.95
)

// Config holds everything that shapes one evaluation besides the system itself.
type Config struct {
	Simulations   int
	Shots         int
	Confidence    float64
	RenderCircuit bool
	Interval      IntervalMethod
	Construction  Construction
	Workers       int
	// Seed fixes the default simulator's random source. Zero means a random seed.
	Seed uint64
}

func NewConfig() *Config {
	return &Config{
		Simulations:   DefaultSimulations,
		Shots:         DefaultShots,
		Confidence:    DefaultConfidence,
		RenderCircuit: true,
		Interval:      IntervalNormal,
		Construction:  ConstructionCombination,
		Workers:       1,
	}
}

// Option is a function type for configuring an evaluation.
type Option func(*Config)

func WithSimulations(n int) Option {
	return func(c *Config) {
		c.Simulations = n
	}
}

func WithShots(n int) Option {
	return func(c *Config) {
		c.Shots = n
	}
}

func WithConfidence(level float64) Option {
	return func(c *Config) {
		c.Confidence = level
	}
}

func WithRender(render bool) Option {
	return func(c *Config) {
		c.RenderCircuit = render
	}
}

func WithInterval(method IntervalMethod) Option {
	return func(c *Config) {
		c.Interval = method
	}
}

func WithConstruction(construction Construction) Option {
	return func(c *Config) {
		c.Construction = construction
	}
}

// WithWorkers runs up to n repetitions concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// Validate rejects out-of-range values; nothing is clamped.
func (c *Config) Validate() error {
	if c.Simulations < 1 {
		return invalidf("num_simulations must be >= 1, got %d", c.Simulations)
	}
	if c.Shots < 1 {
		return invalidf("numshots must be >= 1, got %d", c.Shots)
	}
	if math.IsNaN(c.Confidence) || c.Confidence <= 0 || c.Confidence >= 1 {
		return invalidf("confidence level %v outside (0, 1)", c.Confidence)
	}
	if c.Interval != IntervalNormal && c.Interval != IntervalStudentT {
		return invalidf("unknown interval method %d", int(c.Interval))
	}
	if c.Construction != ConstructionCombination && c.Construction != ConstructionPattern {
		return invalidf("unknown construction %d", int(c.Construction))
	}
	return nil
}

/*
LoadConfig reads a Config from v. Keys that are not set keep the NewConfig
defaults. Recognised keys: simulations, shots, confidence, render, interval,
construction, workers, seed.
*/
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := NewConfig()

	v.SetDefault("simulations", cfg.Simulations)
	v.SetDefault("shots", cfg.Shots)
	v.SetDefault("confidence", cfg.Confidence)
	v.SetDefault("render", cfg.RenderCircuit)
	v.SetDefault("interval", cfg.Interval.String())
	v.SetDefault("construction", cfg.Construction.String())
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("seed", cfg.Seed)

	interval, err := ParseIntervalMethod(v.GetString("interval"))
	if err != nil {
		return nil, err
	}

	construction, err := ParseConstruction(v.GetString("construction"))
	if err != nil {
		return nil, err
	}

	cfg.Simulations = v.GetInt("simulations")
	cfg.Shots = v.GetInt("shots")
	cfg.Confidence = v.GetFloat64("confidence")
	cfg.RenderCircuit = v.GetBool("render")
	cfg.Interval = interval
	cfg.Construction = construction
	cfg.Workers = v.GetInt("workers")
	cfg.Seed = v.GetUint64("seed")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
