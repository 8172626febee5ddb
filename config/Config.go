// Package config holds the tunable inputs of every algorithm, with
// defaults and loading from YAML files
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/tabular/agent/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"gonum.org/v1/gonum/spatial/r1"
)

// Config is the configuration of a complete run of all algorithms
type Config struct {
	// Seed seeds every random source. Components derive their own
	// seeds from it so that their streams are independent.
	Seed uint64 `yaml:"seed"`

	Bandit    Bandit    `yaml:"bandit"`
	Blackjack Blackjack `yaml:"blackjack"`
	GridWorld GridWorld `yaml:"gridworld"`
}

// Bandit configures the multi-armed bandit and its two solvers
type Bandit struct {
	Machines int     `yaml:"machines"`
	Levers   int     `yaml:"levers"`
	StdDev   float64 `yaml:"stdDev"`
	// Lever means are drawn uniformly from [MeanMin, MeanMax]
	MeanMin float64 `yaml:"meanMin"`
	MeanMax float64 `yaml:"meanMax"`

	Steps   int     `yaml:"steps"`
	Epsilon float64 `yaml:"epsilon"`
	Tau     float64 `yaml:"tau"`
}

// Blackjack configures Monte Carlo control on blackjack
type Blackjack struct {
	Episodes int `yaml:"episodes"`

	// EvalEpisodes is the number of games played with the learned
	// policy, without learning, once training is done
	EvalEpisodes int `yaml:"evalEpisodes"`

	// ExploringActions randomizes the first action of every training
	// game
	ExploringActions bool `yaml:"exploringActions"`
}

// GridWorld configures dynamic programming on the gridworld
type GridWorld struct {
	Size      int     `yaml:"size"`
	Discount  float64 `yaml:"discount"`
	Theta     float64 `yaml:"theta"`
	MaxSweeps int     `yaml:"maxSweeps"`

	// RolloutSteps bounds the episode played with the improved policy
	RolloutSteps int `yaml:"rolloutSteps"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Seed: 1,
		Bandit: Bandit{
			Machines: 5,
			Levers:   3,
			StdDev:   1.0,
			MeanMin:  0,
			MeanMax:  10,
			Steps:    1000,
			Epsilon:  0.01,
			Tau:      1.0,
		},
		Blackjack: Blackjack{
			Episodes:     10000,
			EvalEpisodes: 1000,
		},
		GridWorld: GridWorld{
			Size:         gridworld.DefaultSize,
			Discount:     dp.DefaultDiscount,
			Theta:        dp.DefaultTheta,
			RolloutSteps: 100,
		},
	}
}

// Load reads a YAML configuration from path. Fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: failed to read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration over the defaults and validates it
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate ensures that every section of the Config is valid
func (c Config) Validate() error {
	return errors.Join(
		c.Bandit.Validate(),
		c.Blackjack.Validate(),
		c.GridWorld.Validate(),
	)
}

// Validate ensures that the Bandit configuration is valid
func (b Bandit) Validate() error {
	if b.Machines <= 0 || b.Levers <= 0 {
		return fmt.Errorf("bandit: need at least one machine and lever, got "+
			"%d machines with %d levers", b.Machines, b.Levers)
	}
	if b.StdDev <= 0 {
		return fmt.Errorf("bandit: stdDev must be positive, got %v", b.StdDev)
	}
	if b.MeanMax < b.MeanMin {
		return fmt.Errorf("bandit: meanMax %v below meanMin %v", b.MeanMax,
			b.MeanMin)
	}
	if b.Steps < 0 {
		return fmt.Errorf("bandit: steps cannot be negative, got %d", b.Steps)
	}
	if b.Epsilon < 0 || b.Epsilon > 1 {
		return fmt.Errorf("bandit: epsilon must be in [0, 1], got %v",
			b.Epsilon)
	}
	if b.Tau <= 0 {
		return fmt.Errorf("bandit: tau must be positive, got %v", b.Tau)
	}
	return nil
}

// Means returns the interval lever means are drawn from
func (b Bandit) Means() r1.Interval {
	return r1.Interval{Min: b.MeanMin, Max: b.MeanMax}
}

// Validate ensures that the Blackjack configuration is valid
func (b Blackjack) Validate() error {
	if b.Episodes < 0 || b.EvalEpisodes < 0 {
		return fmt.Errorf("blackjack: episode counts cannot be negative, "+
			"got %d and %d", b.Episodes, b.EvalEpisodes)
	}
	return nil
}

// Validate ensures that the GridWorld configuration is valid
func (g GridWorld) Validate() error {
	if g.Size < 2 {
		return fmt.Errorf("gridworld: size must be at least 2, got %d",
			g.Size)
	}
	if g.RolloutSteps <= 0 {
		return fmt.Errorf("gridworld: rolloutSteps must be positive, got %d",
			g.RolloutSteps)
	}
	if err := g.DP().Validate(); err != nil {
		return fmt.Errorf("gridworld: %w", err)
	}
	return nil
}

// DP returns the policy evaluation configuration
func (g GridWorld) DP() dp.Config {
	return dp.Config{
		Discount:  g.Discount,
		Theta:     g.Theta,
		MaxSweeps: g.MaxSweeps,
	}
}
