// Package config loads search hyper-parameters and host-engine variant
// toggles. The contest referee offers no filesystem, so Default() is the
// operative configuration there; the arena reads config.yaml.
package config

import (
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/raysplaceinspace/spring-challenge-2023/simulator"
	"github.com/raysplaceinspace/spring-challenge-2023/solving"
)

// OuterConfig is the enveloping yaml document: a kind selector and an
// arbitrary def block decoded in a second pass.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// HyperParameter is one key/val pair of the hyperParams list.
type HyperParameter struct {
	Key string  `yaml:"key"`
	Val float64 `yaml:"val"`
}

// Config holds everything tunable about the search and the simulated
// engine variants.
// Field tags are lowercase because viper lowercases every key before the
// inner yaml decode sees them.
type Config struct {
	// HyperParams is a key-val list of named numeric parameters.
	HyperParams []HyperParameter `yaml:"hyperparams"`
	// SearchBudget bounds one turn's solve loop, e.g. "90ms".
	SearchBudget string `yaml:"searchbudget"`
	// Variants select between ambiguous host-engine behaviors.
	Variants Variants `yaml:"variants"`
	// AnnounceStats appends a MESSAGE command with search statistics.
	AnnounceStats bool `yaml:"announcestats"`
}

// Variants mirror the host-engine behaviors that differ between sources.
type Variants struct {
	CreditBoth    bool `yaml:"creditboth"`
	StrictWin     bool `yaml:"strictwin"`
	Unhindered    bool `yaml:"unhindered"`
	TerminalShare bool `yaml:"terminalshare"`
}

// Default is the tuned configuration the contest binary runs with.
func Default() *Config {
	return &Config{
		SearchBudget: "90ms",
	}
}

// FromYaml reads a config file through viper's outer kind/def envelope.
func FromYaml(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetHyperParamOrDefault returns the named parameter or the fallback.
func (cfg *Config) GetHyperParamOrDefault(param string, defaultVal float64) float64 {
	for _, kvp := range cfg.HyperParams {
		if kvp.Key == param {
			return kvp.Val
		}
	}
	return defaultVal
}

// Budget parses the search deadline duration.
func (cfg *Config) Budget() time.Duration {
	if d, err := time.ParseDuration(cfg.SearchBudget); err == nil {
		return d
	}
	return 90 * time.Millisecond
}

// SimOptions assembles the simulator variant toggles.
func (cfg *Config) SimOptions() simulator.Options {
	return simulator.Options{
		Unhindered: cfg.Variants.Unhindered,
		CreditBoth: cfg.Variants.CreditBoth,
		StrictWin:  cfg.Variants.StrictWin,
	}
}

// SolverOptions assembles the solver loop parameters for a seat.
func (cfg *Config) SolverOptions(player, numTicks int) solving.Options {
	return solving.Options{
		Player:           player,
		LearningRate:     cfg.GetHyperParamOrDefault("learningRate", 0.01),
		Power:            cfg.GetHyperParamOrDefault("power", 2.0),
		EnemyProbability: cfg.GetHyperParamOrDefault("enemyProbability", 0.25),
		Rollout: solving.RolloutOptions{
			NumTicks:      numTicks,
			Decay:         cfg.GetHyperParamOrDefault("decay", 0.98),
			WinBonus:      cfg.GetHyperParamOrDefault("winBonus", 0),
			TerminalShare: cfg.Variants.TerminalShare,
			Sim:           cfg.SimOptions(),
		},
	}
}
