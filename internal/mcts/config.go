package mcts

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed config/search.default.yaml
var defaultSearchConfigYAML []byte

// SearchConfig bundles the tunables of one search run: the UCB exploration
// constant, the rollout return shape, and how many iterations to spend.
type SearchConfig struct {
	Iterations        int        `yaml:"iterations"`
	C                 float64    `yaml:"exploration_constant"`
	Gamma             float64    `yaml:"gamma"`
	MaxSteps          int        `yaml:"max_steps"`
	ReturnType        ReturnType `yaml:"-"`
	ReturnTypeName    string     `yaml:"return_type"`
	FixedHorizonSteps int        `yaml:"fixed_horizon_steps"`
}

// DefaultSearchConfig returns the built-in defaults: 256 iterations, c=1.4,
// gamma=1.0, a 128-step rollout cap, and the discounted return mode.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Iterations:        256,
		C:                 1.4,
		Gamma:             1.0,
		MaxSteps:          128,
		ReturnType:        Discounted,
		ReturnTypeName:    "discounted",
		FixedHorizonSteps: 32,
	}
}

// ErrConfigIO wraps a failure to read a config source (file, reader).
type ErrConfigIO struct {
	Path string
	Err  error
}

func (e *ErrConfigIO) Error() string {
	return fmt.Sprintf("mcts: failed to read search config %q: %v", e.Path, e.Err)
}
func (e *ErrConfigIO) Unwrap() error { return e.Err }

// ErrConfigParse wraps a YAML syntax or type error while decoding a config.
type ErrConfigParse struct {
	Path string
	Err  error
}

func (e *ErrConfigParse) Error() string {
	return fmt.Sprintf("mcts: failed to parse search config %q: %v", e.Path, e.Err)
}
func (e *ErrConfigParse) Unwrap() error { return e.Err }

// ErrConfigInvalid reports a semantically invalid config: out-of-range
// values or an unrecognized return_type name.
type ErrConfigInvalid struct {
	Field  string
	Reason string
}

func (e *ErrConfigInvalid) Error() string {
	return fmt.Sprintf("mcts: invalid search config field %q: %s", e.Field, e.Reason)
}

// Validate checks the config for internal consistency and resolves
// ReturnTypeName into ReturnType. It mutates the receiver on success.
func (c *SearchConfig) Validate() error {
	switch c.ReturnTypeName {
	case "episodic_undiscounted":
		c.ReturnType = EpisodicUndiscounted
	case "discounted", "":
		c.ReturnType = Discounted
	case "fixed_horizon":
		c.ReturnType = FixedHorizon
	default:
		return &ErrConfigInvalid{Field: "return_type", Reason: fmt.Sprintf("unrecognized value %q", c.ReturnTypeName)}
	}
	if c.Iterations <= 0 {
		return &ErrConfigInvalid{Field: "iterations", Reason: "must be positive"}
	}
	if math.IsNaN(c.C) || math.IsInf(c.C, 0) {
		return &ErrConfigInvalid{Field: "exploration_constant", Reason: "must be finite"}
	}
	if c.C < 0 {
		return &ErrConfigInvalid{Field: "exploration_constant", Reason: "must be non-negative"}
	}
	if math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) {
		return &ErrConfigInvalid{Field: "gamma", Reason: "must be finite"}
	}
	if c.Gamma < 0 {
		return &ErrConfigInvalid{Field: "gamma", Reason: "must be non-negative"}
	}
	if c.MaxSteps <= 0 {
		return &ErrConfigInvalid{Field: "max_steps", Reason: "must be positive"}
	}
	if c.FixedHorizonSteps <= 0 {
		return &ErrConfigInvalid{Field: "fixed_horizon_steps", Reason: "must be positive"}
	}
	return nil
}

// RolloutParams projects the rollout-relevant fields of a validated config.
func (c SearchConfig) RolloutParams() RolloutParams {
	return RolloutParams{
		ReturnType:        c.ReturnType,
		Gamma:             c.Gamma,
		MaxSteps:          c.MaxSteps,
		FixedHorizonSteps: c.FixedHorizonSteps,
	}
}

// ParseSearchConfigYAML decodes and validates a SearchConfig from YAML
// bytes. source is used only to annotate errors (e.g. a file path or
// "<default>").
func ParseSearchConfigYAML(data []byte, source string) (SearchConfig, error) {
	cfg := DefaultSearchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SearchConfig{}, &ErrConfigParse{Path: source, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return SearchConfig{}, err
	}
	return cfg, nil
}

// LoadSearchConfigYAML reads and parses a SearchConfig from a YAML file on
// disk.
func LoadSearchConfigYAML(path string) (SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SearchConfig{}, &ErrConfigIO{Path: path, Err: errors.WithStack(err)}
	}
	return ParseSearchConfigYAML(data, path)
}

// DefaultSearchConfigYAML returns the bundled default config document, the
// same values DefaultSearchConfig() builds in code, kept in sync for
// operators who want a starting file to edit.
func DefaultSearchConfigYAML() []byte { return defaultSearchConfigYAML }

// SearchConfigFromDefaultYAML parses the embedded default document, mainly
// useful as a smoke test that the embedded file and DefaultSearchConfig
// agree.
func SearchConfigFromDefaultYAML() (SearchConfig, error) {
	return ParseSearchConfigYAML(defaultSearchConfigYAML, "<default>")
}
