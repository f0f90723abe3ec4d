package mcts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSearchConfigIsValid(t *testing.T) {
	cfg := DefaultSearchConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, Discounted, cfg.ReturnType)
}

func TestSearchConfigFromDefaultYAMLMatchesCodeDefaults(t *testing.T) {
	fromYAML, err := SearchConfigFromDefaultYAML()
	require.NoError(t, err)
	require.Equal(t, DefaultSearchConfig(), fromYAML)
}

func TestParseSearchConfigYAMLOverridesDefaults(t *testing.T) {
	doc := []byte("iterations: 1000\nreturn_type: fixed_horizon\nfixed_horizon_steps: 16\n")
	cfg, err := ParseSearchConfigYAML(doc, "<test>")
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.Iterations)
	require.Equal(t, FixedHorizon, cfg.ReturnType)
	require.Equal(t, 16, cfg.FixedHorizonSteps)
	// Unspecified fields keep their defaults.
	require.Equal(t, 1.4, cfg.C)
}

func TestParseSearchConfigYAMLRejectsUnknownReturnType(t *testing.T) {
	doc := []byte("return_type: nonexistent\n")
	_, err := ParseSearchConfigYAML(doc, "<test>")
	require.Error(t, err)
	var invalidErr *ErrConfigInvalid
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "return_type", invalidErr.Field)
}

func TestParseSearchConfigYAMLRejectsMalformedDocument(t *testing.T) {
	doc := []byte("iterations: [this is not a number\n")
	_, err := ParseSearchConfigYAML(doc, "<test>")
	require.Error(t, err)
	var parseErr *ErrConfigParse
	require.ErrorAs(t, err, &parseErr)
}

func TestSearchConfigValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name  string
		mutate func(*SearchConfig)
	}{
		{"iterations", func(c *SearchConfig) { c.Iterations = 0 }},
		{"exploration_constant_negative", func(c *SearchConfig) { c.C = -1 }},
		{"exploration_constant_inf", func(c *SearchConfig) { c.C = math.Inf(1) }},
		{"exploration_constant_nan", func(c *SearchConfig) { c.C = math.NaN() }},
		{"gamma_negative", func(c *SearchConfig) { c.Gamma = -0.1 }},
		{"gamma_inf", func(c *SearchConfig) { c.Gamma = math.Inf(1) }},
		{"gamma_nan", func(c *SearchConfig) { c.Gamma = math.NaN() }},
		{"max_steps", func(c *SearchConfig) { c.MaxSteps = 0 }},
		{"fixed_horizon_steps", func(c *SearchConfig) { c.FixedHorizonSteps = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSearchConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var invalidErr *ErrConfigInvalid
			require.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestSearchConfigValidateAcceptsGammaAboveOne(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.Gamma = 2.0
	require.NoError(t, cfg.Validate())
}

func TestSearchConfigValidateRejectsZeroFixedHorizonStepsRegardlessOfReturnType(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.ReturnType = Discounted
	cfg.ReturnTypeName = "discounted"
	cfg.FixedHorizonSteps = 0
	err := cfg.Validate()
	require.Error(t, err)
	var invalidErr *ErrConfigInvalid
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "fixed_horizon_steps", invalidErr.Field)
}

func TestLoadSearchConfigYAMLMissingFile(t *testing.T) {
	_, err := LoadSearchConfigYAML("/nonexistent/path/search.yaml")
	require.Error(t, err)
	var ioErr *ErrConfigIO
	require.ErrorAs(t, err, &ioErr)
}
