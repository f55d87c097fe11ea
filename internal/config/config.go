package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the handful of environment-tunable knobs a composition root
// needs before it can build a KnowledgeBase: log verbosity and the two
// generation-time defaults (the default difficulty passed to generators, and
// the SampleTree branching factor, exposed here so a composition root can
// validate it against internal/sampling's compile-time constant rather than
// to reconfigure it).
type Config struct {
	LogLevel             string
	DefaultDifficulty    float64
	SampleTreeBranching  int
}

func Load() *Config {
	return &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DefaultDifficulty:   getEnvFloat("DEFAULT_DIFFICULTY", 0.0),
		SampleTreeBranching: getEnvInt("SAMPLE_TREE_BRANCHING", 4),
	}
}

// Validate checks the loaded config against invariants the rest of the
// module assumes but cannot enforce at compile time.
func (c *Config) Validate() error {
	if c.SampleTreeBranching != 4 {
		return fmt.Errorf("sample tree branching is fixed at 4 by internal/sampling; got %d", c.SampleTreeBranching)
	}
	if c.DefaultDifficulty < 0 {
		return fmt.Errorf("default difficulty must be >= 0; got %f", c.DefaultDifficulty)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}
