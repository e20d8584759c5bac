package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines the parameters for generating a doubles schedule.
type Config struct {
	Players         int      `yaml:"players"`
	Courts          int      `yaml:"courts"`
	Iterations      int      `yaml:"iterations"`
	Seed            int64    `yaml:"seed"`
	OptimalMeetings *int     `yaml:"optimal_meetings"`
	Names           []string `yaml:"names"`
}

const defaultOptimalMeetings = 2

// Optimal returns the target opponent-meeting count, defaulting to 2.
func (c *Config) Optimal() int {
	if c.OptimalMeetings == nil {
		return defaultOptimalMeetings
	}
	return *c.OptimalMeetings
}

// PlayerNames returns one display name per player, falling back to
// "Player N" when no roster is configured.
func (c *Config) PlayerNames() []string {
	if len(c.Names) == c.Players {
		return c.Names
	}
	names := make([]string, c.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.Players < 4 {
		return fmt.Errorf("players must be at least 4 to form a doubles game, got %d", c.Players)
	}

	if c.Courts < 1 {
		return fmt.Errorf("courts must be at least 1, got %d", c.Courts)
	}

	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}

	if c.OptimalMeetings != nil && *c.OptimalMeetings < 0 {
		return fmt.Errorf("optimal_meetings must not be negative, got %d", *c.OptimalMeetings)
	}

	if len(c.Names) > 0 {
		if len(c.Names) != c.Players {
			return fmt.Errorf("names lists %d players but players is %d", len(c.Names), c.Players)
		}
		seen := make(map[string]bool)
		for _, name := range c.Names {
			if name == "" {
				return fmt.Errorf("names must not contain empty entries")
			}
			if seen[name] {
				return fmt.Errorf("name %q appears twice in the roster", name)
			}
			seen[name] = true
		}
	}

	return nil
}
