package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDecksDir       = "./decks"
	DefaultAnkiConnectURL = "http://localhost:8765"
	DefaultAnkiRootDeck   = "PDFReview"
)

type Config struct {
	DecksDir      string `yaml:"decks_dir"`
	StartShuffled bool   `yaml:"start_shuffled"`
	// RenderDir, when set, receives a png of every page the learner looks at.
	RenderDir string `yaml:"render_dir"`
	Anki      struct {
		ConnectURL string `yaml:"connect_url"`
		RootDeck   string `yaml:"root_deck"`
	} `yaml:"anki"`
	Log struct {
		Verbose bool `yaml:"verbose"`
		Debug   bool `yaml:"debug"`
	} `yaml:"log"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DecksDir == "" {
		c.DecksDir = DefaultDecksDir
	}
	if c.Anki.ConnectURL == "" {
		c.Anki.ConnectURL = DefaultAnkiConnectURL
	}
	if c.Anki.RootDeck == "" {
		c.Anki.RootDeck = DefaultAnkiRootDeck
	}
}
