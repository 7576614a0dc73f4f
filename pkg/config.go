package pkg

import (
	"errors"
	"fmt"
	"os"

	"github.com/ManouchehrRasoulli/fscommander/pkg/command"
	"github.com/ManouchehrRasoulli/fscommander/pkg/commandfile"
	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const DefaultCommandFile = "./command.txt"

type Config struct {
	File          string `yaml:"file" env:"FSCOMMANDER_FILE"`
	Mode          string `yaml:"mode" env:"FSCOMMANDER_MODE"`
	Grammar       string `yaml:"grammar" env:"FSCOMMANDER_GRAMMAR"`
	Root          string `yaml:"root" env:"FSCOMMANDER_ROOT"`
	DedupeAppends bool   `yaml:"dedupe_appends" env:"FSCOMMANDER_DEDUPE_APPENDS"`
	SkipExisting  bool   `yaml:"skip_existing" env:"FSCOMMANDER_SKIP_EXISTING"`
	BufferSize    int32  `yaml:"buffer_size" env:"FSCOMMANDER_BUFFER_SIZE"`
	Color         bool   `yaml:"color" env:"FSCOMMANDER_COLOR"`
	Verbose       bool   `yaml:"verbose" env:"FSCOMMANDER_VERBOSE"`
}

func DefaultConfig() *Config {
	return &Config{
		File:          DefaultCommandFile,
		Mode:          string(commandfile.ModeTail),
		Grammar:       string(command.GrammarStrict),
		DedupeAppends: true,
		SkipExisting:  true,
		BufferSize:    25,
		Color:         true,
	}
}

// ReadConfig loads file over the defaults. An empty name, or a file that
// does not exist, leaves the defaults in place.
func ReadConfig(file string) (*Config, error) {
	c := DefaultConfig()
	if file == "" {
		return c, nil
	}

	yfile, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yfile, c)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", file, err)
	}

	return c, nil
}

// ApplyEnv overrides fields whose environment variables are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.File == "" {
		return errors.New("command file path is empty")
	}
	if _, err := commandfile.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := command.ParseGrammar(c.Grammar); err != nil {
		return err
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("invalid buffer size %d", c.BufferSize)
	}
	return nil
}

// UseColor honours NO_COLOR and non-terminal output through fatih/color.
func (c *Config) UseColor() bool {
	return c.Color && !color.NoColor
}
