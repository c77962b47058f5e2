// Package config resolves run settings from flags, environment, an
// optional YAML file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "BENCHREPORT"
	// DefaultOutDir is created under the results root when --out is unset.
	DefaultOutDir = "analysis_output"
)

type Config struct {
	Root         string `mapstructure:"-"`
	Out          string `mapstructure:"out"`
	Verbose      bool   `mapstructure:"verbose"`
	InlineImages bool   `mapstructure:"inline_images"`
	AllScenarios bool   `mapstructure:"all_scenarios"`
	Chart        Chart  `mapstructure:"chart"`
}

type Chart struct {
	DPI    int     `mapstructure:"dpi"`
	Width  float64 `mapstructure:"width"`  // inches, minimum
	Height float64 `mapstructure:"height"` // inches, per chart
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("out", "")
	v.SetDefault("verbose", false)
	v.SetDefault("inline_images", false)
	v.SetDefault("all_scenarios", false)
	v.SetDefault("chart.dpi", 96)
	v.SetDefault("chart.width", 10.0)
	v.SetDefault("chart.height", 6.0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads cfgFile, or $HOME/.benchreport.yaml when cfgFile is
// empty. Only an explicitly named file is required to exist.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".benchreport")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load builds the Config for a results root.
func Load(v *viper.Viper, root string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	if root == "" {
		return cfg, errors.New("results root is required")
	}
	cfg.Root = filepath.Clean(root)
	if cfg.Out == "" {
		cfg.Out = filepath.Join(cfg.Root, DefaultOutDir)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Chart.DPI <= 0 {
		return fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %gx%g", c.Chart.Width, c.Chart.Height)
	}
	return nil
}
