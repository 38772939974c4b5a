package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries the tunable settings shared by the CLI and embedding hosts.
// Analysis parameters themselves (FFT sizes, hops, ranges) are fixed
// constants of the engine and intentionally not configurable.
type Config struct {
	// Audio
	SampleRate    int     `json:"sample_rate" mapstructure:"sample_rate"`
	WindowSeconds float64 `json:"window_seconds" mapstructure:"window_seconds"`

	// Periodic analysis
	UpdateInterval time.Duration `json:"update_interval" mapstructure:"update_interval"`

	// Decoding
	FFmpegPath string `json:"ffmpeg_path" mapstructure:"ffmpeg_path"`

	// Reporting
	ReportFormat string `json:"report_format" mapstructure:"report_format"` // "text" or "json"
	Verbose      bool   `json:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the stock configuration: 22050 Hz working rate, a
// ten second analysis window, and a two second update cadence.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:     22050,
		WindowSeconds:  10.0,
		UpdateInterval: 2 * time.Second,
		FFmpegPath:     "ffmpeg",
		ReportFormat:   "text",
		Verbose:        false,
	}
}

// Load reads a configuration file layered over the defaults. An empty path
// looks for an optional tonalis.{yaml,json,toml} in the working directory; a
// missing optional file is not an error, a named file that cannot be read is.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("sample_rate", defaults.SampleRate)
	v.SetDefault("window_seconds", defaults.WindowSeconds)
	v.SetDefault("update_interval", defaults.UpdateInterval)
	v.SetDefault("ffmpeg_path", defaults.FFmpegPath)
	v.SetDefault("report_format", defaults.ReportFormat)
	v.SetDefault("verbose", defaults.Verbose)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tonalis")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.WindowSeconds <= 0 {
		return fmt.Errorf("window_seconds must be positive, got %g", c.WindowSeconds)
	}
	if c.ReportFormat != "text" && c.ReportFormat != "json" {
		return fmt.Errorf("report_format must be \"text\" or \"json\", got %q", c.ReportFormat)
	}
	return nil
}

// WindowSamples returns the analysis window length in samples.
func (c *Config) WindowSamples() int {
	return int(float64(c.SampleRate) * c.WindowSeconds)
}
