package config

import (
	"github.com/jpalmerr/devicepulse"
)

// BuildOptions converts parsed configuration into SDK [devicepulse.Option]
// values for [devicepulse.New].
func BuildOptions(cfg *Config) []devicepulse.Option {
	opts := []devicepulse.Option{
		devicepulse.WithBaseURL(cfg.BaseURL),
	}

	if cfg.Token != "" {
		opts = append(opts, devicepulse.WithToken(cfg.Token))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, devicepulse.WithTimeout(cfg.Timeout.Duration()))
	}
	if cfg.BatchWidth != 0 {
		opts = append(opts, devicepulse.WithBatchWidth(cfg.BatchWidth))
	}
	if cfg.WindowWidth != 0 {
		opts = append(opts, devicepulse.WithWindowWidth(cfg.WindowWidth))
	}

	return opts
}

// BuildPolicy returns the admission policy the config selects.
//
// Parse has already validated the policy string, so this cannot fail after
// a successful [Load] or [Parse].
func BuildPolicy(cfg *Config) (devicepulse.Policy, error) {
	return devicepulse.ParsePolicy(cfg.Policy)
}
