package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "APPCOST_"

// ApplyEnv overlays APPCOST_* environment variables onto cfg.
// Unset variables leave the file values in place.
func ApplyEnv(cfg *Config) error {
	opts := env.Options{Prefix: EnvPrefix}
	for _, target := range []any{&cfg.Catalog, &cfg.Output, &cfg.Logging} {
		if err := env.ParseWithOptions(target, opts); err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
	}
	return nil
}
