package cmd

import (
	"io"

	"go.uber.org/zap"

	"app-cost/core/catalog"
	"app-cost/core/engine"
	"app-cost/core/output"
	"app-cost/core/types"
	"app-cost/internal/config"
	"app-cost/internal/logging"
)

// loadCatalog reads the catalog named by the flag, the config, or the embedded default
func loadCatalog(path string) (*types.PriceConfig, error) {
	if path == "" {
		path = config.Get().Catalog.Path
	}
	return catalog.Load(path)
}

func newEngine(cfg *types.PriceConfig) (*engine.Engine, error) {
	logger := logging.With(zap.String("catalog", cfg.Name)).Named("engine")
	return engine.New(cfg, engine.WithLogger(logger))
}

func resolveFormat(flag string) (output.Format, error) {
	if flag == "" {
		flag = config.Get().Output.DefaultFormat
	}
	return output.ParseFormat(flag)
}

func render(w io.Writer, format output.Format, report *output.Report) error {
	out := config.Get().Output
	if report.Locale == "" {
		report.Locale = out.Locale
	}
	return output.DefaultRegistry(out.NoColor).Render(w, format, report)
}
