// Package engine provides the price computation engine.
// CLI and session code are thin wrappers around Compute.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"app-cost/core/determinism"
	"app-cost/core/pricing"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

// Engine prices selections against one immutable PriceConfig
type Engine struct {
	config *types.PriceConfig

	complexity pricing.Resolver
	teamSize   pricing.Resolver
	timeline   pricing.Resolver

	logger *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine, building one resolver per scaling field
func New(cfg *types.PriceConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New(errors.TypeConfig, "price config is nil")
	}

	e := &Engine{config: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	for _, f := range []struct {
		name string
		spec types.MultiplierSpec
	}{
		{"complexity", cfg.Complexity},
		{"team_size", cfg.TeamSize},
		{"timeline", cfg.Timeline},
	} {
		if !f.spec.Itemize.IsValid() {
			return nil, errors.Newf(errors.TypeConfig, "%s: unknown itemize policy %q", f.name, f.spec.Itemize)
		}
	}

	var err error
	if e.complexity, err = pricing.NewResolver("complexity", cfg.Complexity); err != nil {
		return nil, err
	}
	if e.teamSize, err = pricing.NewResolver("team_size", cfg.TeamSize); err != nil {
		return nil, err
	}
	if e.timeline, err = pricing.NewResolver("timeline", cfg.Timeline); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the engine's price configuration
func (e *Engine) Config() *types.PriceConfig {
	return e.config
}

// Compute prices a selection. It is a pure function of (config, state).
func Compute(cfg *types.PriceConfig, state types.SelectionState) (*types.PriceResult, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return e.Compute(state)
}

// Compute prices a selection.
//
// Evaluation order is fixed: base, complexity, features in catalog order,
// team size, timeline. The total is (base + features) * Cm * Tm * Lm rounded
// to the whole currency unit; individual items are never rounded.
func (e *Engine) Compute(state types.SelectionState) (*types.PriceResult, error) {
	cfg := e.config
	one := decimal.NewFromInt(1)

	category, ok := cfg.Category(state.Category)
	if !ok {
		return nil, errors.Mismatch("category", state.Category)
	}
	sub, ok := category.Subcategory(state.Subcategory)
	if !ok {
		return nil, errors.Mismatch("subcategory", state.Category+"/"+state.Subcategory)
	}
	if err := e.checkFeatures(state); err != nil {
		return nil, err
	}

	result := &types.PriceResult{
		BasePrice: sub.Price,
		Currency:  cfg.Currency,
	}
	base := sub.Price
	result.Items = append(result.Items, types.LineItem{
		Kind:   types.LineBase,
		Key:    state.Category + "/" + state.Subcategory,
		Label:  category.DisplayLabel(sub),
		Amount: base,
	})

	cm, err := e.complexity.Resolve(state.Complexity)
	if err != nil {
		return nil, err
	}
	complexityAdj := base.Mul(cm.Factor.Sub(one))
	if cfg.Complexity.Itemize.Emit(complexityAdj) {
		result.Items = append(result.Items, types.LineItem{
			Kind:   types.LineComplexity,
			Key:    state.Complexity.String(),
			Label:  cm.Label,
			Amount: complexityAdj,
		})
	}

	featuresTotal := decimal.Zero
	for _, f := range cfg.Features {
		if !state.Features[f.Key] {
			continue
		}
		featuresTotal = featuresTotal.Add(f.Price)
		result.Items = append(result.Items, types.LineItem{
			Kind:   types.LineFeature,
			Key:    f.Key,
			Label:  f.Name,
			Amount: f.Price,
		})
	}
	subtotal := base.Add(featuresTotal)

	tm, err := e.teamSize.Resolve(state.TeamSize)
	if err != nil {
		return nil, err
	}
	teamAdj := subtotal.Mul(tm.Factor.Sub(one))
	if cfg.TeamSize.Itemize.Emit(teamAdj) {
		result.Items = append(result.Items, types.LineItem{
			Kind:   types.LineTeam,
			Key:    state.TeamSize.String(),
			Label:  tm.Label,
			Amount: teamAdj,
		})
	}

	lm, err := e.timeline.Resolve(state.Timeline)
	if err != nil {
		return nil, err
	}
	timelineAdj := subtotal.Mul(lm.Factor.Sub(one))
	if cfg.Timeline.Itemize.Emit(timelineAdj) {
		result.Items = append(result.Items, types.LineItem{
			Kind:   types.LineTimeline,
			Key:    state.Timeline.String(),
			Label:  lm.Label,
			Amount: timelineAdj,
		})
	}

	result.FeaturesTotal = featuresTotal
	result.Multipliers = types.Multipliers{
		Complexity: cm.Factor,
		TeamSize:   tm.Factor,
		Timeline:   lm.Factor,
	}
	result.RawTotal = subtotal.Mul(cm.Factor).Mul(tm.Factor).Mul(lm.Factor)
	result.Total = result.RawTotal.Round(0)

	if cm.Clamped || tm.Clamped || lm.Clamped {
		e.logger.Warn("selection clamped into configured range",
			zap.Bool("complexity", cm.Clamped),
			zap.Bool("team_size", tm.Clamped),
			zap.Bool("timeline", lm.Clamped),
		)
	}
	e.logger.Debug("price computed",
		zap.String("category", state.Category),
		zap.String("subcategory", state.Subcategory),
		zap.Strings("features", state.EnabledFeatures()),
		zap.Int("items", len(result.Items)),
		zap.String("total", result.Total.String()),
	)

	return result, nil
}

// checkFeatures rejects feature keys the catalog does not know, on or off
func (e *Engine) checkFeatures(state types.SelectionState) error {
	for _, k := range determinism.SortedKeys(state.Features) {
		if _, ok := e.config.Feature(k); !ok {
			return errors.Mismatch("feature", k)
		}
	}
	return nil
}
