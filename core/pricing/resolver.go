// Package pricing resolves scaling-field settings into multipliers.
// One resolver per field is built from its MultiplierSpec, so the engine
// never branches on discrete vs numeric configuration.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"app-cost/core/types"
	"app-cost/internal/errors"
)

// Resolution is a resolved multiplier
type Resolution struct {
	// Factor is the multiplier applied by the engine
	Factor decimal.Decimal

	// Label is the line item label for the adjustment
	Label string

	// Clamped is set when the input was pulled back into range
	Clamped bool
}

// Resolver turns a setting into a multiplier
type Resolver interface {
	// Field names the scaling field, used in errors
	Field() string

	// Resolve fetches the factor for a setting
	Resolve(s types.Setting) (Resolution, error)
}

// NewResolver builds the resolver for spec.Mode
func NewResolver(field string, spec types.MultiplierSpec) (Resolver, error) {
	switch spec.Mode {
	case types.ModeDiscrete:
		return &DiscreteResolver{field: field, spec: spec}, nil
	case types.ModeContinuous:
		return &ContinuousResolver{numeric{field: field, spec: spec}}, nil
	case types.ModeNormalized:
		if !spec.Baseline.Valid || !spec.Baseline.Decimal.IsPositive() {
			return nil, errors.Newf(errors.TypeConfig, "%s: normalized mode needs a positive baseline", field)
		}
		return &NormalizedResolver{numeric{field: field, spec: spec}}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "%s: unknown multiplier mode %q", field, spec.Mode)
	}
}

// DiscreteResolver looks settings up in the option table
type DiscreteResolver struct {
	field string
	spec  types.MultiplierSpec
}

// Field returns the field name
func (r *DiscreteResolver) Field() string {
	return r.field
}

// Resolve looks the setting key up; a numeric setting matches by its canonical string
func (r *DiscreteResolver) Resolve(s types.Setting) (Resolution, error) {
	key := s.Key
	if key == "" && s.Value.Valid {
		key = s.Value.Decimal.String()
	}

	opt, ok := r.spec.Option(key)
	if !ok && s.Value.Valid {
		// "3.0" should still find option "3"
		opt, ok = r.spec.Option(s.Value.Decimal.String())
	}
	if !ok {
		return Resolution{}, errors.Mismatch(r.field, key)
	}

	return Resolution{
		Factor: opt.Factor,
		Label:  renderLabel(r.spec.Label, opt.Label),
	}, nil
}

// numeric holds what the continuous and normalized resolvers share
type numeric struct {
	field string
	spec  types.MultiplierSpec
}

// Field returns the field name
func (n numeric) Field() string {
	return n.field
}

// value extracts the number and applies the bounds policy
func (n numeric) value(s types.Setting) (decimal.Decimal, bool, error) {
	v := s.Value.Decimal
	if !s.Value.Valid {
		parsed, err := decimal.NewFromString(strings.TrimSpace(s.Key))
		if err != nil {
			return decimal.Zero, false, errors.Mismatch(n.field, s.Key)
		}
		v = parsed
	}

	clamped := false
	below := n.spec.Min.Valid && v.LessThan(n.spec.Min.Decimal)
	above := n.spec.Max.Valid && v.GreaterThan(n.spec.Max.Decimal)
	if below || above {
		if n.spec.Bounds != types.BoundsClamp {
			return decimal.Zero, false, errors.OutOfRange(n.field, v.String(), boundString(n.spec.Min), boundString(n.spec.Max))
		}
		clamped = true
		v = n.spec.Max.Decimal
		if below {
			v = n.spec.Min.Decimal
		}
	}

	// a factor must stay positive even when no min is configured
	if !v.IsPositive() {
		return decimal.Zero, false, errors.Newf(errors.TypeOutOfRange, "%s %s must be positive", n.field, v).
			WithContext("field", n.field)
	}
	return v, clamped, nil
}

// ContinuousResolver uses the setting itself as the factor
type ContinuousResolver struct {
	numeric
}

// Resolve returns the (possibly clamped) value as the factor
func (r *ContinuousResolver) Resolve(s types.Setting) (Resolution, error) {
	v, clamped, err := r.value(s)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Factor:  v,
		Label:   renderLabel(r.spec.Label, v.String()),
		Clamped: clamped,
	}, nil
}

// NormalizedResolver divides the setting by the baseline, e.g. weeks / 12
type NormalizedResolver struct {
	numeric
}

// Resolve returns value / baseline as the factor
func (r *NormalizedResolver) Resolve(s types.Setting) (Resolution, error) {
	v, clamped, err := r.value(s)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Factor:  v.Div(r.spec.Baseline.Decimal),
		Label:   renderLabel(r.spec.Label, v.String()),
		Clamped: clamped,
	}, nil
}

func renderLabel(template, value string) string {
	if !strings.Contains(template, "%s") {
		return strings.TrimSpace(value + " " + template)
	}
	return fmt.Sprintf(template, value)
}

func boundString(b decimal.NullDecimal) string {
	if !b.Valid {
		return "∞"
	}
	return b.Decimal.String()
}
