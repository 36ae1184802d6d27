// Package session drives repeated pricing of an edited selection.
// Each edit builds a new SelectionState and recomputes synchronously; state
// and result are swapped together only when the computation succeeds.
package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"app-cost/core/catalog"
	"app-cost/core/diff"
	"app-cost/core/engine"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

// EditKind names the field an edit touches
type EditKind string

const (
	EditCategory    EditKind = "category"
	EditSubcategory EditKind = "subcategory"
	EditComplexity  EditKind = catalog.FieldComplexity
	EditTeamSize    EditKind = catalog.FieldTeamSize
	EditTimeline    EditKind = catalog.FieldTimeline
	EditToggle      EditKind = "toggle"
	EditEnable      EditKind = "enable"
	EditDisable     EditKind = "disable"
)

var editAliases = map[string]EditKind{
	"category":    EditCategory,
	"type":        EditCategory,
	"subcategory": EditSubcategory,
	"platform":    EditSubcategory,
	"complexity":  EditComplexity,
	"team_size":   EditTeamSize,
	"team":        EditTeamSize,
	"timeline":    EditTimeline,
	"weeks":       EditTimeline,
	"toggle":      EditToggle,
	"enable":      EditEnable,
	"disable":     EditDisable,
}

// Edit is a single user change to the selection
type Edit struct {
	Kind  EditKind
	Value string
}

// ParseEdit builds an edit from a field name (or alias) and raw value
func ParseEdit(field, value string) (Edit, error) {
	kind, ok := editAliases[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return Edit{}, errors.Newf(errors.TypeInput, "unknown field %q", field)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Edit{}, errors.Newf(errors.TypeInput, "%s needs a value", kind)
	}
	return Edit{Kind: kind, Value: value}, nil
}

// String renders the edit as "field=value"
func (e Edit) String() string {
	return fmt.Sprintf("%s=%s", e.Kind, e.Value)
}

// Update is the outcome of one successful edit
type Update struct {
	Edit   Edit
	State  types.SelectionState
	Result *types.PriceResult
	Diff   *diff.Result
}

// Session holds the current selection and its price.
// It is not safe for concurrent use; one caller owns it.
type Session struct {
	id     uuid.UUID
	engine *engine.Engine
	state  types.SelectionState
	result *types.PriceResult
	logger *zap.Logger
}

// New prices the initial selection and returns a session around it
func New(e *engine.Engine, initial types.SelectionState, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result, err := e.Compute(initial)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Session{
		id:     id,
		engine: e,
		state:  initial.Clone(),
		result: result,
		logger: logger.With(zap.String("session", id.String())),
	}, nil
}

// ID identifies the session in logs
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Config returns the catalog the session prices against
func (s *Session) Config() *types.PriceConfig {
	return s.engine.Config()
}

// State returns a copy of the current selection
func (s *Session) State() types.SelectionState {
	return s.state.Clone()
}

// Result returns the current price
func (s *Session) Result() *types.PriceResult {
	return s.result
}

// Apply applies one edit and recomputes. On error the session is unchanged.
func (s *Session) Apply(edit Edit) (*Update, error) {
	next, err := s.next(edit)
	if err != nil {
		return nil, err
	}
	update, err := s.Replace(next)
	if err != nil {
		s.logger.Debug("edit rejected", zap.Stringer("edit", edit), zap.Error(err))
		return nil, err
	}
	update.Edit = edit
	return update, nil
}

// Replace swaps in a whole selection. On error the session is unchanged.
func (s *Session) Replace(next types.SelectionState) (*Update, error) {
	result, err := s.engine.Compute(next)
	if err != nil {
		return nil, err
	}

	update := &Update{
		State:  next.Clone(),
		Result: result,
		Diff:   diff.Compare(s.result, result),
	}
	s.state = update.State
	s.result = result

	s.logger.Debug("selection repriced",
		zap.String("total", result.Total.String()),
		zap.String("delta", update.Diff.TotalDelta.String()),
	)
	return update, nil
}

// next derives the new selection for an edit without touching the session
func (s *Session) next(edit Edit) (types.SelectionState, error) {
	cfg := s.engine.Config()
	cur := s.state

	switch edit.Kind {
	case EditCategory:
		c, ok := cfg.Category(edit.Value)
		if !ok {
			return cur, errors.Mismatch("category", edit.Value)
		}
		sub := cur.Subcategory
		if _, ok := c.Subcategory(sub); !ok {
			sub, _ = catalog.FirstSubcategory(cfg, c.Key)
		}
		return cur.WithCategory(c.Key, sub), nil
	case EditSubcategory:
		return cur.WithSubcategory(edit.Value), nil
	case EditComplexity:
		return cur.WithComplexity(types.ParseSetting(edit.Value)), nil
	case EditTeamSize:
		return cur.WithTeamSize(types.ParseSetting(edit.Value)), nil
	case EditTimeline:
		return cur.WithTimeline(types.ParseSetting(edit.Value)), nil
	case EditToggle:
		return cur.Toggle(edit.Value), nil
	case EditEnable:
		return cur.WithFeature(edit.Value, true), nil
	case EditDisable:
		return cur.WithFeature(edit.Value, false), nil
	default:
		return cur, errors.Newf(errors.TypeInput, "unsupported edit %q", edit.Kind)
	}
}
