package session

import (
	"testing"

	"github.com/shopspring/decimal"

	"app-cost/core/catalog"
	"app-cost/core/engine"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg := catalog.Default()
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	s, err := New(e, catalog.DefaultSelection(cfg), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func apply(t *testing.T, s *Session, field, value string) *Update {
	t.Helper()
	edit, err := ParseEdit(field, value)
	if err != nil {
		t.Fatalf("ParseEdit(%s, %s): %v", field, value, err)
	}
	update, err := s.Apply(edit)
	if err != nil {
		t.Fatalf("Apply(%s): %v", edit, err)
	}
	return update
}

func TestSessionRecomputesOnEveryEdit(t *testing.T) {
	s := newSession(t)
	if !s.Result().Total.Equal(decimal.NewFromInt(35000)) {
		t.Fatalf("initial total = %s", s.Result().Total)
	}

	update := apply(t, s, "toggle", "userAuth")
	// (25000 + 3000) * 1.4
	if !update.Result.Total.Equal(decimal.NewFromInt(39200)) {
		t.Errorf("total after toggle = %s, want 39200", update.Result.Total)
	}
	if len(update.Diff.Added) != 1 || update.Diff.Added[0].Key != "userAuth" {
		t.Errorf("diff added = %+v", update.Diff.Added)
	}

	update = apply(t, s, "team", "1")
	if !update.Result.Total.Equal(decimal.NewFromInt(28000)) {
		t.Errorf("total after team edit = %s, want 28000", update.Result.Total)
	}
	if len(update.Diff.Removed) != 1 || update.Diff.Removed[0].Kind != types.LineTeam {
		t.Errorf("diff removed = %+v", update.Diff.Removed)
	}
}

func TestCategoryEditResetsInvalidSubcategory(t *testing.T) {
	s := newSession(t)

	update := apply(t, s, "category", "web")
	if update.State.Subcategory != "simple" {
		t.Errorf("subcategory = %q, want simple", update.State.Subcategory)
	}
	// 15000 * 1.4
	if !update.Result.Total.Equal(decimal.NewFromInt(21000)) {
		t.Errorf("total = %s, want 21000", update.Result.Total)
	}
}

func TestFailedEditLeavesSessionUntouched(t *testing.T) {
	s := newSession(t)
	before := s.State()
	beforeResult := s.Result()

	cases := []struct{ field, value string }{
		{"platform", "simple"},
		{"complexity", "extreme"},
		{"enable", "teleport"},
		{"category", "desktop"},
	}
	for _, c := range cases {
		edit, err := ParseEdit(c.field, c.value)
		if err != nil {
			t.Fatalf("ParseEdit: %v", err)
		}
		if _, err := s.Apply(edit); !errors.IsType(err, errors.TypeConfigMismatch) {
			t.Errorf("%s: expected CONFIG_MISMATCH, got %v", edit, err)
		}
	}

	after := s.State()
	if after.Subcategory != before.Subcategory || after.Complexity != before.Complexity {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	if _, ok := after.Features["teleport"]; ok {
		t.Error("rejected feature leaked into state")
	}
	if s.Result() != beforeResult {
		t.Error("result replaced after failed edit")
	}
}

func TestStateIsACopy(t *testing.T) {
	s := newSession(t)
	st := s.State()
	st.Features["userAuth"] = true
	if s.State().Features["userAuth"] {
		t.Error("mutating a returned state must not affect the session")
	}
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a, b := newSession(t), newSession(t)
	if a.ID() == b.ID() {
		t.Errorf("expected distinct ids, both %s", a.ID())
	}
}

func TestParseEdit(t *testing.T) {
	if _, err := ParseEdit("colour", "blue"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("unknown field: got %v", err)
	}
	if _, err := ParseEdit("team", " "); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("empty value: got %v", err)
	}
	edit, err := ParseEdit("Weeks", "16")
	if err != nil || edit.Kind != EditTimeline || edit.Value != "16" {
		t.Errorf("alias: got %+v, %v", edit, err)
	}
}
