// Package diff compares two price breakdowns line by line.
package diff

import (
	"github.com/shopspring/decimal"

	"app-cost/core/types"
)

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // Row appeared
	ChangeRemoved                     // Row disappeared
	ChangeModified                    // Row amount or label changed
	ChangeUnchanged                   // No change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// ItemDiff describes changes to one line item
type ItemDiff struct {
	Kind       types.LineKind  `json:"kind"`
	Key        string          `json:"key,omitempty"`
	Label      string          `json:"label"`
	ChangeType ChangeType      `json:"change_type"`
	Before     decimal.Decimal `json:"before"`
	After      decimal.Decimal `json:"after"`
	Delta      decimal.Decimal `json:"delta"`
}

// Result is the complete diff between two price results
type Result struct {
	TotalBefore  decimal.Decimal `json:"total_before"`
	TotalAfter   decimal.Decimal `json:"total_after"`
	TotalDelta   decimal.Decimal `json:"total_delta"`
	DeltaPercent float64         `json:"delta_percent"`

	Added     []*ItemDiff `json:"added,omitempty"`
	Removed   []*ItemDiff `json:"removed,omitempty"`
	Changed   []*ItemDiff `json:"changed,omitempty"`
	Unchanged []*ItemDiff `json:"-"`
}

// HasChanges reports whether any row or the total changed
func (r *Result) HasChanges() bool {
	return len(r.Added)+len(r.Removed)+len(r.Changed) > 0 || !r.TotalDelta.IsZero()
}

type itemKey struct {
	kind types.LineKind
	key  string
}

// Compare diffs two results. A nil before is treated as an empty breakdown.
// Rows are matched by kind and key; output follows the order of after, then
// the removed rows in the order of before.
func Compare(before, after *types.PriceResult) *Result {
	if before == nil {
		before = &types.PriceResult{}
	}
	if after == nil {
		after = &types.PriceResult{}
	}

	result := &Result{
		TotalBefore: before.Total,
		TotalAfter:  after.Total,
		TotalDelta:  after.Total.Sub(before.Total),
	}
	if !before.Total.IsZero() {
		result.DeltaPercent = result.TotalDelta.Div(before.Total).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	previous := make(map[itemKey]types.LineItem, len(before.Items))
	for _, item := range before.Items {
		previous[keyOf(item)] = item
	}

	seen := make(map[itemKey]bool, len(after.Items))
	for _, item := range after.Items {
		k := keyOf(item)
		seen[k] = true

		old, existed := previous[k]
		d := &ItemDiff{Kind: item.Kind, Key: item.Key, Label: item.Label, After: item.Amount}
		switch {
		case !existed:
			d.ChangeType = ChangeAdded
			d.Delta = item.Amount
			result.Added = append(result.Added, d)
		case !old.Amount.Equal(item.Amount) || old.Label != item.Label:
			d.ChangeType = ChangeModified
			d.Before = old.Amount
			d.Delta = item.Amount.Sub(old.Amount)
			result.Changed = append(result.Changed, d)
		default:
			d.ChangeType = ChangeUnchanged
			d.Before = old.Amount
			result.Unchanged = append(result.Unchanged, d)
		}
	}

	for _, item := range before.Items {
		if seen[keyOf(item)] {
			continue
		}
		result.Removed = append(result.Removed, &ItemDiff{
			Kind:       item.Kind,
			Key:        item.Key,
			Label:      item.Label,
			ChangeType: ChangeRemoved,
			Before:     item.Amount,
			Delta:      item.Amount.Neg(),
		})
	}

	return result
}

// keyOf identifies a row across recomputations. Scaling rows keep one identity
// per kind so that 3 -> 4 developers reads as a change, not a swap.
func keyOf(item types.LineItem) itemKey {
	switch item.Kind {
	case types.LineComplexity, types.LineTeam, types.LineTimeline, types.LineBase:
		return itemKey{kind: item.Kind}
	default:
		return itemKey{kind: item.Kind, key: item.Key}
	}
}
