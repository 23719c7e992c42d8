package anthro

import (
	"sort"

	"nutrition-app-server/internal/models"
)

// FieldDelta describes how one measurement key changed between two records.
// Delta is only set when both sides carry finite numeric values.
type FieldDelta struct {
	Key           string   `json:"key"`
	CurrentValue  any      `json:"currentValue"`
	PreviousValue any      `json:"previousValue"`
	Delta         *float64 `json:"delta"`
	Changed       bool     `json:"changed"`
}

// DiffGroup computes per-key deltas between the current and previous state of
// one measurement group. Only keys that actually changed are reported:
// a key counts as changed when its presence differs between the two sides or
// when its rendered values differ.
//
// The key set is the union of both groups, current keys first. Go maps carry
// no insertion order, so keys are sorted within each half to keep the output
// deterministic (and the engine idempotent).
func DiffGroup(current, previous models.MeasurementGroup) []FieldDelta {
	keys := make([]string, 0, len(current)+len(previous))
	for k := range current {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prevOnly := make([]string, 0, len(previous))
	for k := range previous {
		if _, ok := current[k]; !ok {
			prevOnly = append(prevOnly, k)
		}
	}
	sort.Strings(prevOnly)
	keys = append(keys, prevOnly...)

	var deltas []FieldDelta
	for _, k := range keys {
		cur, prev := current[k], previous[k]
		curPresent, prevPresent := valuePresent(cur), valuePresent(prev)

		changed := curPresent != prevPresent || valueString(cur) != valueString(prev)
		if !changed {
			continue
		}

		fd := FieldDelta{
			Key:           k,
			CurrentValue:  cur,
			PreviousValue: prev,
			Changed:       true,
		}
		if curPresent && prevPresent {
			curNum, curOK := numericValue(cur)
			prevNum, prevOK := numericValue(prev)
			if curOK && prevOK {
				fd.Delta = round2Ptr(curNum - prevNum)
			}
		}
		deltas = append(deltas, fd)
	}
	return deltas
}
