// Package classify maps a valuation ratio to a qualitative zone via an
// ordered threshold table.
package classify

import (
	"fmt"
	"math"

	"marketcycle/internal/domain/models"
)

// Zone is one threshold-table entry. UpperBound is exclusive; the final
// entry of a table uses +Inf.
type Zone struct {
	UpperBound     float64
	ID             string
	Label          string
	ExpectedReturn string
	Description    string
}

// Table is an ordered sequence of zones with strictly increasing bounds.
// Callers pick the table matching their metric; the engine never branches
// on which table it was handed.
type Table []Zone

// Validate checks the table invariants: non-empty, strictly increasing
// bounds, unbounded last entry.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("threshold table is empty")
	}
	for i := 1; i < len(t); i++ {
		if t[i].UpperBound <= t[i-1].UpperBound {
			return fmt.Errorf("bounds not strictly increasing at entry %d (%v <= %v)", i, t[i].UpperBound, t[i-1].UpperBound)
		}
	}
	if !math.IsInf(t[len(t)-1].UpperBound, 1) {
		return fmt.Errorf("last entry must be unbounded")
	}
	return nil
}

// Classify scans entries in ascending bound order and returns the first
// whose exclusive upper bound exceeds ratio, falling through to the final
// unbounded entry. Total over all finite non-negative ratios.
func Classify(ratio float64, table Table) models.Classification {
	for _, z := range table {
		if ratio < z.UpperBound {
			return zoneResult(z)
		}
	}
	return zoneResult(table[len(table)-1])
}

// ApplyOverride replaces the computed zone id and/or label with the
// snapshot-supplied values. Each override stands alone: a status without a
// status text (or the reverse) is still honored.
func ApplyOverride(c models.Classification, status, statusText string) models.Classification {
	if status != "" {
		c.ZoneID = status
	}
	if statusText != "" {
		c.Label = statusText
	}
	return c
}

func zoneResult(z Zone) models.Classification {
	return models.Classification{
		ZoneID:         z.ID,
		Label:          z.Label,
		ExpectedReturn: z.ExpectedReturn,
		Description:    z.Description,
	}
}
