package migration

import (
	"errors"
	"fmt"

	"github.com/poiesic/jotpad/core"
)

// Outcome is what happened to one kind during a run.
type Outcome int

const (
	// Skipped means there was nothing to migrate.
	Skipped Outcome = iota
	// Migrated means the remote store accepted the collection and the local copy was removed.
	Migrated
	// Failed means the local copy was kept.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Migrated:
		return "migrated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the per-kind entry of a Report.
type Result struct {
	Outcome Outcome
	Count   int
	Err     error
}

// Report maps every kind to its result.
type Report map[core.Kind]Result

// Migrated returns the number of items moved across all kinds.
func (r Report) Migrated() int {
	n := 0
	for _, res := range r {
		if res.Outcome == Migrated {
			n += res.Count
		}
	}
	return n
}

// Err joins the errors of failed kinds.
func (r Report) Err() error {
	var errs []error
	for _, kind := range core.Kinds {
		if res, ok := r[kind]; ok && res.Outcome == Failed {
			errs = append(errs, fmt.Errorf("%s: %w", kind, res.Err))
		}
	}
	return errors.Join(errs...)
}
