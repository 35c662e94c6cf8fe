package snapshot

import "fmt"

// MissingDataError is fatal to a run: the current-generation source for
// a record type is unreadable or absent. It is distinct from an absent
// previous generation, which is the ordinary first-run state and is
// represented by Baseline.Present == false.
type MissingDataError struct {
	Source string
	Err    error
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s: %v", e.Source, e.Err)
}

func (e *MissingDataError) Unwrap() error { return e.Err }
