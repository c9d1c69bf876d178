package navigation

import (
	"errors"
	"fmt"
)

// UnknownIslandError reports a voyage request naming an island absent from
// the registry. No counters or island state are touched on this path.
type UnknownIslandError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownIslandError) Error() string {
	return fmt.Sprintf("unknown island %q", e.Name)
}

// ErrTooFewIslands is returned by SimulateCycle when the registry cannot
// supply a non-self origin/destination pair.
var ErrTooFewIslands = errors.New("simulate cycle needs at least two islands")
