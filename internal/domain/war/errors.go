package war

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound is returned when a tag cannot be resolved against a war roster
	ErrMemberNotFound = errors.New("war member not found")
	// ErrRoundIndexOutOfRange is returned when a round index falls outside the visible rounds
	ErrRoundIndexOutOfRange = errors.New("league round index out of range")
	// ErrMissingRounds is returned when league group data carries no usable rounds list
	ErrMissingRounds = errors.New("league group data has no rounds")
	// ErrNoResolver is returned when wars are requested from a group built without a resolver
	ErrNoResolver = errors.New("league group has no war resolver")
)

// ResolutionError reports that a single league war could not be materialized.
// It is returned per element by LeagueWarIterator; later elements are unaffected.
type ResolutionError struct {
	WarTag string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve league war %s: %v", e.WarTag, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
