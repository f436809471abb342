package astrocat

import (
	"errors"
	"fmt"

	"github.com/hupe1980/astrocat/core"
)

var (
	// ErrReservedIndex is returned when an explicit identifier falls inside
	// the part of the auto range the counter has not issued yet.
	ErrReservedIndex = errors.New("identifier reserved for auto assignment")

	// ErrAutoIndexExhausted is returned when the auto counter reached its floor.
	ErrAutoIndexExhausted = errors.New("auto index range exhausted")

	// ErrUnbound is returned when an Object was never bound to a Registry.
	ErrUnbound = errors.New("object is not bound to a registry")

	// ErrInvalidFloor is returned by New for an unusable auto-index floor.
	ErrInvalidFloor = errors.New("invalid auto index floor")
)

// ErrReserved reports an explicit identifier inside the unissued auto range.
//
// errors.Is(err, ErrReservedIndex) holds for it.
type ErrReserved struct {
	ID    core.ID
	Floor core.ID
}

func (e *ErrReserved) Error() string {
	return fmt.Sprintf("identifier %d is in the auto range [%d, %d] and was not issued", e.ID, e.Floor, core.MaxAutoID)
}

func (e *ErrReserved) Unwrap() error { return ErrReservedIndex }
