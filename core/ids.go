package core

import "strconv"

// ID is the stable catalog number of an object (star, planet, deep-sky object).
// It is strictly 32-bit; the registry is a sparse structure over the full range.
type ID uint32

const (
	// InvalidID means "no identifier".
	InvalidID = ^ID(0)

	// MaxAutoID is the first identifier handed out by the auto counter.
	// The counter moves downward from here.
	MaxAutoID = InvalidID - 1

	// DefaultAutoFloor is the lowest identifier the auto counter may hand out
	// unless the registry is configured otherwise. Explicit catalog numbers
	// must stay below the floor.
	DefaultAutoFloor ID = 0xF0000000
)

// Valid reports whether id names an object.
func (id ID) Valid() bool { return id != InvalidID }

// String returns the decimal form, or "invalid".
func (id ID) String() string {
	if id == InvalidID {
		return "invalid"
	}
	return strconv.FormatUint(uint64(id), 10)
}
