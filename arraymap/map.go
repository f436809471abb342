package arraymap

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// MaxLevelBits is the widest slice a single level may consume.
const MaxLevelBits = 24

var (
	// ErrInvalidKey is returned by Ref when no value is stored at the key.
	ErrInvalidKey = errors.New("arraymap: invalid key")

	// ErrLayout is returned when level widths do not describe the key type.
	ErrLayout = errors.New("arraymap: invalid level layout")
)

// KeyError reports a Ref on an empty slot.
type KeyError struct {
	Key uint64
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("arraymap: no value at key %d", e.Key)
}

func (e *KeyError) Unwrap() error { return ErrInvalidKey }

// Map is the contract shared by every level of a layered map.
type Map[K constraints.Unsigned, V comparable] interface {
	// Has reports whether a value is stored at k.
	Has(k K) bool
	// Ref returns a pointer to the stored value, or a *KeyError when k is empty.
	Ref(k K) (*V, error)
	// Value returns the stored value, or the sentinel when k is empty.
	Value(k K) V
	// Ptr returns a pointer to the stored value, or nil when k is empty.
	Ptr(k K) *V
	// Insert stores v at k and reports whether k was previously empty.
	Insert(k K, v V) bool
	// Erase clears k and reports whether a value was removed.
	Erase(k K) bool
	// Used is the number of occupied slots at this level.
	Used() int
	// TotalUsed is the number of values stored in the whole subtree.
	TotalUsed() int
	// Size is the number of slots at this level.
	Size() int
	// Nodes is the number of allocated levels in the subtree, including this one.
	Nodes() int
	// All yields stored entries in ascending key order. Keys only carry the
	// bits this subtree is responsible for.
	All() iter.Seq2[K, V]
}

// KeyBits returns the bit width of K.
func KeyBits[K constraints.Unsigned]() uint {
	return uint(bits.Len64(uint64(^K(0))))
}

// NewLayered builds a map over K from level widths given most-significant
// first. The widths must add up to the bit width of K. The last level is a
// Leaf, every other level a Trie.
func NewLayered[K constraints.Unsigned, V comparable](invalid V, levels ...uint) (Map[K, V], error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrLayout)
	}

	var sum uint
	for _, l := range levels {
		if l == 0 || l > MaxLevelBits {
			return nil, fmt.Errorf("%w: level width %d out of range [1,%d]", ErrLayout, l, MaxLevelBits)
		}
		sum += l
	}
	if width := KeyBits[K](); sum != width {
		return nil, fmt.Errorf("%w: levels cover %d bits, key has %d", ErrLayout, sum, width)
	}

	leafBits := levels[len(levels)-1]
	factory := func() Map[K, V] { return NewLeaf[K](leafBits, invalid) }

	keyBits := leafBits
	for i := len(levels) - 2; i >= 0; i-- {
		levelBits := levels[i]
		keyBits += levelBits
		span := keyBits
		child := factory
		factory = func() Map[K, V] { return NewTrie(levelBits, span, invalid, child) }
	}

	return factory(), nil
}

func checkLevel(levelBits, keyBits, width uint) {
	if levelBits == 0 || levelBits > MaxLevelBits || levelBits > keyBits || keyBits > width {
		panic(fmt.Sprintf("arraymap: level of %d bits over %d of %d key bits", levelBits, keyBits, width))
	}
}
