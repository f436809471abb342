package arraymap

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Leaf is a direct-addressed array of 1<<bits slots keyed by the low bits of
// the key. Empty slots hold the sentinel.
type Leaf[K constraints.Unsigned, V comparable] struct {
	slots   []V
	invalid V
	mask    K
	used    int
}

// NewLeaf creates a leaf of 1<<levelBits slots, all set to invalid.
// It panics if levelBits is outside [1, MaxLevelBits] or wider than K.
func NewLeaf[K constraints.Unsigned, V comparable](levelBits uint, invalid V) *Leaf[K, V] {
	checkLevel(levelBits, levelBits, KeyBits[K]())

	n := 1 << levelBits
	l := &Leaf[K, V]{
		slots:   make([]V, n),
		invalid: invalid,
		mask:    K(n - 1),
	}

	var zero V
	if invalid != zero {
		for i := range l.slots {
			l.slots[i] = invalid
		}
	}
	return l
}

func (l *Leaf[K, V]) slot(k K) int {
	return int(k & l.mask)
}

// Has reports whether a value is stored at k.
func (l *Leaf[K, V]) Has(k K) bool {
	return l.slots[l.slot(k)] != l.invalid
}

// Ref returns a pointer to the value at k, or a *KeyError if the slot is empty.
func (l *Leaf[K, V]) Ref(k K) (*V, error) {
	p := l.Ptr(k)
	if p == nil {
		return nil, &KeyError{Key: uint64(k)}
	}
	return p, nil
}

// Value returns the value at k, or the sentinel.
func (l *Leaf[K, V]) Value(k K) V {
	return l.slots[l.slot(k)]
}

// Ptr returns a pointer to the value at k, or nil.
func (l *Leaf[K, V]) Ptr(k K) *V {
	i := l.slot(k)
	if l.slots[i] == l.invalid {
		return nil
	}
	return &l.slots[i]
}

// Insert stores v at k. It returns true only if the slot was empty; an
// overwrite stores v but returns false. Storing the sentinel is a no-op.
func (l *Leaf[K, V]) Insert(k K, v V) bool {
	if v == l.invalid {
		return false
	}
	i := l.slot(k)
	fresh := l.slots[i] == l.invalid
	if fresh {
		l.used++
	}
	l.slots[i] = v
	return fresh
}

// Erase resets k to the sentinel and reports whether a value was removed.
func (l *Leaf[K, V]) Erase(k K) bool {
	i := l.slot(k)
	if l.slots[i] == l.invalid {
		return false
	}
	l.slots[i] = l.invalid
	l.used--
	return true
}

// Used is the exact number of occupied slots.
func (l *Leaf[K, V]) Used() int { return l.used }

// TotalUsed equals Used for a leaf.
func (l *Leaf[K, V]) TotalUsed() int { return l.used }

// Size is the number of slots.
func (l *Leaf[K, V]) Size() int { return len(l.slots) }

// Nodes is always 1.
func (l *Leaf[K, V]) Nodes() int { return 1 }

// All yields occupied slots in ascending order.
func (l *Leaf[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, v := range l.slots {
			if v == l.invalid {
				continue
			}
			if !yield(K(i), v) {
				return
			}
		}
	}
}
