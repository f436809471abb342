package arraymap

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Trie is one level of a layered map: 1<<bits child maps addressed by the
// key bits [keyBits-bits, keyBits). A child exists iff its subtree holds at
// least one value.
type Trie[K constraints.Unsigned, V comparable] struct {
	children []Map[K, V]
	newChild func() Map[K, V]
	invalid  V
	shift    uint
	mask     K
	used     int
	total    int
}

// NewTrie creates a level that reads levelBits bits ending at bit keyBits and
// allocates children with newChild. The children must cover the remaining
// keyBits-levelBits low bits. It panics on an impossible layout.
func NewTrie[K constraints.Unsigned, V comparable](levelBits, keyBits uint, invalid V, newChild func() Map[K, V]) *Trie[K, V] {
	checkLevel(levelBits, keyBits, KeyBits[K]())

	n := 1 << levelBits
	return &Trie[K, V]{
		children: make([]Map[K, V], n),
		newChild: newChild,
		invalid:  invalid,
		shift:    keyBits - levelBits,
		mask:     K(n - 1),
	}
}

func (t *Trie[K, V]) slot(k K) int {
	return int((k >> t.shift) & t.mask)
}

// Container returns the child responsible for k, or nil.
func (t *Trie[K, V]) Container(k K) Map[K, V] {
	return t.children[t.slot(k)]
}

// Has reports whether a value is stored at k.
func (t *Trie[K, V]) Has(k K) bool {
	c := t.children[t.slot(k)]
	return c != nil && c.Has(k)
}

// Ref returns a pointer to the value at k, or a *KeyError.
func (t *Trie[K, V]) Ref(k K) (*V, error) {
	c := t.children[t.slot(k)]
	if c == nil {
		return nil, &KeyError{Key: uint64(k)}
	}
	return c.Ref(k)
}

// Value returns the value at k, or the sentinel.
func (t *Trie[K, V]) Value(k K) V {
	c := t.children[t.slot(k)]
	if c == nil {
		return t.invalid
	}
	return c.Value(k)
}

// Ptr returns a pointer to the value at k, or nil.
func (t *Trie[K, V]) Ptr(k K) *V {
	c := t.children[t.slot(k)]
	if c == nil {
		return nil
	}
	return c.Ptr(k)
}

// Insert stores v at k, allocating the child on demand, and reports whether
// k was previously empty. Storing the sentinel is a no-op.
func (t *Trie[K, V]) Insert(k K, v V) bool {
	if v == t.invalid {
		return false
	}
	i := t.slot(k)
	c := t.children[i]
	if c == nil {
		c = t.newChild()
		t.children[i] = c
		t.used++
	}
	if c.Insert(k, v) {
		t.total++
		return true
	}
	return false
}

// Erase clears k and reports whether a value was removed. A child left empty
// is dropped.
func (t *Trie[K, V]) Erase(k K) bool {
	i := t.slot(k)
	c := t.children[i]
	if c == nil || !c.Erase(k) {
		return false
	}
	if c.Used() == 0 {
		t.children[i] = nil
		t.used--
	}
	t.total--
	return true
}

// Used is the number of allocated children.
func (t *Trie[K, V]) Used() int { return t.used }

// TotalUsed is the number of values stored below this level.
func (t *Trie[K, V]) TotalUsed() int { return t.total }

// Size is the number of child slots.
func (t *Trie[K, V]) Size() int { return len(t.children) }

// Nodes counts this level and every allocated level below it.
func (t *Trie[K, V]) Nodes() int {
	n := 1
	for _, c := range t.children {
		if c != nil {
			n += c.Nodes()
		}
	}
	return n
}

// All yields stored entries in ascending key order.
func (t *Trie[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, c := range t.children {
			if c == nil {
				continue
			}
			base := K(i) << t.shift
			for k, v := range c.All() {
				if !yield(base|k, v) {
					return
				}
			}
		}
	}
}
