package arraymap

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T) Map[uint32, int] {
	t.Helper()
	m, err := NewLayered[uint32, int](0, 8, 8, 8, 8)
	require.NoError(t, err)
	return m
}

// requireCompact fails if any allocated child has an empty subtree or if the
// per-level counters disagree with the children.
func requireCompact(t *testing.T, m Map[uint32, int]) {
	t.Helper()
	tr, ok := m.(*Trie[uint32, int])
	if !ok {
		return
	}
	used, total := 0, 0
	for _, c := range tr.children {
		if c == nil {
			continue
		}
		require.Positive(t, c.TotalUsed(), "empty child retained")
		used++
		total += c.TotalUsed()
		requireCompact(t, c)
	}
	require.Equal(t, used, tr.Used())
	require.Equal(t, total, tr.TotalUsed())
}

func TestLeaf_Basic(t *testing.T) {
	l := NewLeaf[uint32](8, 0)
	require.Equal(t, 256, l.Size())

	assert.False(t, l.Has(7))
	assert.Nil(t, l.Ptr(7))
	assert.Equal(t, 0, l.Value(7))

	require.True(t, l.Insert(7, 42))
	require.False(t, l.Insert(7, 43), "overwrite is not a new key")
	require.Equal(t, 1, l.Used())
	require.Equal(t, 43, l.Value(7))

	p, err := l.Ref(7)
	require.NoError(t, err)
	*p = 44
	require.Equal(t, 44, l.Value(7))

	require.True(t, l.Erase(7))
	require.False(t, l.Erase(7))
	require.Equal(t, 0, l.Used())
}

func TestLeaf_LowBitsOnly(t *testing.T) {
	l := NewLeaf[uint32](8, 0)
	require.True(t, l.Insert(0x1234_5601, 1))
	assert.True(t, l.Has(0x01))
	assert.True(t, l.Has(0xFFFF_FF01))
	assert.False(t, l.Has(0x1234_5600))
}

func TestLeaf_CustomSentinel(t *testing.T) {
	l := NewLeaf[uint16](4, -1)
	require.Equal(t, 16, l.Size())
	assert.False(t, l.Has(3))
	assert.Equal(t, -1, l.Value(3))

	require.True(t, l.Insert(3, 0), "zero is a valid value when the sentinel is -1")
	assert.True(t, l.Has(3))
	assert.Equal(t, 0, l.Value(3))

	require.False(t, l.Insert(4, -1), "the sentinel cannot be stored")
	assert.Equal(t, 1, l.Used())
}

func TestRef_InvalidKey(t *testing.T) {
	m := newIndex(t)
	_, err := m.Ref(99)
	require.ErrorIs(t, err, ErrInvalidKey)

	var ke *KeyError
	require.True(t, errors.As(err, &ke))
	assert.Equal(t, uint64(99), ke.Key)

	// Same failure from a leaf reached through allocated levels.
	m.Insert(100, 1)
	_, err = m.Ref(99)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestTrie_ConcreteScenario(t *testing.T) {
	m := newIndex(t)

	require.True(t, m.Insert(5, 1))
	require.True(t, m.Insert(1000000, 2))
	require.True(t, m.Insert(4000000000, 3))
	require.Equal(t, 3, m.TotalUsed())

	assert.Equal(t, 1, m.Value(5))
	assert.Equal(t, 2, m.Value(1000000))
	assert.Equal(t, 3, m.Value(4000000000))
	assert.Equal(t, 0, m.Value(42))
	assert.Nil(t, m.Ptr(42))

	require.True(t, m.Erase(1000000))
	assert.Equal(t, 0, m.Value(1000000))
	assert.Equal(t, 2, m.TotalUsed())
	requireCompact(t, m)
}

func TestTrie_ChildrenFreedWhenEmpty(t *testing.T) {
	m := newIndex(t)
	tr := m.(*Trie[uint32, int])
	require.Equal(t, 1, m.Nodes())

	m.Insert(0xAABBCCDD, 1)
	require.Equal(t, 4, m.Nodes())
	require.NotNil(t, tr.Container(0xAABBCCDD))
	require.Equal(t, 1, tr.Used())

	m.Insert(0xAABBCC00, 2) // shares every level
	require.Equal(t, 4, m.Nodes())

	require.True(t, m.Erase(0xAABBCCDD))
	require.Equal(t, 4, m.Nodes())

	require.True(t, m.Erase(0xAABBCC00))
	require.Equal(t, 1, m.Nodes())
	require.Nil(t, tr.Container(0xAABBCCDD))
	require.Equal(t, 0, tr.Used())
	require.Equal(t, 0, tr.TotalUsed())
}

func TestTrie_EraseAbsent(t *testing.T) {
	m := newIndex(t)
	m.Insert(10, 1)

	require.False(t, m.Erase(11), "same leaf, empty slot")
	require.False(t, m.Erase(1<<24), "unallocated subtree")
	require.Equal(t, 1, m.TotalUsed())
	require.Equal(t, 4, m.Nodes())
}

func TestTrie_SentinelInsertAllocatesNothing(t *testing.T) {
	m := newIndex(t)
	require.False(t, m.Insert(123456, 0))
	require.Equal(t, 1, m.Nodes())
	require.Equal(t, 0, m.TotalUsed())
}

func TestTrie_AllAscending(t *testing.T) {
	m := newIndex(t)
	keys := []uint32{4000000000, 5, 1 << 16, 1000000, 255, 256}
	for i, k := range keys {
		m.Insert(k, i+1)
	}

	var got []uint32
	for k, v := range m.All() {
		got = append(got, k)
		require.Equal(t, m.Value(k), v)
	}
	require.Equal(t, []uint32{5, 255, 256, 1 << 16, 1000000, 4000000000}, got)

	// Early stop.
	n := 0
	for range m.All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestTrie_RandomOps(t *testing.T) {
	m := newIndex(t)
	ref := make(map[uint32]int)
	rng := rand.New(rand.NewPCG(7, 11))

	// Keys drawn from a few clusters so subtrees fill and drain.
	bases := []uint32{0, 0x00FF_0000, 0x8000_0000, 0xFFFF_FF00}
	for i := 0; i < 20000; i++ {
		k := bases[rng.IntN(len(bases))] + uint32(rng.IntN(512))
		if rng.IntN(3) == 0 {
			_, had := ref[k]
			require.Equal(t, had, m.Erase(k))
			delete(ref, k)
		} else {
			v := rng.IntN(1000) + 1
			_, had := ref[k]
			require.Equal(t, !had, m.Insert(k, v))
			ref[k] = v
		}
		require.Equal(t, len(ref), m.TotalUsed())
	}

	for k, v := range ref {
		require.True(t, m.Has(k))
		require.Equal(t, v, m.Value(k))
		p := m.Ptr(k)
		require.NotNil(t, p)
		require.Equal(t, v, *p)
	}
	requireCompact(t, m)

	for k := range ref {
		require.True(t, m.Erase(k))
	}
	require.Equal(t, 0, m.TotalUsed())
	require.Equal(t, 1, m.Nodes())
}

func TestNewLayered_Validation(t *testing.T) {
	_, err := NewLayered[uint32, int](0)
	require.ErrorIs(t, err, ErrLayout)

	_, err = NewLayered[uint32, int](0, 8, 8, 8)
	require.ErrorIs(t, err, ErrLayout)

	_, err = NewLayered[uint32, int](0, 0, 16, 16)
	require.ErrorIs(t, err, ErrLayout)

	_, err = NewLayered[uint64, int](0, 32, 32)
	require.ErrorIs(t, err, ErrLayout)

	m, err := NewLayered[uint16, string]("", 4, 12)
	require.NoError(t, err)
	require.True(t, m.Insert(0xABCD, "x"))
	require.Equal(t, "x", m.Value(0xABCD))
	require.Equal(t, "", m.Value(0xABCC))

	single, err := NewLayered[uint8, string]("", 8)
	require.NoError(t, err)
	_, isLeaf := single.(*Leaf[uint8, string])
	require.True(t, isLeaf)
}

func TestNewTrie_PanicsOnBadLevel(t *testing.T) {
	require.Panics(t, func() {
		NewTrie[uint32, int](16, 8, 0, func() Map[uint32, int] { return NewLeaf[uint32](8, 0) })
	})
	require.Panics(t, func() { NewLeaf[uint8](9, 0) })
}

func TestKeyBits(t *testing.T) {
	assert.Equal(t, uint(8), KeyBits[uint8]())
	assert.Equal(t, uint(16), KeyBits[uint16]())
	assert.Equal(t, uint(32), KeyBits[uint32]())
	assert.Equal(t, uint(64), KeyBits[uint64]())
}
