// Package arraymap provides sparse direct-addressed maps over fixed-width unsigned keys.
//
// A Leaf is a flat array of 1<<bits slots addressed by the low bits of the key.
// A Trie is an array of 1<<bits child maps addressed by one slice of the key's
// bits; children are Leaves or further Tries, so levels compose into a radix
// trie consumed most-significant slice first:
//
//	m, _ := arraymap.NewLayered[uint32, *Star](nil, 8, 8, 8, 8)
//	m.Insert(4000000000, star)
//	m.Value(4000000000) // star
//
// # Memory
//
// A child is allocated on the first insert into its range and dropped the moment
// its subtree becomes empty, so memory is proportional to the number of live
// entries rather than to the key space.
//
// # Absence
//
// Every map is built with a sentinel value meaning "empty slot". The sentinel
// itself can never be stored. Value returns the sentinel for absent keys, Ptr
// returns nil, and Ref fails with an error wrapping ErrInvalidKey.
//
// Maps are not safe for concurrent use.
package arraymap
