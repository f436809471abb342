// Package mmap maps catalog files read-only into memory.
//
//	m, err := mmap.Open("stars.yaml")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) with madvise(2) hints. Elsewhere the file is
// read into memory and hints are ignored.
//
// A Mapping is safe for concurrent reads. Close is idempotent; slices
// returned by Bytes must not be used after it.
package mmap
