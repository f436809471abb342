package catalog

import (
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/astrocat"
	"github.com/hupe1980/astrocat/core"
)

// Catalog owns a set of entries registered in one Registry.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	reg     *astrocat.Registry
	entries []*Entry
	byName  map[string]*Entry
}

// New creates an empty catalog over reg.
func New(reg *astrocat.Registry) *Catalog {
	return &Catalog{
		reg:    reg,
		byName: make(map[string]*Entry),
	}
}

// Registry returns the registry entries are bound to.
func (c *Catalog) Registry() *astrocat.Registry { return c.reg }

// NewEntry creates an unregistered entry owned by c.
func (c *Catalog) NewEntry(name, typ string) *Entry {
	e := &Entry{Name: name, Type: typ}
	e.Init(c.reg, e)
	c.entries = append(c.entries, e)
	c.index(e)
	return e
}

// Lookup returns the entry registered under id, or nil.
func (c *Catalog) Lookup(id core.ID) *Entry {
	return EntryOf(c.reg.Find(id))
}

// LookupName returns the most recently named entry called name, ignoring
// case, or nil.
func (c *Catalog) LookupName(name string) *Entry {
	return c.byName[strings.ToLower(name)]
}

// Remove releases the entry registered under id and drops it from the
// catalog. It reports whether there was one.
func (c *Catalog) Remove(id core.ID) bool {
	e := c.Lookup(id)
	if e == nil {
		return false
	}
	c.drop(e)
	return true
}

// Len is the number of entries, evicted ones included until Compact.
func (c *Catalog) Len() int { return len(c.entries) }

// All yields entries in creation order.
func (c *Catalog) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range c.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Compact drops entries the registry no longer resolves to, such as ones
// evicted by a later record, and moves the rest into fresh allocations. The
// registry and every category follow the move. It returns the number
// dropped.
func (c *Catalog) Compact() int {
	kept := make([]*Entry, 0, len(c.entries))
	clear(c.byName)

	dropped := 0
	for _, old := range c.entries {
		if !old.IsInMainIndex() {
			old.Release()
			dropped++
			continue
		}

		e := &Entry{
			Name:   old.Name,
			Type:   old.Type,
			Source: old.Source,
			Fields: old.Fields,
		}
		e.Init(c.reg, e)
		e.MoveFrom(&old.Object)

		kept = append(kept, e)
		c.index(e)
	}

	clear(c.entries)
	c.entries = kept
	return dropped
}

// Close releases every entry and empties the catalog.
func (c *Catalog) Close() error {
	for _, e := range c.entries {
		e.Release()
	}
	c.entries = nil
	clear(c.byName)
	return nil
}

func (c *Catalog) index(e *Entry) {
	if e.Name != "" {
		c.byName[strings.ToLower(e.Name)] = e
	}
}

func (c *Catalog) rename(e *Entry, old string) {
	if key := strings.ToLower(old); old != "" && c.byName[key] == e {
		delete(c.byName, key)
	}
	c.index(e)
}

func (c *Catalog) drop(e *Entry) {
	e.Release()
	c.entries = slices.DeleteFunc(c.entries, func(x *Entry) bool { return x == e })
	if key := strings.ToLower(e.Name); c.byName[key] == e {
		delete(c.byName, key)
	}
}
