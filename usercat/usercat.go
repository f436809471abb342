// Package usercat is a name-keyed registry of user categories. It implements
// astrocat.CategoryRegistry, and its categories keep the member side of every
// membership an astrocat.Object holds.
package usercat

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/astrocat"
)

var (
	// ErrExists is returned when a category name is already taken.
	ErrExists = errors.New("usercat: category exists")
	// ErrEmptyName is returned for an empty category name.
	ErrEmptyName = errors.New("usercat: empty category name")
)

// Category is a named set of objects, optionally nested under a parent.
type Category struct {
	name        string
	description string
	parent      *Category
	children    []*Category
	members     map[astrocat.Selection]struct{}
}

var _ astrocat.Category = (*Category)(nil)

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Description returns the description given at creation.
func (c *Category) Description() string { return c.description }

// Parent returns the parent category, or nil for a top-level one.
func (c *Category) Parent() *Category { return c.parent }

// Children returns the direct subcategories.
func (c *Category) Children() []*Category { return slices.Clone(c.children) }

// AddMember implements astrocat.Category. It reports whether sel was new.
func (c *Category) AddMember(sel astrocat.Selection) bool {
	if sel.Empty() {
		return false
	}
	if _, ok := c.members[sel]; ok {
		return false
	}
	c.members[sel] = struct{}{}
	return true
}

// RemoveMember implements astrocat.Category. It reports whether sel was a
// member.
func (c *Category) RemoveMember(sel astrocat.Selection) bool {
	if _, ok := c.members[sel]; !ok {
		return false
	}
	delete(c.members, sel)
	return true
}

// Has reports whether o is a member.
func (c *Category) Has(o *astrocat.Object) bool {
	_, ok := c.members[o.Selection()]
	return ok
}

// Len is the number of members.
func (c *Category) Len() int { return len(c.members) }

// Members returns the member objects ordered by identifier.
func (c *Category) Members() []*astrocat.Object {
	out := make([]*astrocat.Object, 0, len(c.members))
	for sel := range c.members {
		out = append(out, sel.Object())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

// MemberIDs returns the identifiers of members that have one.
func (c *Category) MemberIDs() *roaring.Bitmap {
	bm := roaring.New()
	for sel := range c.members {
		if id := sel.Object().Index(); id.Valid() {
			bm.Add(uint32(id))
		}
	}
	return bm
}

// Registry maps names to categories.
type Registry struct {
	byName map[string]*Category
}

var _ astrocat.CategoryRegistry = (*Registry)(nil)

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Category)}
}

// Find implements astrocat.CategoryRegistry.
func (r *Registry) Find(name string) (astrocat.Category, bool) {
	c, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// Get returns the concrete category named name.
func (r *Registry) Get(name string) (*Category, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Create implements astrocat.CategoryRegistry.
func (r *Registry) Create(name, description string) (astrocat.Category, error) {
	c, err := r.CreateChild(nil, name, description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateChild creates a category under parent; a nil parent makes it
// top-level. Names are unique across the whole registry.
func (r *Registry) CreateChild(parent *Category, name, description string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}

	c := &Category{
		name:        name,
		description: description,
		parent:      parent,
		members:     make(map[astrocat.Selection]struct{}),
	}
	if parent != nil {
		parent.children = append(parent.children, c)
	}
	r.byName[name] = c
	return c, nil
}

// Names returns every category name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len is the number of categories.
func (r *Registry) Len() int { return len(r.byName) }
