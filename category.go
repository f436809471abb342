package astrocat

import (
	"context"
	"slices"
)

// Category is a named group objects belong to. It keeps its own member list,
// which the membership methods on Object keep in sync through AddMember and
// RemoveMember.
//
// Implementations must be comparable, typically pointer types.
type Category interface {
	AddMember(sel Selection) bool
	RemoveMember(sel Selection) bool
}

// CategoryRegistry resolves and creates categories by name.
type CategoryRegistry interface {
	// Find returns the category named name.
	Find(name string) (Category, bool)
	// Create makes a new top-level category.
	Create(name, description string) (Category, error)
}

// Selection is the opaque handle categories receive for a member.
type Selection struct {
	obj *Object
}

// Object returns the selected object.
func (s Selection) Object() *Object { return s.obj }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return s.obj == nil }

// Categories returns the categories o belongs to, in the order joined.
func (o *Object) Categories() []Category {
	return slices.Clone(o.cats)
}

// InCategory reports whether o belongs to c.
func (o *Object) InCategory(c Category) bool {
	return c != nil && slices.Contains(o.cats, c)
}

// InCategoryByName reports whether o belongs to the category named name.
func (o *Object) InCategoryByName(name string) bool {
	c, ok := o.findCategory(name)
	return ok && o.InCategory(c)
}

// AddToCategory adds c to o's categories and registers o with c. It returns
// the category's answer; joining twice keeps a single membership.
func (o *Object) AddToCategory(c Category) bool {
	if c == nil {
		return false
	}
	if !o.InCategory(c) {
		o.cats = append(o.cats, c)
	}
	ok := c.AddMember(o.Selection())
	o.recordCategory(true, ok)
	return ok
}

// AddToCategoryByName resolves name and joins the category. A missing
// category is created with description when create is set, and the call
// fails otherwise.
func (o *Object) AddToCategoryByName(name string, create bool, description string) bool {
	c, ok := o.findCategory(name)
	if !ok {
		if !create || o.reg == nil || o.reg.categories == nil {
			return false
		}
		var err error
		c, err = o.reg.categories.Create(name, description)
		o.reg.logger.LogCategoryCreate(context.Background(), name, err)
		if err != nil {
			return false
		}
	}
	return o.AddToCategory(c)
}

// RemoveFromCategory drops c from o's categories and unregisters o from c.
// It returns false if o was not a member.
func (o *Object) RemoveFromCategory(c Category) bool {
	i := slices.Index(o.cats, c)
	if c == nil || i < 0 {
		return false
	}
	o.cats = slices.Delete(o.cats, i, i+1)
	if len(o.cats) == 0 {
		o.cats = nil
	}
	ok := c.RemoveMember(o.Selection())
	o.recordCategory(false, ok)
	return ok
}

// RemoveFromCategoryByName leaves the category named name.
func (o *Object) RemoveFromCategoryByName(name string) bool {
	c, ok := o.findCategory(name)
	if !ok {
		return false
	}
	return o.RemoveFromCategory(c)
}

// ClearCategories leaves every category. It keeps going after a failed
// removal so the set always ends empty, and reports whether all succeeded.
func (o *Object) ClearCategories() bool {
	ok := true
	for len(o.cats) > 0 {
		if !o.RemoveFromCategory(o.cats[0]) {
			ok = false
		}
	}
	return ok
}

func (o *Object) findCategory(name string) (Category, bool) {
	if o.reg == nil || o.reg.categories == nil {
		return nil, false
	}
	return o.reg.categories.Find(name)
}

func (o *Object) recordCategory(added, ok bool) {
	if o.reg != nil {
		o.reg.metrics.RecordCategoryChange(added, ok)
	}
}
