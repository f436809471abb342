package astrocat

import (
	"github.com/hupe1980/astrocat/core"
)

// Object is the identity every catalog entry embeds: its identifier, whether
// it is currently registered, and its category memberships.
//
// An Object must be bound to a Registry with Init (or created by
// Registry.NewObject) before use. It must not be copied after binding; use
// MoveFrom to relocate it.
//
// Invariant: when the presence flag is set and the identifier is valid, the
// registry resolves the identifier to this object, unless another object
// claimed it since, in which case IsInMainIndex reports false.
type Object struct {
	reg     *Registry
	owner   any
	id      core.ID
	inIndex bool
	cats    []Category // nil when empty
}

// Init binds o to reg and resets it to the unregistered state. owner is the
// value returned by Owner, typically the struct embedding o.
func (o *Object) Init(reg *Registry, owner any) {
	o.reg = reg
	o.owner = owner
	o.id = core.InvalidID
	o.inIndex = false
	o.cats = nil
}

// Index returns the current identifier, or core.InvalidID.
func (o *Object) Index() core.ID {
	if o.reg == nil {
		return core.InvalidID
	}
	return o.id
}

// Owner returns the value passed to Init.
func (o *Object) Owner() any { return o.owner }

// Registry returns the registry o is bound to.
func (o *Object) Registry() *Registry { return o.reg }

// Selection wraps o for category hooks.
func (o *Object) Selection() Selection { return Selection{obj: o} }

// IsInMainIndex reports whether the registry currently resolves o's
// identifier to o itself.
func (o *Object) IsInMainIndex() bool {
	return o.reg != nil && o.inIndex && o.id.Valid() && o.reg.Find(o.id) == o
}

// SetIndex changes the identifier without registering it. A current
// registration is released first.
func (o *Object) SetIndex(id core.ID) error {
	if o.reg == nil {
		return ErrUnbound
	}
	if id.Valid() {
		if err := o.reg.checkExplicit(id); err != nil {
			return err
		}
	}
	o.setIndex(id)
	return nil
}

func (o *Object) setIndex(id core.ID) {
	if o.inIndex {
		o.free()
	}
	o.id = id
}

// free releases the registry slot if o still owns it and clears the flag.
func (o *Object) free() bool {
	owned := o.id.Valid() && o.reg.Find(o.id) == o
	if owned {
		o.reg.Release(o.id)
	}
	o.inIndex = false
	return owned
}

// AddToMainIndex registers o under its current identifier. With checkUsed,
// an object already registered under the identifier is evicted: its presence
// flag is cleared and its identifier kept. Eviction is immediate.
func (o *Object) AddToMainIndex(checkUsed bool) {
	if o.reg == nil || !o.id.Valid() {
		return
	}
	o.inIndex = true
	if checkUsed {
		cur := o.reg.Find(o.id)
		if cur == o {
			return
		}
		if cur != nil {
			cur.inIndex = false
			o.reg.evicted(o.id)
		}
	}
	o.reg.Assign(o.id, o)
}

// SetIndexAndAdd moves o to identifier id and registers it there. It is a
// no-op when id equals the current identifier.
func (o *Object) SetIndexAndAdd(id core.ID, checkUsed bool) error {
	if o.reg == nil {
		return ErrUnbound
	}
	if o.id == id {
		return nil
	}
	if id.Valid() {
		if err := o.reg.checkExplicit(id); err != nil {
			return err
		}
	}
	o.setIndex(id)
	o.AddToMainIndex(checkUsed)
	return nil
}

// SetAutoIndex registers o under a fresh identifier from the auto counter and
// returns it.
func (o *Object) SetAutoIndex() (core.ID, error) {
	if o.reg == nil {
		return core.InvalidID, ErrUnbound
	}
	id, err := o.reg.NextAutoID()
	if err != nil {
		return core.InvalidID, err
	}
	o.setIndex(id)
	o.AddToMainIndex(false)
	return id, nil
}

// RemoveFromMainIndex deregisters o and reports whether its registry slot was
// released. The identifier is kept.
func (o *Object) RemoveFromMainIndex() bool {
	if o.reg == nil || !o.inIndex || !o.id.Valid() {
		return false
	}
	return o.free()
}

// MoveFrom makes o take over src's identity: o adopts src's identifier and
// registers itself there unconditionally, src is marked not present, and
// every category src belonged to now lists o instead of src.
//
// Whatever o held before is released first. An unbound o is bound to src's
// registry. When o is bound to another registry, src's slot in its own
// registry is released.
func (o *Object) MoveFrom(src *Object) {
	if src == nil || src == o {
		return
	}
	if o.reg == nil {
		o.reg = src.reg
	} else {
		o.Release()
	}
	if o.reg == nil {
		return
	}

	o.id = src.id
	if o.id.Valid() {
		o.inIndex = true
		o.reg.Assign(o.id, o)
	}
	if src.reg != o.reg && src.inIndex {
		src.free()
	}
	src.inIndex = false

	for _, c := range src.cats {
		o.AddToCategory(c)
	}
	src.ClearCategories()
}

// Release is the destructor: it deregisters o if present and leaves every
// category, notifying each. It reports whether every category removal
// succeeded. The identifier is kept.
func (o *Object) Release() bool {
	if o.reg == nil {
		return true
	}
	if o.inIndex {
		o.RemoveFromMainIndex()
	}
	return o.ClearCategories()
}
