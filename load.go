package astrocat

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/astrocat/record"
)

// CategoryKey is the record field category names are read from.
const CategoryKey = "Category"

// Disposition says how a catalog record combines with existing data.
type Disposition int

const (
	// DispositionAdd appends to existing data.
	DispositionAdd Disposition = iota
	// DispositionModify updates existing data in place.
	DispositionModify
	// DispositionReplace discards existing data first.
	DispositionReplace
)

// String returns the catalog spelling of d.
func (d Disposition) String() string {
	switch d {
	case DispositionAdd:
		return "Add"
	case DispositionModify:
		return "Modify"
	case DispositionReplace:
		return "Replace"
	default:
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
}

// ParseDisposition parses "Add", "Modify" or "Replace", case-insensitively.
func ParseDisposition(s string) (Disposition, error) {
	switch strings.ToLower(s) {
	case "add", "":
		return DispositionAdd, nil
	case "modify":
		return DispositionModify, nil
	case "replace":
		return DispositionReplace, nil
	default:
		return DispositionAdd, fmt.Errorf("unknown disposition %q", s)
	}
}

// LoadCategories joins the categories named in rec's Category field, which
// is either a single string or a list of strings. Replace clears existing
// memberships first; any other disposition appends. Unknown names are
// created with domain as their description.
//
// It reports true only if every name was applied. An empty name, a missing
// field or a field of another shape is a failure; names applied before a
// failure stay applied.
func (o *Object) LoadCategories(rec record.Record, disposition Disposition, domain string) bool {
	if disposition == DispositionReplace {
		o.ClearCategories()
	}

	ok := o.loadCategories(rec, domain)
	if o.reg != nil {
		o.reg.logger.WithID(o.id).LogCategoryLoad(context.Background(), ok)
	}
	return ok
}

func (o *Object) loadCategories(rec record.Record, domain string) bool {
	if name, isString := rec.GetString(CategoryKey); isString {
		if name == "" {
			return false
		}
		return o.AddToCategoryByName(name, true, domain)
	}

	v, found := rec.GetValue(CategoryKey)
	if !found {
		return false
	}
	names, isArray := v.AsArray()
	if !isArray {
		return false
	}

	ok := true
	for _, n := range names {
		name, isString := n.AsString()
		if !isString || name == "" {
			ok = false
			continue
		}
		if !o.AddToCategoryByName(name, true, domain) {
			ok = false
		}
	}
	return ok
}
