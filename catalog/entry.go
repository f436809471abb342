package catalog

import (
	"maps"

	"github.com/hupe1980/astrocat"
	"github.com/hupe1980/astrocat/record"
)

// Record field names.
const (
	KeyIndex       = "Index"
	KeyName        = "Name"
	KeyType        = "Type"
	KeyDisposition = "Disposition"
)

// Entry is one catalog object.
type Entry struct {
	astrocat.Object

	Name   string
	Type   string
	Source string      // file the entry was last loaded from
	Fields record.Hash // every field of the defining record
}

// EntryOf returns the entry embedding o, or nil.
func EntryOf(o *astrocat.Object) *Entry {
	if o == nil {
		return nil
	}
	e, _ := o.Owner().(*Entry)
	return e
}

// update applies a record's descriptive fields. Replace discards the old
// field set; otherwise fields are merged.
func (e *Entry) update(rec record.Hash, disposition astrocat.Disposition, source string) {
	if name, ok := rec.GetString(KeyName); ok {
		e.Name = name
	}
	if typ, ok := rec.GetString(KeyType); ok {
		e.Type = typ
	}
	if disposition == astrocat.DispositionReplace || e.Fields == nil {
		e.Fields = make(record.Hash, len(rec))
	}
	maps.Copy(e.Fields, rec)
	e.Source = source
}
