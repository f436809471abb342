// Package astrocat is the identifier registry of an astronomical catalog.
//
// Every catalog entry (star, planet, deep-sky object) embeds an Object. The
// Object carries the entry's 32-bit identifier, whether it is currently
// registered, and the categories it belongs to. A Registry maps identifiers
// back to their Objects over a sparse four-level trie, so a catalog spread
// across the whole uint32 range costs memory proportional to what is used.
//
// # Quick Start
//
//	cats := usercat.New()
//	reg, _ := astrocat.New(astrocat.WithCategories(cats))
//
//	star := reg.NewObject(nil)
//	_ = star.SetIndexAndAdd(32349, true)
//	star.AddToCategoryByName("Binary Stars", true, "stars")
//
//	reg.Find(32349) == star // true
//
// # Ownership
//
// The registry holds weak references. Objects own their registration and
// must call Release when they are discarded; Sweep purges registrations whose
// objects were collected without it.
//
// # Identifiers
//
// Catalog files use explicit identifiers. Objects without one draw from the
// auto range, which counts down from core.MaxAutoID to a floor
// (WithAutoIndexFloor). Explicit identifiers inside the part of that range
// not yet issued are rejected with ErrReservedIndex.
//
// # Eviction
//
// Registering an object under an identifier that is taken, with checkUsed
// set, evicts the previous holder: it keeps its identifier but reports
// IsInMainIndex false. Later updates go to the newer object.
//
// # Concurrency
//
// Registry and Object are not safe for concurrent use. The catalog loader
// fetches and decodes in parallel but applies records on one goroutine.
package astrocat
