// Package catalog holds the entries of a loaded astronomical catalog and
// loads them from catalog files.
//
// A Catalog owns its entries; the registry only refers to them. Loading
// fetches and decodes files concurrently, then applies the records in file
// order on the calling goroutine:
//
//	reg, _ := astrocat.New(astrocat.WithCategories(usercat.New()))
//	cat := catalog.New(reg)
//	loader := catalog.NewLoader(blobstore.NewLocalStore("data"), cat,
//	    catalog.WithDomain("stars"),
//	    catalog.WithConcurrency(4),
//	)
//	res, err := loader.Load(ctx, "hip.yaml", "extra.yaml.zst")
//
// # Records
//
// Each record is a mapping. Recognised fields:
//
//   - Index: explicit identifier; without it one is drawn from the auto range
//   - Name, Type: descriptive
//   - Category: a name or a list of names
//   - Disposition: Add (default), Modify or Replace
//
// Add registers a new entry, evicting whatever held the identifier. Modify
// and Replace update the entry already registered under Index, and add one
// when there is none. Other fields are kept on the entry as-is.
package catalog
