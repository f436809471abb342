package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/astrocat"
	"github.com/hupe1980/astrocat/blobstore"
	"github.com/hupe1980/astrocat/codec"
	"github.com/hupe1980/astrocat/core"
	"github.com/hupe1980/astrocat/record"
	"github.com/hupe1980/astrocat/resource"
)

// ErrMalformedRecord is returned, joined with others, for records that could
// not be applied.
var ErrMalformedRecord = errors.New("catalog: malformed record")

// Result summarizes a Load.
type Result struct {
	Files            int // files decoded and applied
	FailedFiles      int
	Records          int // records applied
	Skipped          int // malformed records
	Added            int
	Modified         int
	Replaced         int
	Evicted          int // entries displaced by a record with the same Index
	CategoryFailures int // records whose categories did not fully apply
}

// Loader reads catalog files from a BlobStore into a Catalog.
type Loader struct {
	store  blobstore.BlobStore
	cat    *Catalog
	rc     *resource.Controller
	opts   options
	logger *astrocat.Logger
}

// NewLoader creates a Loader.
func NewLoader(store blobstore.BlobStore, cat *Catalog, optFns ...Option) *Loader {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.logger
	if opts.domain != "" {
		logger = logger.WithDomain(opts.domain)
	}

	return &Loader{
		store: store,
		cat:   cat,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.memoryLimit,
			MaxFetches:         int64(opts.concurrency),
			IOLimitBytesPerSec: opts.ioLimit,
		}),
		opts:   opts,
		logger: logger,
	}
}

// LoadPrefix loads every file in the store whose name starts with prefix.
func (l *Loader) LoadPrefix(ctx context.Context, prefix string) (Result, error) {
	names, err := l.store.List(ctx, prefix)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: list %q: %w", prefix, err)
	}
	return l.Load(ctx, names...)
}

type decoded struct {
	records []record.Hash
	err     error
}

// Load fetches and decodes names concurrently, then applies their records in
// the given order. Failed files and malformed records are reported through
// the joined error; everything else is still applied.
func (l *Loader) Load(ctx context.Context, names ...string) (Result, error) {
	files := make([]decoded, len(names))

	var g errgroup.Group
	g.SetLimit(l.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			recs, err := l.fetch(ctx, name)
			if l.opts.fileObserver != nil {
				l.opts.fileObserver.ObserveFile(name, time.Since(start), len(recs), err)
			}
			l.logger.LogFileLoad(ctx, name, len(recs), err)
			files[i] = decoded{records: recs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var (
		res  Result
		errs []error
	)
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if files[i].err != nil {
			res.FailedFiles++
			errs = append(errs, files[i].err)
			continue
		}
		res.Files++
		for n, rec := range files[i].records {
			if err := l.apply(rec, name, &res); err != nil {
				res.Skipped++
				l.logger.LogRecordSkipped(ctx, name, n, err)
				errs = append(errs, fmt.Errorf("%w: %s record %d: %w", ErrMalformedRecord, name, n, err))
			}
		}
		files[i] = decoded{}
	}
	return res, errors.Join(errs...)
}

func (l *Loader) fetch(ctx context.Context, name string) ([]record.Hash, error) {
	if err := l.rc.AcquireFetch(ctx); err != nil {
		return nil, err
	}
	data, err := blobstore.Fetch(ctx, l.store, name)
	l.rc.ReleaseFetch()
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", name, err)
	}
	if err := l.rc.Throttle(ctx, data); err != nil {
		return nil, err
	}

	held, err := l.rc.AcquireMemory(ctx, int64(len(data)))
	if err != nil {
		return nil, err
	}
	defer l.rc.ReleaseMemory(held)

	recs, err := codec.Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return recs, nil
}

// apply merges one record into the catalog.
func (l *Loader) apply(rec record.Hash, source string, res *Result) error {
	dispName, _ := rec.GetString(KeyDisposition)
	disposition, err := astrocat.ParseDisposition(dispName)
	if err != nil {
		return err
	}

	id := core.InvalidID
	if rec.Has(KeyIndex) {
		n, ok := rec.GetUint32(KeyIndex)
		if !ok || !core.ID(n).Valid() {
			return fmt.Errorf("invalid %s %v", KeyIndex, rec[KeyIndex])
		}
		id = core.ID(n)
	}

	if disposition != astrocat.DispositionAdd && id.Valid() {
		if e := l.cat.Lookup(id); e != nil {
			old := e.Name
			e.update(rec, disposition, source)
			l.cat.rename(e, old)
			l.applyCategories(e, rec, disposition, res)
			if disposition == astrocat.DispositionReplace {
				res.Replaced++
			} else {
				res.Modified++
			}
			res.Records++
			return nil
		}
	}

	e := l.cat.NewEntry("", "")
	e.update(rec, disposition, source)

	if id.Valid() {
		displaced := l.cat.Lookup(id)
		if err := e.SetIndexAndAdd(id, true); err != nil {
			l.cat.drop(e)
			return err
		}
		if displaced != nil {
			// An evicted entry stays in the catalog until Compact but leaves
			// its categories now.
			displaced.ClearCategories()
			res.Evicted++
		}
	} else if _, err := e.SetAutoIndex(); err != nil {
		l.cat.drop(e)
		return err
	}
	l.cat.rename(e, "")

	l.applyCategories(e, rec, disposition, res)
	res.Added++
	res.Records++
	return nil
}

func (l *Loader) applyCategories(e *Entry, rec record.Hash, disposition astrocat.Disposition, res *Result) {
	if !rec.Has(astrocat.CategoryKey) {
		if disposition == astrocat.DispositionReplace {
			e.ClearCategories()
		}
		return
	}
	if !e.LoadCategories(rec, disposition, l.opts.domain) {
		res.CategoryFailures++
	}
}
