package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/astrocat"
	"github.com/hupe1980/astrocat/catalog"
	"github.com/hupe1980/astrocat/metric"
	"github.com/hupe1980/astrocat/usercat"
)

type globalFlags struct {
	source      string
	bucket      string
	prefix      string
	endpoint    string
	region      string
	accessKey   string
	secretKey   string
	insecure    bool
	domain      string
	concurrency int
	ioLimit     int64
	memoryLimit int64
	logLevel    string
	json        bool
	metrics     bool
}

func newRootCommand() *cobra.Command {
	f := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "astrocat",
		Short: "Load and query astronomical catalog files",
		Long: `astrocat reads catalog files (YAML or JSON, optionally zstd, lz4 or gzip
compressed) from a local directory, S3 or MinIO, registers every entry by
its catalog number and answers lookups.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.source, "source", "local", "Catalog source (local, s3, minio)")
	pf.StringVar(&f.bucket, "bucket", "", "Bucket for s3 and minio sources")
	pf.StringVar(&f.prefix, "prefix", "", "Directory (local) or key prefix (s3, minio)")
	pf.StringVar(&f.endpoint, "endpoint", "", "Endpoint for minio, or an S3-compatible endpoint for s3")
	pf.StringVar(&f.region, "region", "", "AWS region override")
	pf.StringVar(&f.accessKey, "access-key", "", "MinIO access key (default $MINIO_ACCESS_KEY)")
	pf.StringVar(&f.secretKey, "secret-key", "", "MinIO secret key (default $MINIO_SECRET_KEY)")
	pf.BoolVar(&f.insecure, "insecure", false, "Use plain HTTP for minio")
	pf.StringVar(&f.domain, "domain", "", "Description for categories created while loading")
	pf.IntVar(&f.concurrency, "concurrency", 4, "Files fetched and decoded at once")
	pf.Int64Var(&f.ioLimit, "io-limit", 0, "Read limit in bytes per second (0 = unlimited)")
	pf.Int64Var(&f.memoryLimit, "memory-limit", 0, "Bytes of fetched catalog data held at once (0 = unlimited)")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.BoolVar(&f.json, "json", false, "Log as JSON")
	pf.BoolVar(&f.metrics, "metrics", false, "Print metric counters after loading")

	cmd.AddCommand(newLoadCommand(f))
	cmd.AddCommand(newFindCommand(f))

	return cmd
}

func (f *globalFlags) logger() (*astrocat.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", f.logLevel)
	}
	if f.json {
		return astrocat.NewJSONLogger(level), nil
	}
	return astrocat.NewTextLogger(level), nil
}

// session is a loaded catalog with everything it was loaded with.
type session struct {
	cat      *catalog.Catalog
	cats     *usercat.Registry
	basic    *astrocat.BasicMetricsCollector
	registry *prometheus.Registry
	result   catalog.Result
}

// load builds a registry and loads names, or everything under the source
// when names is empty.
func (f *globalFlags) load(ctx context.Context, names []string) (*session, error) {
	logger, err := f.logger()
	if err != nil {
		return nil, err
	}

	store, err := f.store(ctx)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	prom, err := metric.NewPrometheusCollector(promReg, "astrocat")
	if err != nil {
		return nil, err
	}
	basic := &astrocat.BasicMetricsCollector{}

	cats := usercat.New()
	reg, err := astrocat.New(
		astrocat.WithLogger(logger),
		astrocat.WithCategories(cats),
		astrocat.WithMetricsCollector(teeCollector{basic, prom}),
	)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(reg)
	loader := catalog.NewLoader(store, cat,
		catalog.WithDomain(f.domain),
		catalog.WithConcurrency(f.concurrency),
		catalog.WithIOLimit(f.ioLimit),
		catalog.WithMemoryLimit(f.memoryLimit),
		catalog.WithLogger(logger),
		catalog.WithFileObserver(prom),
	)

	var res catalog.Result
	if len(names) == 0 {
		res, err = loader.LoadPrefix(ctx, "")
	} else {
		res, err = loader.Load(ctx, names...)
	}
	if err != nil {
		logger.WarnContext(ctx, "load finished with errors", "error", err)
	}
	if res.Files == 0 && err != nil {
		return nil, err
	}

	return &session{cat: cat, cats: cats, basic: basic, registry: promReg, result: res}, nil
}

func (s *session) printMetrics(cmd *cobra.Command) error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(out, "%s_count %d\n", name, m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}

// teeCollector forwards registry metrics to several collectors.
type teeCollector []astrocat.MetricsCollector

func (t teeCollector) RecordAssign(fresh bool) {
	for _, c := range t {
		c.RecordAssign(fresh)
	}
}

func (t teeCollector) RecordRelease(removed bool) {
	for _, c := range t {
		c.RecordRelease(removed)
	}
}

func (t teeCollector) RecordEviction() {
	for _, c := range t {
		c.RecordEviction()
	}
}

func (t teeCollector) RecordAutoIndex(err error) {
	for _, c := range t {
		c.RecordAutoIndex(err)
	}
}

func (t teeCollector) RecordCategoryChange(added, ok bool) {
	for _, c := range t {
		c.RecordCategoryChange(added, ok)
	}
}
