package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLoadCommand(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load [files...]",
		Short: "Load catalog files and print statistics",
		Long: `Load the given catalog files, or every file under --prefix when none are
given, and print entry, registry and category statistics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			defer func() { _ = s.cat.Close() }()

			res := s.result
			st := s.cat.Registry().Stats()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "files\t%d (%d failed)\n", res.Files, res.FailedFiles)
			fmt.Fprintf(w, "records\t%d (%d skipped)\n", res.Records, res.Skipped)
			fmt.Fprintf(w, "added\t%d\n", res.Added)
			fmt.Fprintf(w, "modified\t%d\n", res.Modified)
			fmt.Fprintf(w, "replaced\t%d\n", res.Replaced)
			fmt.Fprintf(w, "evicted\t%d\n", res.Evicted)
			fmt.Fprintf(w, "category failures\t%d\n", res.CategoryFailures)
			fmt.Fprintf(w, "registered\t%d\n", st.Entries)
			fmt.Fprintf(w, "trie nodes\t%d\n", st.Nodes)
			fmt.Fprintf(w, "auto ids issued\t%d\n", st.AutoIssued)
			fmt.Fprintf(w, "categories\t%d\n", s.cats.Len())
			for _, name := range s.cats.Names() {
				c, _ := s.cats.Get(name)
				fmt.Fprintf(w, "  %s\t%d\n", name, c.Len())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if f.metrics {
				return s.printMetrics(cmd)
			}
			return nil
		},
	}
}
