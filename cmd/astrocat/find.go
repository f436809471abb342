package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/astrocat/catalog"
	"github.com/hupe1980/astrocat/core"
	"github.com/hupe1980/astrocat/usercat"
)

func newFindCommand(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id|name> [files...]",
		Short: "Load catalog files and show one entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.load(cmd.Context(), args[1:])
			if err != nil {
				return err
			}
			defer func() { _ = s.cat.Close() }()

			var e *catalog.Entry
			if n, err := strconv.ParseUint(args[0], 10, 32); err == nil {
				e = s.cat.Lookup(core.ID(n))
			} else {
				e = s.cat.LookupName(args[0])
			}
			if e == nil || !e.IsInMainIndex() {
				return fmt.Errorf("%s: not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "index:  %s\n", e.Index())
			fmt.Fprintf(out, "name:   %s\n", e.Name)
			fmt.Fprintf(out, "type:   %s\n", e.Type)
			fmt.Fprintf(out, "source: %s\n", e.Source)

			var names []string
			for _, c := range e.Categories() {
				if uc, ok := c.(*usercat.Category); ok {
					names = append(names, uc.Name())
				}
			}
			fmt.Fprintf(out, "categories: %s\n", strings.Join(names, ", "))

			keys := make([]string, 0, len(e.Fields))
			for k := range e.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "  %s: %v\n", k, e.Fields[k])
			}
			return nil
		},
	}
}
