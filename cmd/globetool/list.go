package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/Faultbox/midgard-globe/internal/catalog"
)

func (t *tool) listCmd() *cobra.Command {
	var sorted bool
	var lang string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entities in the table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := t.load()
			if err != nil {
				return err
			}
			entities := cat.All()
			if sorted {
				tag := cfg.Language()
				if lang != "" {
					if tag, err = language.Parse(lang); err != nil {
						return fmt.Errorf("--lang: %w", err)
					}
				}
				entities = cat.Sorted(tag)
			}
			return printEntities(cmd, entities)
		},
	}
	cmd.Flags().BoolVarP(&sorted, "sorted", "s", false, "Sort by display name")
	cmd.Flags().StringVar(&lang, "lang", "", "Collation language for --sorted (default from config)")
	return cmd
}

func (t *tool) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <term>...",
		Aliases: []string{"find"},
		Short:   "Find entities by name or id, ignoring case",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := t.load()
			if err != nil {
				return err
			}
			found := cat.Search(strings.Join(args, " "))
			if len(found) == 0 {
				return fmt.Errorf("no entity matches %q", strings.Join(args, " "))
			}
			return printEntities(cmd, found)
		},
	}
}

func printEntities(cmd *cobra.Command, entities []catalog.Entity) error {
	w := table(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tZOOM\tREGION\tDONE")
	for _, e := range entities {
		region := "-"
		if r := e.Region; r != nil {
			region = fmt.Sprintf("%.2f,%.2f r%.2f", r.Lat, r.Lon, r.Radius)
		}
		done := ""
		if e.Completed {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", e.ID, e.DisplayName(), e.Zoom, region, done)
	}
	return w.Flush()
}
