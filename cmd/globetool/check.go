package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-globe/internal/scene"
)

func (t *tool) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how many entities are completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := t.load()
			if err != nil {
				return err
			}
			p := cat.Progress()
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d completed (%d%%)\n", p.Completed, p.Total, p.Percent)
			return nil
		},
	}
}

func (t *tool) validateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and entity table",
		Long: `validate loads the configuration and the entity table, reporting any
error, then warns about entities without a region (they can be selected
from the keyboard but never by tapping) and regions that overlap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := t.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			warnings := 0
			for _, e := range cat.All() {
				if e.Region == nil {
					fmt.Fprintf(out, "warning: %s has no region and cannot be tapped\n", e.ID)
					warnings++
				}
				if e.ID == cfg.Data.Background {
					fmt.Fprintf(out, "warning: %s shares its name with the background mesh\n", e.ID)
					warnings++
				}
			}
			for _, pair := range scene.Overlaps(scene.Regions(cat.All())) {
				fmt.Fprintf(out, "warning: regions %s and %s overlap\n", pair[0], pair[1])
				warnings++
			}

			fmt.Fprintf(out, "%s: %d entities, %d warnings\n", cfg.Data.Entities, cat.Len(), warnings)
			if strict && warnings > 0 {
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	return cmd
}
