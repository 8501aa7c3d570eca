package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/globe/orientation"
	"github.com/Faultbox/midgard-globe/internal/scene"
	"github.com/Faultbox/midgard-globe/pkg/angular"
)

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func lookup(cat *catalog.Catalog, id string) (catalog.Entity, error) {
	e, ok := cat.Get(id)
	if !ok {
		return catalog.Entity{}, fmt.Errorf("unknown entity %q", id)
	}
	return e, nil
}

func (t *tool) distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Great-circle distance between two entities' targets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := t.load()
			if err != nil {
				return err
			}
			from, err := lookup(cat, args[0])
			if err != nil {
				return err
			}
			to, err := lookup(cat, args[1])
			if err != nil {
				return err
			}
			d := angular.GreatCircleDistance(from.Target(), to.Target())
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f rad (%.2f°)\n", d, degrees(d))
			return nil
		},
	}
}

// framesToArrive counts the frames a transition at speed takes to reach
// progress 1.
func framesToArrive(speed float64) int {
	if speed <= 0 {
		return 0
	}
	return int(math.Ceil((1 - 1e-9) / speed))
}

func (t *tool) planCmd() *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "plan <from> <to>",
		Short: "Show how a transition between two entities will animate",
		Long: `plan prints the speed, outward zoom arc and duration of the transition
the viewer runs when to is selected while from is selected. Pass "-" as
from for a selection made while auto-rotating.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := t.load()
			if err != nil {
				return err
			}
			to, err := lookup(cat, args[1])
			if err != nil {
				return err
			}
			params := cfg.Globe().Orientation
			plan := orientation.Plan{Speed: params.MaxSpeed, MaxZoomOutFactor: 1}
			if args[0] != "-" {
				from, err := lookup(cat, args[0])
				if err != nil {
					return err
				}
				plan = orientation.PlanTransition(params, from.Target(), to.Target())
			}

			frames := framesToArrive(plan.Speed)
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "distance\t%.2f°\n", degrees(plan.Distance))
			fmt.Fprintf(w, "speed\t%.4f per frame\n", plan.Speed)
			fmt.Fprintf(w, "zoom arc\t%.3fx\n", plan.MaxZoomOutFactor)
			fmt.Fprintf(w, "zoom\t%.2f\n", to.Zoom)
			fmt.Fprintf(w, "frames\t%d\n", frames)
			if fps > 0 {
				d := time.Duration(frames) * time.Second / time.Duration(fps)
				fmt.Fprintf(w, "duration\t%v at %d fps\n", d.Round(time.Millisecond), fps)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 60, "Frame rate used to estimate the duration")
	return cmd
}

func (t *tool) locateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate <lat> <lon>",
		Short: "Find the entity whose region covers a point",
		Long: `locate prints the entity whose region covers lat, lon (degrees), or the
background mesh name when none does. Flags must come before lat; a
negative lat needs -- in front of it.`,
		Example: "  globetool locate 35.7 139.7\n  globetool locate 40.4 -3.7\n  globetool locate -- -33.9 18.4",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("latitude: %w", err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("longitude: %w", err)
			}
			if lat < -90 || lat > 90 {
				return fmt.Errorf("latitude %v out of range", lat)
			}

			cfg, cat, err := t.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			id, ok := scene.Locate(scene.Regions(cat.All()), lat, lon)
			if !ok {
				fmt.Fprintln(out, cfg.Data.Background)
				return nil
			}
			e, _ := cat.Get(id)
			fmt.Fprintf(out, "%s (%s)\n", e.ID, e.DisplayName())
			return nil
		},
	}
	// Western longitudes are negative; stop flag parsing at the first
	// coordinate.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
