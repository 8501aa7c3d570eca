// globetool inspects and checks globe entity tables without opening a
// window.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/config"
)

// tool carries the state shared by every subcommand.
type tool struct {
	flags config.Flags
}

func newRootCmd() *cobra.Command {
	t := &tool{}
	root := &cobra.Command{
		Use:   "globetool",
		Short: "Inspect and check globe entity tables",
		Long: `globetool reads the same configuration and entity table as the globe
viewer and answers questions about them: which entities exist, how far
apart they are, how a transition between them will animate and which
region covers a point on the globe.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	t.flags.Register(root.PersistentFlags())

	root.AddCommand(
		t.listCmd(),
		t.searchCmd(),
		t.progressCmd(),
		t.validateCmd(),
		t.distanceCmd(),
		t.planCmd(),
		t.locateCmd(),
	)
	return root
}

// load resolves the configuration the same way the viewer does and reads
// the entity table it names.
func (t *tool) load() (*config.Config, *catalog.Catalog, error) {
	cfg, err := config.Load(&t.flags)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(cfg.Data.Entities)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
