package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratescope/pkg/features"
	"github.com/matzehuels/cratescope/pkg/workspace"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	pkg        string // exact package name filter
	dependency string // exact dependency name filter
	all        bool   // emit every package/dependency pair, overriding filters
	manifest   string // workspace root directory
	plain      bool   // tab-separated output without styling
}

// newListCmd creates the list command.
//
// Filters match exact names (case-sensitive) and combine with AND. A filter
// that matches nothing is a normal empty result with exit code 0; only
// manifest or workspace errors exit non-zero.
func newListCmd() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enabled features on workspace dependencies",
		Long: `List, per workspace package, the declared dependencies and the features
enabled on them: explicitly declared features, features switched on by the
package's own feature groups, and the "default" marker when default features
are active.

Examples:
  cratescope list                         # every package, every dependency
  cratescope list -p core                 # one package
  cratescope list -p core -d serde        # one dependency of one package
  cratescope list --all                   # ignore filters, emit everything`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "workspace package name (exact match)")
	cmd.Flags().StringVarP(&opts.dependency, "dependency", "d", "", "dependency name (exact match)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "emit every package/dependency pair, overriding filters")
	cmd.Flags().StringVarP(&opts.manifest, "manifest-path", "m", ".", "workspace root directory")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "tab-separated output without styling")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := opts.manifest
	if !cmd.Flags().Changed("manifest-path") {
		root = cfg.ManifestPath
	}
	plain := opts.plain || cfg.Plain

	prog := newProgress(logger)
	ws, err := workspace.Load(ctx, root, workspace.Options{Logger: logger.Debugf})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d package(s)", len(ws.Packages)))

	views := features.ResolveAll(ws.Packages)
	rows := features.Select(views, features.Filter{
		Package:    opts.pkg,
		Dependency: opts.dependency,
		All:        opts.all,
	})
	logger.Debugf("selected %d row(s)", len(rows))

	renderRows(cmd.OutOrStdout(), rows, plain)
	return nil
}
