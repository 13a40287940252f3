package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratescope/pkg/errors"
	"github.com/matzehuels/cratescope/pkg/features"
	"github.com/matzehuels/cratescope/pkg/render/nodelink"
	"github.com/matzehuels/cratescope/pkg/workspace"
)

// Graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	pkg      string
	manifest string
	format   string
	output   string
}

// newGraphCmd creates the graph command, which exports one package's
// feature-activation graph (package -> feature group -> dependency/feature)
// as Graphviz DOT or rasterized SVG.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export a package's feature-activation graph",
		Long: `Export the feature-activation graph of one workspace package: the package
node points at its feature groups, each group points at the dependency
features it switches on. Unresolved targets are drawn dashed.

Examples:
  cratescope graph -p core                      # DOT to stdout
  cratescope graph -p core --format svg         # core-features.svg
  cratescope graph -p core -o graph.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "workspace package name (exact match)")
	cmd.Flags().StringVarP(&opts.manifest, "manifest-path", "m", ".", "workspace root directory")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: dot or svg (default from config, dot)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout for dot if empty)")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := opts.format
	if format == "" {
		format = cfg.GraphFormat
	}
	if format != formatDOT && format != formatSVG {
		return errors.New(errors.ErrCodeInternal, "unknown graph format %q (available: dot, svg)", format)
	}

	ws, err := workspace.Load(ctx, opts.manifest, workspace.Options{Logger: logger.Debugf})
	if err != nil {
		return err
	}

	name := opts.pkg
	if name == "" {
		if len(ws.Packages) != 1 {
			return errors.New(errors.ErrCodePackageNotFound,
				"workspace has %d packages, specify one with --package", len(ws.Packages))
		}
		name = ws.Packages[0].Name
	}
	pkg, ok := ws.Package(name)
	if !ok {
		return errors.New(errors.ErrCodePackageNotFound, "no workspace package named %q", name)
	}

	g, err := features.BuildGraph(pkg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "building feature graph for %q", name)
	}
	logger.Debugf("feature graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	dot := nodelink.ToDOT(g)

	switch format {
	case formatDOT:
		if opts.output == "" {
			fmt.Fprint(cmd.OutOrStdout(), dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.output, err)
		}
		printFile(opts.output)
		return nil

	case formatSVG:
		svg, err := nodelink.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("rendering SVG: %w", err)
		}
		out := opts.output
		if out == "" {
			out = name + "-features.svg"
		}
		if err := os.WriteFile(out, svg, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}
