package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratescope/pkg/errors"
	"github.com/matzehuels/cratescope/pkg/features"
	"github.com/matzehuels/cratescope/pkg/workspace"
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	pkg        string
	dependency string
	manifest   string
	plain      bool
}

// newBrowseCmd creates the browse command: an interactive package and
// dependency picker that ends in the same feature report the list command
// produces. Flags pre-answer the corresponding prompt; a workspace with a
// single package skips the package prompt entirely.
func newBrowseCmd() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse dependency features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "workspace package name (skips the package prompt)")
	cmd.Flags().StringVarP(&opts.dependency, "dependency", "d", "", "dependency name (skips the dependency prompt)")
	cmd.Flags().StringVarP(&opts.manifest, "manifest-path", "m", ".", "workspace root directory")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "tab-separated output without styling")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts *browseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	ws, err := workspace.Load(ctx, opts.manifest, workspace.Options{Logger: logger.Debugf})
	if err != nil {
		return err
	}
	views := features.ResolveAll(ws.Packages)

	view, err := choosePackage(views, opts.pkg)
	if err != nil || view == nil {
		return err
	}

	depName, err := chooseDependency(view, opts.dependency)
	if err != nil || depName == "" {
		return err
	}

	rows := features.Select(views, features.Filter{Package: view.Package, Dependency: depName})
	renderRows(cmd.OutOrStdout(), rows, opts.plain)
	return nil
}

// choosePackage resolves the package to inspect: the --package flag when
// given, the only member of a single-package workspace, or an interactive
// pick. A nil view with nil error means the user aborted the picker.
func choosePackage(views []*features.View, name string) (*features.View, error) {
	if name != "" {
		for _, v := range views {
			if v.Package == name {
				return v, nil
			}
		}
		return nil, errors.New(errors.ErrCodePackageNotFound, "no workspace package named %q", name)
	}
	if len(views) == 1 {
		return views[0], nil
	}

	items := make([]pickItem, len(views))
	for i, v := range views {
		items[i] = pickItem{name: v.Package, detail: v.Version}
	}
	idx, err := pick("Select workspace package", items)
	if err != nil || idx < 0 {
		return nil, err
	}
	return views[idx], nil
}

// chooseDependency resolves the dependency to inspect, mirroring
// choosePackage. An empty name with nil error means the user aborted.
func chooseDependency(view *features.View, name string) (string, error) {
	if name != "" {
		if _, ok := view.Dep(name); !ok {
			return "", errors.New(errors.ErrCodeDependencyNotFound,
				"package %q declares no dependency named %q", view.Package, name)
		}
		return name, nil
	}
	if len(view.Deps) == 0 {
		return "", errors.New(errors.ErrCodeDependencyNotFound,
			"package %q declares no dependencies", view.Package)
	}
	if len(view.Deps) == 1 {
		return view.Deps[0].Name, nil
	}

	items := make([]pickItem, len(view.Deps))
	for i, d := range view.Deps {
		items[i] = pickItem{name: d.Name, detail: d.Constraint}
	}
	idx, err := pick("Select dependency", items)
	if err != nil || idx < 0 {
		return "", err
	}
	return view.Deps[idx].Name, nil
}
