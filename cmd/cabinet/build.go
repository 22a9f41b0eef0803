// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/procrunner"
)

var buildRelease bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(cmd, profileFromFlags(buildRelease, false), false)
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildRelease, "release", false, "build the release profile instead of dev")
}

// runBuild configures profile, writes the Makefile/compile_commands.json,
// and invokes make, returning the configured pipeline so callers like `run`
// can locate the resulting binary without reconfiguring.
func runBuild(cmd *cobra.Command, profile manifest.BuildProfile, includeDevDeps bool) (*configured, error) {
	ctx := cmd.Context()
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	c, err := runPipeline(ctx, root, profile, includeDevDeps)
	if err != nil {
		return nil, err
	}
	projectRoot := projectRootOf(c.manifest)

	if err := writeBuildFiles(projectRoot, c); err != nil {
		return nil, err
	}

	fmt.Fprintln(cmd.OutOrStdout(), statusLine(color, "Configuring", c.manifest.Package.Name+" ("+profile.String()+")"))

	res, err := procrunner.RunChecked(ctx, procrunner.Command{
		Path:   "make",
		Args:   []string{"-j", fmt.Sprint(parallelCapJobs())},
		Dir:    outDirAbs(projectRoot, c),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		if res != nil {
			return nil, &ExitError{Code: res.Status.Code, Err: err}
		}
		return nil, err
	}
	return c, nil
}

func parallelCapJobs() int {
	return parallelCap().N()
}
