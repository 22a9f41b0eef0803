// SPDX-License-Identifier: MPL-2.0

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/procrunner"
)

var runRelease bool

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Build and run the project's main binary",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := runBuild(cmd, profileFromFlags(runRelease, false), false)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		projectRoot := projectRootOf(c.manifest)
		binary := filepath.Join(outDirAbs(projectRoot, c), c.manifest.Package.Name)

		res, err := procrunner.RunChecked(ctx, procrunner.Command{
			Path:   binary,
			Args:   args,
			Dir:    projectRoot,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Stdin:  cmd.InOrStdin(),
		})
		if err != nil {
			if res != nil {
				return &ExitError{Code: res.Status.Code, Err: err}
			}
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runRelease, "release", false, "run the release profile instead of dev")
}
