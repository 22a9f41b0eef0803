// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/procrunner"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Build and run the project's test binaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		root, err := os.Getwd()
		if err != nil {
			return err
		}

		c, err := runPipeline(ctx, root, manifest.ProfileTest, true)
		if err != nil {
			return err
		}
		if len(c.graph.Tests) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), styled(WarningStyle, color, "no test binaries discovered (no source contained CABIN_TEST)"))
			return nil
		}
		projectRoot := projectRootOf(c.manifest)

		if err := writeBuildFiles(projectRoot, c); err != nil {
			return err
		}

		res, err := procrunner.RunChecked(ctx, procrunner.Command{
			Path:   "make",
			Args:   []string{"test", "-j", fmt.Sprint(parallelCapJobs())},
			Dir:    outDirAbs(projectRoot, c),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
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
