// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/depinstall"
	"github.com/cabinet/cabinet/internal/manifest"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the project's build output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := os.Getwd()
		if err != nil {
			return err
		}
		m, err := manifest.Load(root)
		if err != nil {
			return err
		}
		outRoot := filepath.Join(projectRootOf(m), depinstall.OutDirName)
		if err := os.RemoveAll(outRoot); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styled(SuccessStyle, color, "Cleaned")+" "+outRoot)
		return nil
	},
}
