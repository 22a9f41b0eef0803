// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/manifest"
)

var initEdition string

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new cabinet.toml and src/main.cc",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		name := filepath.Base(dir)
		if len(args) == 1 {
			name = args[0]
		}
		if err := manifest.ValidatePackageName(name); err != nil {
			return err
		}
		if _, err := manifest.ParseEdition(initEdition); err != nil {
			return err
		}

		manifestPath := filepath.Join(dir, manifest.FileName)
		if _, err := os.Stat(manifestPath); err == nil {
			return fmt.Errorf("%s already exists", manifestPath)
		}

		toml := fmt.Sprintf(`[package]
name = %q
edition = %q
version = "0.1.0"
`, name, initEdition)
		if err := os.WriteFile(manifestPath, []byte(toml), 0o644); err != nil {
			return err
		}

		srcDir := filepath.Join(dir, "src")
		if err := os.MkdirAll(srcDir, 0o755); err != nil {
			return err
		}
		mainPath := filepath.Join(srcDir, "main.cc")
		if _, err := os.Stat(mainPath); os.IsNotExist(err) {
			const mainSrc = `#include <iostream>

int main() {
	std::cout << "Hello, cabinet!" << std::endl;
	return 0;
}
`
			if err := os.WriteFile(mainPath, []byte(mainSrc), 0o644); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), styled(SuccessStyle, color, "Created")+" "+name)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initEdition, "edition", "17", "C++ edition (98, 03, 11, 14, 17, 20, 23, 26)")
}
