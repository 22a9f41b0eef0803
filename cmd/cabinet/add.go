// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/semver"
)

var (
	addGit    string
	addRev    string
	addTag    string
	addBranch string
	addPath   string
	addSystem bool
	addVer    string
	addDev    bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a dependency to cabinet.toml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := manifest.ValidateDependencyName(name); err != nil {
			return err
		}

		table, err := dependencyTOML(name)
		if err != nil {
			return err
		}

		manifestPath, err := manifest.Find(".")
		if err != nil {
			return err
		}
		f, err := os.OpenFile(manifestPath, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.WriteString("\n" + table); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), styled(SuccessStyle, color, "Added")+" "+name)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addGit, "git", "", "git repository URL")
	addCmd.Flags().StringVar(&addRev, "rev", "", "git revision to check out")
	addCmd.Flags().StringVar(&addTag, "tag", "", "git tag to check out")
	addCmd.Flags().StringVar(&addBranch, "branch", "", "git branch to check out")
	addCmd.Flags().StringVar(&addPath, "path", "", "local path dependency")
	addCmd.Flags().BoolVar(&addSystem, "system", false, "system (pkg-config) dependency")
	addCmd.Flags().StringVar(&addVer, "version", "", "version requirement for a system dependency")
	addCmd.Flags().BoolVar(&addDev, "dev", false, "add under [dev-dependencies] instead of [dependencies]")
}

// dependencyTOML renders the [dependencies.<name>] (or
// [dev-dependencies.<name>]) table for the shape selected by the add flags.
func dependencyTOML(name string) (string, error) {
	table := "dependencies"
	if addDev {
		table = "dev-dependencies"
	}

	switch {
	case addGit != "":
		s := fmt.Sprintf("[%s.%s]\ngit = %q\n", table, name, addGit)
		switch {
		case addRev != "":
			s += fmt.Sprintf("rev = %q\n", addRev)
		case addTag != "":
			s += fmt.Sprintf("tag = %q\n", addTag)
		case addBranch != "":
			s += fmt.Sprintf("branch = %q\n", addBranch)
		}
		return s, nil

	case addPath != "":
		return fmt.Sprintf("[%s.%s]\npath = %q\n", table, name, addPath), nil

	case addSystem:
		if addVer == "" {
			return "", fmt.Errorf("--system requires --version")
		}
		if _, err := semver.ParseReq(addVer); err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s.%s]\nsystem = true\nversion = %q\n", table, name, addVer), nil

	default:
		return "", fmt.Errorf("specify exactly one of --git, --path, or --system")
	}
}
