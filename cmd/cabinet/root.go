// SPDX-License-Identifier: MPL-2.0

// Command cabinet wires the semver/manifest/dependency-installer/
// source-graph/build-config-emitter core into a cobra CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cabinet/cabinet/internal/config"
	"github.com/cabinet/cabinet/internal/logging"
	"github.com/cabinet/cabinet/internal/termcolor"
)

var (
	// Version is set via -ldflags at release build time.
	Version = "dev"

	verbose     bool
	cfgFile     string
	colorFlag   string
	parallelism int

	cfg    *config.Config
	logger *log.Logger
	color  bool

	rootCmd = &cobra.Command{
		Use:   "cabinet",
		Short: "A C++ build tool and package manager",
		Long: TitleStyle.Render("cabinet") + SubtitleStyle.Render(" - a C++ build tool and package manager") + `

cabinet reads a cabinet.toml manifest, resolves git/path/system
dependencies, discovers the source tree, and emits a Makefile and
compile_commands.json for a chosen build profile.

` + SubtitleStyle.Render("Examples:") + `
  cabinet init                 Create a new cabinet.toml and src/main.cc
  cabinet build                Configure and build the dev profile
  cabinet build --release      Configure and build the release profile
  cabinet test                 Build and run the test binaries
  cabinet run                  Build and run the main binary
  cabinet add fmt --git <url>  Add a git dependency to the manifest`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config directory)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "color mode: always, auto, or never (default is config's color_mode)")
	rootCmd.PersistentFlags().IntVarP(&parallelism, "jobs", "j", 0, "parallel worker cap for header extraction (0 = use config or hardware concurrency)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(addCmd)
}

// Execute runs the root command, translating an *ExitError into the
// matching process exit code.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the global config and constructs the process
// logger, deferred until cobra has parsed flags.
func initRootConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: ")+err.Error())
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	logger = logging.Stderr(verbose)

	mode := termcolor.Auto
	if envMode, ok := termcolor.EnvOverride(warnLog); ok {
		mode = envMode
	} else if colorFlag != "" {
		mode = termcolor.ParseMode(colorFlag, warnLog)
	} else if cfg.ColorMode != "" {
		mode = termcolor.ParseMode(cfg.ColorMode, warnLog)
	}
	color = termcolor.Resolve(mode, os.Stderr)

	if parallelism == 0 {
		parallelism = cfg.Parallelism
	}
}

func warnLog(msg string) {
	if logger != nil {
		logger.Warn(msg)
	} else {
		fmt.Fprintln(os.Stderr, "warning: "+msg)
	}
}
