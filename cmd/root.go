// Package cmd wires the command line entry point: flags, configuration, and
// the choice between an interactive session and script execution.
package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"minsh/core/config"
	"minsh/core/env"
	"minsh/core/history"
	"minsh/core/interp"
	"minsh/core/shell"
)

var (
	cfgPath string
	debug   bool
)

// rootCmd starts an interactive session, or runs the script given as the
// first argument.
var rootCmd = &cobra.Command{
	Use:   "minsh [script]",
	Short: "A small interactive shell",
	Long: `minsh is a small interactive shell with pipelines, redirects,
control structures, background jobs, and command history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		if !debug {
			log.SetOutput(io.Discard)
		}

		fs := afero.NewOsFs()
		e := env.New(os.Environ())

		dir, err := os.Getwd()
		if err != nil {
			dir = "/"
		}

		cfg, err := loadConfig(fs, e)
		if err != nil {
			return err
		}

		it := interp.New(e, fs, dir)
		if cfg.LoopLimit > 0 {
			it.LoopLimit = cfg.LoopLimit
		}
		if cfg.HistoryLimit > 0 {
			it.Hist = history.New(cfg.HistoryLimit)
		}
		if debug {
			it.Debug = log.New(os.Stderr, "minsh: ", log.LstdFlags)
		}

		session := shell.New(it, cfg)
		if len(args) == 1 {
			return session.RunScript(args[0])
		}
		return session.Interactive()
	},
}

func loadConfig(fs afero.Fs, e *env.Env) (*config.Configuration, error) {
	path := cfgPath
	if path == "" {
		home := e.Get("HOME")
		if home == "" {
			return config.Default(), nil
		}
		path = filepath.Join(home, config.ConfigurationName)
	}
	return config.Load(fs, path)
}

// Execute runs the root command. Called once by main.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode with detailed logging")
}
