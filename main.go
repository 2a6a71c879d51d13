// ashvale is a top-down action RPG.
//
// Usage:
//
//	ashvale play             - Open a window and play
//	ashvale sim --ticks N    - Run the simulation headless with an autopilot
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.ashvale/config.yaml)
//	--seed <value>      - RNG seed
//	--map <name>        - Map under maps/
//	--content <dir>     - Directory whose files override embedded content
//	--log-level <lvl>   - debug, info, warn or error
//	--debug             - Draw the pathfinding overlay
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/ashvale/config"
)

var (
	flagConfig   string
	flagSeed     int64
	flagMap      string
	flagContent  string
	flagLogLevel string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ashvale",
	Short: "Ashvale - a top-down action RPG",
	Long: `Ashvale is a top-down action RPG. The world, its creatures and their
abilities are defined by YAML tables and tengo scripts that can be
overridden from a content directory and reloaded while playing.

Examples:
  ashvale play
  ashvale play --map arena --content ./content --watch
  ashvale sim --ticks 3600 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Map name (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Content override directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug overlay")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Sim.Seed = flagSeed
	}
	if flagMap != "" {
		cfg.Sim.Map = flagMap
	}
	if flagContent != "" {
		cfg.Content.Dir = flagContent
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*log.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ashvale",
		Level:           lvl,
	}), nil
}
