package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/magic-orb/internal/config"
	"github.com/danielpatrickdp/magic-orb/internal/logging"
)

var (
	// Global flags
	cfgPath   string
	verbose   bool
	jsonOut   bool
	sessionID string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orb",
	Short: "orb - deterministic Magic Super 8 Ball readings",
	Long: `orb answers questions with one reading from a fixed catalog.

The same trimmed question and tone filter always produce the same reading.
Each session keeps its twelve most recent readings, newest first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON instead of text")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "default", "session id")

	rootCmd.AddCommand(serveCmd, askCmd, stateCmd, catalogCmd, replCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
