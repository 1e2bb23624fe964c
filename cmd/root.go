package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "Quiz question generation service",
	Long:  "quizgen turns a free-text topic into a batch of quiz questions using a generative model.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite model-call log (overrides QUIZGEN_EVENTS_DB)")
	rootCmd.Flags().String("port", "", "Port to listen on (overrides QUIZGEN_PORT)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the model-call log path from --db (highest
// priority) or fallback. An empty result means the log is disabled.
func resolveDBPath(cmd *cobra.Command, fallback string) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = fallback
	}
	if p == "" {
		return "", nil
	}
	return p, store.EnsureDir(p)
}

// eventsDBFromEnv is the fallback for commands that do not load the full
// server config.
func eventsDBFromEnv() string {
	return os.Getenv("QUIZGEN_EVENTS_DB")
}
