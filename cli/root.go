package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/services"
)

const version = "v0.3.0"

var knowledgePath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "healthbot",
	Short: "Healthcare assistant - general health information chatbot",
	Long: `healthbot answers general health questions from a fixed knowledge base.

Emergencies, diagnosis requests and medication requests are always
redirected to professional care. It provides general information only
and is not medical advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "healthbot %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&knowledgePath, "knowledge", "", "knowledge base YAML file (overrides KNOWLEDGE_BASE_PATH)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the environment configuration and applies global flags.
func loadConfig() (*config.Config, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	cfg := config.Get()
	if knowledgePath != "" {
		cfg.Knowledge.Path = knowledgePath
	}
	return cfg, nil
}

func newQueryRouter(cfg *config.Config) (*services.QueryRouter, error) {
	tieBreak, err := services.ParseTieBreak(cfg.Knowledge.TieBreak)
	if err != nil {
		return nil, err
	}

	router, err := services.InitQueryRouter(cfg.Knowledge.Path, tieBreak)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize query router: %w", err)
	}
	return router, nil
}
