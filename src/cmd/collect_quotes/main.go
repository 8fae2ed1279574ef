package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-quoter/src/cmd/collect_quotes/run"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/collect_quotes/main.go --config collector.yaml",
	Short: "Fetch option chains for the configured tickers and save enriched quotes to postgres",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		summary, err := run.Run(context.Background(), run.RunArgs{
			GoEnv:      goEnv,
			ConfigPath: configPath,
		})

		if summary != nil {
			run.PrintSummary(os.Stdout, summary)
		}

		if err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func main() {
	projectsDir := os.Getenv("PROJECTS_DIR")
	defaultConfig := ""
	if projectsDir != "" {
		defaultConfig = filepath.Join(projectsDir, "option-quoter", "collector.yaml")
	}

	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("config", defaultConfig, "Path to the collector yaml config.")

	if err := runCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
