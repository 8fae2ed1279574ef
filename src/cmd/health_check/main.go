package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-quoter/src/dbutils"
	"github.com/jiaming2012/option-quoter/src/storage"
	"github.com/jiaming2012/option-quoter/src/utils"
)

// Reports per-ticker quote counts over the lookback window and the latest
// risk-free rate observation. Exits nonzero when the store has no recent
// data, so it can back a cron alert.
var runCmd = &cobra.Command{
	Use:   "go run src/cmd/health_check/main.go --hours 24",
	Short: "Check that recent option quotes and a risk-free rate are present in the store",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		hours, err := cmd.Flags().GetInt("hours")
		if err != nil {
			log.Fatalf("error getting hours: %v", err)
		}

		if err := Run(goEnv, hours); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(goEnv string, hours int) error {
	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, goEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	db, err := dbutils.InitPostgres(os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
	if err != nil {
		return fmt.Errorf("Run: failed to init postgres: %w", err)
	}

	store := storage.NewQuoteStore(db)
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	counts, err := store.RecentQuoteCounts(since)
	if err != nil {
		return fmt.Errorf("Run: failed to fetch quote counts: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Ticker", "Quotes"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	var total int64
	for _, count := range counts {
		table.Append([]string{count.Ticker, fmt.Sprintf("%d", count.Count)})
		total += count.Count
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total)})
	table.Render()

	rate, err := store.LatestRiskFreeRate()
	if err != nil {
		log.Warnf("Run: no risk-free rate observation found: %v", err)
	} else {
		fmt.Printf("latest risk-free rate: %.2f%% (source: %s, %s)\n", rate.Rate*100, rate.Source, rate.Timestamp.Format(time.RFC3339))
	}

	if total == 0 {
		return fmt.Errorf("Run: no quotes captured in the last %d hours", hours)
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().Int("hours", 24, "Lookback window for the quote count check.")

	if err := runCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
