package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-quoter/src/dbutils"
	"github.com/jiaming2012/option-quoter/src/eventmodels"
	"github.com/jiaming2012/option-quoter/src/storage"
	"github.com/jiaming2012/option-quoter/src/utils"
)

type RunArgs struct {
	GoEnv  string
	Since  time.Time
	OutDir string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_quotes/main.go --since 2024-06-01",
	Short: "Export stored option quotes to a csv file",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		sinceArg, err := cmd.Flags().GetString("since")
		if err != nil {
			log.Fatalf("error getting since: %v", err)
		}

		since, err := time.Parse("2006-01-02", sinceArg)
		if err != nil {
			log.Fatalf("error parsing since date: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outdir")
		if err != nil {
			log.Fatalf("error getting outdir: %v", err)
		}

		outPath, err := Run(RunArgs{GoEnv: goEnv, Since: since, OutDir: outDir})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("Exported quotes to %s\n", outPath)
	},
}

func Run(args RunArgs) (string, error) {
	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	db, err := dbutils.InitPostgres(os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
	if err != nil {
		return "", fmt.Errorf("Run: failed to init postgres: %w", err)
	}

	store := storage.NewQuoteStore(db)

	quotes, err := store.QuotesSince(args.Since)
	if err != nil {
		return "", fmt.Errorf("Run: failed to fetch quotes: %w", err)
	}

	log.Infof("exporting %d quotes captured since %s", len(quotes), args.Since.Format("2006-01-02"))

	dtos := make([]*eventmodels.CsvOptionQuoteDTO, 0, len(quotes))
	for _, quote := range quotes {
		dtos = append(dtos, eventmodels.NewCsvOptionQuoteDTO(quote))
	}

	filename := fmt.Sprintf("option-quotes-since-%s.csv", args.Since.Format("20060102"))
	outPath := filepath.Join(args.OutDir, filename)

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("Run: failed to create %s: %w", outPath, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&dtos, file); err != nil {
		return "", fmt.Errorf("Run: failed to write csv: %w", err)
	}

	return outPath, nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("since", time.Now().AddDate(0, 0, -1).Format("2006-01-02"), "Export quotes captured on or after this date.")
	runCmd.PersistentFlags().String("outdir", ".", "Directory to write the csv file to.")

	if err := runCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
