package run

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/option-quoter/src/collector"
	"github.com/jiaming2012/option-quoter/src/dbutils"
	"github.com/jiaming2012/option-quoter/src/eventmodels"
	"github.com/jiaming2012/option-quoter/src/eventservices"
	"github.com/jiaming2012/option-quoter/src/storage"
	"github.com/jiaming2012/option-quoter/src/utils"
)

type RunArgs struct {
	GoEnv      string
	ConfigPath string
}

func requireEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		log.Fatalf("missing %s environment variable", name)
	}

	return value
}

func loadConfig(path string) (*eventmodels.CollectorConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadConfig: failed to read %s: %w", path, err)
	}

	var config eventmodels.CollectorConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("loadConfig: failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("loadConfig: %w", err)
	}

	return &config, nil
}

func Run(ctx context.Context, args RunArgs) (*collector.RunSummary, error) {
	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	config, err := loadConfig(args.ConfigPath)
	if err != nil {
		return nil, err
	}

	dbHost := requireEnv("DB_HOST")
	dbPort := requireEnv("DB_PORT")
	dbUser := requireEnv("DB_USER")
	dbPassword := requireEnv("DB_PASSWORD")
	dbName := requireEnv("DB_NAME")

	expirationsURL := requireEnv("OPTIONS_EXPIRATIONS_URL")
	chainURL := requireEnv("OPTIONS_CHAIN_URL")
	quotesURL := requireEnv("STOCK_QUOTES_URL")
	bearerToken := requireEnv("MARKET_DATA_BEARER_TOKEN")
	treasuryURL := requireEnv("TREASURY_RATES_URL")

	yieldSymbol := os.Getenv("YIELD_SYMBOL")
	if yieldSymbol == "" {
		yieldSymbol = "TNX"
	}

	db, err := dbutils.InitPostgres(dbHost, dbPort, dbUser, dbPassword, dbName)
	if err != nil {
		return nil, fmt.Errorf("Run: failed to init postgres: %w", err)
	}

	provider := eventservices.NewTradierClient(expirationsURL, chainURL, quotesURL, bearerToken)

	rateResolver := eventservices.NewRiskFreeRateResolver(
		eventservices.NewTradierYieldClient(quotesURL, bearerToken, yieldSymbol),
		eventservices.NewTreasuryFiscalDataClient(treasuryURL),
		config.FallbackRiskFreeRate,
	)

	store := storage.NewQuoteStore(db)

	c := collector.NewCollector(provider, rateResolver, store, config)

	return c.Run(ctx, config.Symbols())
}

func PrintSummary(w io.Writer, summary *collector.RunSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ticker", "Quotes Saved", "Mean IV"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, result := range summary.Results {
		table.Append([]string{
			result.Symbol.String(),
			fmt.Sprintf("%d", result.QuotesSaved),
			fmt.Sprintf("%.4f", result.MeanIV),
		})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.TotalQuotesSaved), ""})
	table.Render()

	fmt.Fprintf(w, "risk-free rate: %.2f%% (source: %s)\n", summary.RiskFreeRate.Rate*100, summary.RiskFreeRate.Source)
}
