package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/expense-atlas/pkg/render/chart"
	"github.com/fin-tools/expense-atlas/pkg/render/pdf"
	"github.com/fin-tools/expense-atlas/pkg/server"
	"github.com/fin-tools/expense-atlas/pkg/services/config"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
	"github.com/fin-tools/expense-atlas/pkg/store/artifact"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the expense analysis web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	store := artifact.NewFS(cfg.ArtifactRoot)
	builder := report.NewBuilder(chart.NewRenderer(), pdf.NewExporter(), store)

	sess := session.New(session.Options{
		Taxonomy:   cfg.DomainTaxonomy(),
		Fallback:   cfg.FallbackCategory,
		Budgets:    cfg.DomainBudgets(),
		Normalizer: cfg.IngestSettings(),
		Anomaly:    cfg.AnomalySettings(),
		Budget:     cfg.BudgetSettings(),
		Builder:    builder,
	})

	addr := cfg.ListenAddr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Session:   sess,
			Artifacts: store,
			Logger:    logger,
		},
	})

	return api.Start()
}
