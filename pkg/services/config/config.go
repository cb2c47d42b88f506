package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/anomaly"
	"github.com/fin-tools/expense-atlas/pkg/services/budget"
	"github.com/fin-tools/expense-atlas/pkg/services/categorize"
	"github.com/fin-tools/expense-atlas/pkg/services/ingest"
)

type TaxonomyEntry struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

type AnomalyConfig struct {
	Contamination float64 `mapstructure:"contamination"`
	MinRows       int     `mapstructure:"min_rows"`
	Trees         int     `mapstructure:"trees"`
	SampleSize    int     `mapstructure:"sample_size"`
	Seed          int64   `mapstructure:"seed"`
}

type Config struct {
	Taxonomy         []TaxonomyEntry    `mapstructure:"taxonomy"`
	FallbackCategory string             `mapstructure:"fallback_category"`
	DefaultCategory  string             `mapstructure:"default_category"`
	Strict           bool               `mapstructure:"strict"`
	Budgets          map[string]float64 `mapstructure:"budgets"`
	NearThreshold    float64            `mapstructure:"near_threshold"`
	Anomaly          AnomalyConfig      `mapstructure:"anomaly"`
	ArtifactRoot     string             `mapstructure:"artifact_root"`
	ListenAddr       string             `mapstructure:"listen_addr"`
}

func Default() Config {
	a := anomaly.DefaultSettings()
	return Config{
		FallbackCategory: categorize.DefaultFallback,
		DefaultCategory:  ingest.DefaultSettings().DefaultCategory,
		Budgets: map[string]float64{
			"Food":          500,
			"Travel":        1000,
			"Utilities":     300,
			"Entertainment": 200,
		},
		NearThreshold: budget.DefaultSettings().NearThresholdFraction,
		Anomaly: AnomalyConfig{
			Contamination: a.Contamination,
			MinRows:       a.MinRows,
			Trees:         a.Trees,
			SampleSize:    a.SampleSize,
			Seed:          a.Seed,
		},
		ArtifactRoot: "public/reports",
		ListenAddr:   ":8080",
	}
}

// Load reads a config file and fills any omitted fields from Default.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	def := Default()
	if cfg.FallbackCategory == "" {
		cfg.FallbackCategory = def.FallbackCategory
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = def.DefaultCategory
	}
	if cfg.Budgets == nil {
		cfg.Budgets = def.Budgets
	}
	if cfg.NearThreshold <= 0 {
		cfg.NearThreshold = def.NearThreshold
	}
	if cfg.ArtifactRoot == "" {
		cfg.ArtifactRoot = def.ArtifactRoot
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	return &cfg, nil
}

// DomainTaxonomy converts the configured categories, falling back to the
// built-in keyword taxonomy when none are configured.
func (c Config) DomainTaxonomy() domain.Taxonomy {
	if len(c.Taxonomy) == 0 {
		return categorize.DefaultTaxonomy()
	}
	tax := make(domain.Taxonomy, 0, len(c.Taxonomy))
	for _, e := range c.Taxonomy {
		tax = append(tax, domain.Category{Name: e.Name, Keywords: e.Keywords})
	}
	return tax
}

func (c Config) DomainBudgets() domain.Budgets {
	budgets := make(domain.Budgets, len(c.Budgets))
	for name, limit := range c.Budgets {
		budgets[name] = decimal.NewFromFloat(limit)
	}
	return budgets
}

func (c Config) IngestSettings() ingest.Settings {
	return ingest.Settings{Strict: c.Strict, DefaultCategory: c.DefaultCategory}
}

func (c Config) AnomalySettings() anomaly.Settings {
	return anomaly.Settings{
		Contamination: c.Anomaly.Contamination,
		MinRows:       c.Anomaly.MinRows,
		Trees:         c.Anomaly.Trees,
		SampleSize:    c.Anomaly.SampleSize,
		Seed:          c.Anomaly.Seed,
	}
}

func (c Config) BudgetSettings() budget.Settings {
	return budget.Settings{NearThresholdFraction: c.NearThreshold}
}
