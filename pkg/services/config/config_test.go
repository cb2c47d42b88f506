package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Other", cfg.FallbackCategory)
	assert.Equal(t, "Uncategorized", cfg.DefaultCategory)
	assert.Equal(t, float64(500), cfg.Budgets["Food"])
	assert.Equal(t, float64(1000), cfg.Budgets["Travel"])
	assert.Equal(t, 0.1, cfg.Anomaly.Contamination)
	assert.Equal(t, int64(42), cfg.Anomaly.Seed)
	assert.Equal(t, "public/reports", cfg.ArtifactRoot)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
budgets:
  Food: 750
near_threshold: 0.8
strict: true
listen_addr: ":9090"
taxonomy:
  - name: Food
    keywords: [coffee, lunch]
  - name: Pets
    keywords: [vet, kibble]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(750), cfg.Budgets["Food"])
	assert.NotContains(t, cfg.Budgets, "Travel")
	assert.Equal(t, 0.8, cfg.NearThreshold)
	assert.True(t, cfg.Strict)
	assert.Equal(t, ":9090", cfg.ListenAddr)

	tax := cfg.DomainTaxonomy()
	require.Len(t, tax, 2)
	assert.Equal(t, "Pets", tax[1].Name)
	assert.Equal(t, []string{"vet", "kibble"}, tax[1].Keywords)

	// Omitted fields keep their defaults.
	assert.Equal(t, "Other", cfg.FallbackCategory)
	assert.Equal(t, "public/reports", cfg.ArtifactRoot)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_SettingsConversion(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.DomainBudgets()["Utilities"].Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Uncategorized", cfg.IngestSettings().DefaultCategory)
	assert.Equal(t, 128, cfg.AnomalySettings().Trees)
	assert.Equal(t, 0.9, cfg.BudgetSettings().NearThresholdFraction)

	tax := cfg.DomainTaxonomy()
	require.NotEmpty(t, tax)
	assert.Equal(t, "Food", tax[0].Name)
}
