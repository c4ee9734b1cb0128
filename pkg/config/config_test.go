package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MH_ENVIRONMENT", "01")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.13", cfg.Fiscal.VATRate.String())
	assert.Equal(t, "0.01", cfg.Fiscal.RetentionTolerance.String())
	assert.Equal(t, 90, cfg.Fiscal.DeductibilityDays)
	assert.Equal(t, 3, cfg.Fiscal.CandidateLookbackMo)
	assert.Equal(t, 30*time.Second, cfg.MH.SubmitTimeout)
	assert.Equal(t, config.MHTestURL, cfg.MH.ResolvedBaseURL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MH_ENVIRONMENT", "00")
	t.Setenv("FISCAL_RETENTION_TOLERANCE", "0.05")
	t.Setenv("MH_SUBMIT_TIMEOUT_SECONDS", "12")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.05", cfg.Fiscal.RetentionTolerance.String())
	assert.Equal(t, 12*time.Second, cfg.MH.SubmitTimeout)
	assert.Equal(t, config.MHProductionURL, cfg.MH.ResolvedBaseURL())
}

func TestLoad_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("MH_ENVIRONMENT", "02")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadRate(t *testing.T) {
	t.Setenv("MH_ENVIRONMENT", "01")
	t.Setenv("FISCAL_VAT_RATE", "trece")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestMHConfig_ExplicitBaseURL(t *testing.T) {
	c := config.MHConfig{Environment: "00", BaseURL: "http://localhost:9090/"}
	assert.Equal(t, "http://localhost:9090", c.ResolvedBaseURL())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "dte", Password: "p@ss:1", DBName: "facturacion", SSLMode: "disable"}
	assert.Equal(t, "postgres://dte:p%40ss%3A1@db:5432/facturacion?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://otro@host/db"
	assert.Equal(t, "postgresql://otro@host/db", c.ConnectionString())
}
