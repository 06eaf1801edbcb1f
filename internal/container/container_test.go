package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	cfg.Registry.Directory = t.TempDir()
	return cfg
}

func TestNewContainerWiresDependencies(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetRegistry())
	assert.NotNil(t, c.GetStatementParser())
}

func TestNewContainerRejectsNilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	assert.Error(t, err)
}

func TestContainerRegistryReadsDirectory(t *testing.T) {
	cfg := testConfig(t)
	csv := "BANK,DATE_PATTERN,PAID_IN,PAID_OUT\n" +
		`HSBC_Debit_card,"[3, ""2 Jan 06""]","['CR']","['DD']"` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Registry.Directory, "patterns.csv"), []byte(csv), 0600))

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	pattern, ok := c.GetRegistry().Get("HSBC_Debit_card")
	require.True(t, ok)
	assert.Equal(t, []string{"CR"}, pattern.PaidIn)
}

type nopStrategy struct{}

func (nopStrategy) Parse(path, institution, accountType, accountKey string) ([]models.Transaction, error) {
	return nil, nil
}

func TestExternalStrategyRequiresConfigFlag(t *testing.T) {
	cfg := testConfig(t)
	cfg.External.Enabled = false

	// Wiring a strategy without enabling it in config keeps it inert.
	c, err := NewContainer(cfg, WithExternalStrategy(nopStrategy{}))
	require.NoError(t, err)
	assert.NotNil(t, c.GetStatementParser())

	cfg.External.Enabled = true
	c, err = NewContainer(cfg, WithExternalStrategy(nopStrategy{}))
	require.NoError(t, err)
	assert.NotNil(t, c.GetStatementParser())
}
