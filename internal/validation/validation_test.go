package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "statement.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0600))
	doc := filepath.Join(dir, "statement.docx")
	require.NoError(t, os.WriteFile(doc, []byte("x"), 0600))

	assert.NoError(t, ValidateInputFile(pdf))
	assert.Error(t, ValidateInputFile(""))
	assert.Error(t, ValidateInputFile(filepath.Join(dir, "missing.pdf")))
	assert.Error(t, ValidateInputFile(dir))
	assert.Error(t, ValidateInputFile(doc))
}

func TestValidateInputDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.NoError(t, ValidateInputDirectory(dir))
	assert.Error(t, ValidateInputDirectory(""))
	assert.Error(t, ValidateInputDirectory(filepath.Join(dir, "missing")))
	assert.Error(t, ValidateInputDirectory(file))
}

func TestValidateOutputFile(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, ValidateOutputFile(filepath.Join(dir, "out.csv")))
	// Output file may not exist yet.
	assert.NoError(t, ValidateOutputFile(filepath.Join(dir, "nested", "out.csv")))
	assert.Error(t, ValidateOutputFile(""))
	assert.Error(t, ValidateOutputFile(dir))
	assert.Error(t, ValidateOutputFile(filepath.Join(dir, "out.txt")))
}
