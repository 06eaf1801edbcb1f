package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/models"
)

func TestForFileDispatchesByExtension(t *testing.T) {
	assert.IsType(t, &PDFExtractor{}, ForFile("statement.pdf"))
	assert.IsType(t, &PDFExtractor{}, ForFile("STATEMENT.PDF"))
	assert.IsType(t, &TextExtractor{}, ForFile("statement.txt"))
	assert.IsType(t, &TextExtractor{}, ForFile("statement"))
}

func TestTextExtractorReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("12 Nov 23 CR SHOP 6.00"), 0o600))

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "12 Nov 23 CR SHOP 6.00", doc.Text)
	assert.Equal(t, path, doc.SourcePath)
}

func TestTextExtractorMissingFile(t *testing.T) {
	_, err := NewTextExtractor().Extract(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestMockExtractor(t *testing.T) {
	mock := &MockExtractor{Doc: models.Document{Text: "hello"}}
	doc, err := mock.Extract("/tmp/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Text)
	assert.Equal(t, "/tmp/x.pdf", doc.SourcePath)

	mock.Err = errors.New("boom")
	_, err = mock.Extract("/tmp/x.pdf")
	assert.Error(t, err)
}

func TestPDFExtractorMissingFile(t *testing.T) {
	_, err := NewPDFExtractor().Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
