package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerRoundTrip(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	mock := &MockLogger{}
	SetLogger(mock)
	assert.Same(t, Logger(mock), GetLogger())

	// nil is ignored
	SetLogger(nil)
	assert.Same(t, Logger(mock), GetLogger())
}

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("loaded", Field{Key: FieldCount, Value: 3})
	mock.WithError(errors.New("boom")).Error("failed")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.True(t, mock.HasMessage("failed"))
	assert.Error(t, mock.Entries[1].Error)
}

func TestLogrusAdapterLevels(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	// Chained loggers keep working after field attachment.
	chained := logger.WithField(FieldInstitution, "HSBC").WithFields(Field{Key: FieldYear, Value: 2023})
	chained.Debug("parsing")
	chained.WithError(errors.New("bad row")).Warn("skipping")
}

func TestLogrusAdapterInvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("not-a-level", "text")
	require.NotNil(t, logger)
	logger.Info("still works")
}
