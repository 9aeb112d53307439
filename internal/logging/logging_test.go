package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"sample_rate": 48000}).Info("prepared")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "prepared", entry["msg"])
	assert.InDelta(t, 48000.0, entry["sample_rate"], 0)
	assert.Equal(t, "info", entry["level"])
}

func TestNewTextDefaults(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.WithField("channels", 2).Warn("visible")
	assert.Contains(t, buf.String(), "channels=2")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatText)
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.Equal(t, logrus.PanicLevel, logger.GetLevel())
}
