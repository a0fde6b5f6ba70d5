package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("bookshare", "production", &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.WithField("user_id", "u-1").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "u-1", line["user_id"])
}

func TestNew_DevelopmentUsesText(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("bookshare", "development", &buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "logger initialized")
}
