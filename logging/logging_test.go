package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer := New("debug", path)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	Component(logger, "booking").Info("booking created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=booking")
	assert.Contains(t, string(data), "booking created")
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger, closer := New("loud", "")
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestComponentWithNilLogger(t *testing.T) {
	e := Component(nil, "profile")
	assert.Equal(t, "profile", e.Data["component"])
}
