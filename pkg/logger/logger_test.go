package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New().WithOutput(&buf).Component("claim.usecase")

	l.Errorf(errors.New("boom"), "create failed claim_id=%s", "c-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "claim.usecase", line["component"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "create failed claim_id=c-1", line["message"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Level: zerolog.WarnLevel}).WithOutput(&buf)

	l.Infof("hidden")
	assert.Zero(t, buf.Len())

	l.Warnf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDefault(t *testing.T) {
	custom := New()
	SetDefault(custom)
	t.Cleanup(func() { SetDefault(nil) })

	assert.Same(t, custom, Default())
}
