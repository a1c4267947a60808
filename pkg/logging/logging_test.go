package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/payoff-calculator/internal/calculation"
)

var _ calculation.Logger = CalcLogger{}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"loud":    slog.LevelWarn,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in, slog.LevelWarn), "level %q", in)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelWarn, LevelFromEnv())
}

func TestCalcLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCalcLogger(slog.New(NewHandler(&buf, slog.LevelInfo, true)))

	logger.Debugf("hidden %d", 1)
	logger.Infof("registered table %s", "vpw@1")
	logger.Warnf("calculation %q failed: %v", "Card", "non-amortizing")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "registered table vpw@1")
	assert.Contains(t, out, `calculation "Card" failed: non-amortizing`)
	assert.Contains(t, out, "component=engine")
	assert.NotContains(t, out, "\x1b[", "NoColor handler must not emit escape codes")
}

func TestNewCalcLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	slog.SetDefault(slog.New(NewHandler(&buf, slog.LevelDebug, true)))

	NewCalcLogger(nil).Errorf("boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestSetupWithLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("NO_COLOR", "1")

	logger := SetupWithLevel(&buf, slog.LevelError)
	logger.Warn("quiet")
	slog.Error("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
