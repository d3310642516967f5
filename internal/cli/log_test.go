package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("expected the default logger for a bare context")
	}
}

func TestLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("logger not recovered from context")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Config{AppToken: "tok", Limit: 42}
	ctx := withConfig(context.Background(), cfg)
	if got := configFromContext(ctx); got != cfg {
		t.Errorf("config not recovered: %+v", got)
	}
	if got := configFromContext(context.Background()); got != (Config{}) {
		t.Errorf("bare context should yield the zero config, got %+v", got)
	}
}
