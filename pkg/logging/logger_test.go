package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	ctx := logging.WithLogger(context.Background(), &logger)
	ctx = logging.WithRole(ctx, "ubicacion")
	ctx = logging.WithOperation(ctx, "load")

	logging.Ctx(ctx).Info().Msg("test message")

	output := buf.String()
	for _, want := range []string{"ubicacion", "load", "test message"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Error("Expected default logger for bare context")
	}
	if logging.FromContext(nil) == nil { //nolint:staticcheck // nil context fallback is part of the contract
		t.Error("Expected default logger for nil context")
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	cfg := &logging.Config{
		Level:  "warn",
		Format: "json",
		Output: "discard",
	}
	logger := logging.NewLoggerFromConfig(cfg)

	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %s", logger.GetLevel())
	}
}
