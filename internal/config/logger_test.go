package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ytget/mycourses-downloader/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseLevel(tt.name)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestLoggerConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Logger{Level: "warn", JSON: true, Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "course_id", 779615)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	gt.Array(t, lines).Length(1)

	var record map[string]any
	gt.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	gt.Value(t, record["msg"]).Equal(any("shown"))
	gt.Value(t, record["course_id"]).Equal(any(float64(779615)))
}

func TestLoggerConfigureConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Logger{Level: "info", Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("archive written")

	out := buf.String()
	gt.Bool(t, strings.Contains(out, "archive written")).True()
	gt.Bool(t, strings.Contains(out, "hidden")).False()
}

func TestLoggerRedactsSessionCookie(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Logger{Level: "debug", JSON: true, Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err)

	logger.Debug("navigation failed", "error", "net::ERR_ABORTED d2lSecureSessionVal=abc123secret; path=/")

	gt.Bool(t, strings.Contains(buf.String(), "abc123secret")).False()
	gt.Bool(t, strings.Contains(buf.String(), "navigation failed")).True()
}

func TestLoggerConfigureInvalidLevel(t *testing.T) {
	cfg := config.Logger{Level: "loud"}
	_, err := cfg.Configure()
	gt.Value(t, err).NotNil()
}
