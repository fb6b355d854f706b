package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(level LogLevel, asJSON bool) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&Config{Level: level, Output: &buf, JSON: asJSON, TimeFormat: "15:04:05"}), &buf
}

func TestSetupLogger(t *testing.T) {
	cases := []struct {
		in   string
		want charmlog.Level
	}{
		{"debug", charmlog.DebugLevel},
		{"warn", charmlog.WarnLevel},
		{"error", charmlog.ErrorLevel},
		{"disabled", charmlog.Level(1000)},
		{"verbose", charmlog.InfoLevel},
		{"", charmlog.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("Should map log_level %q onto the default logger", tc.in), func(t *testing.T) {
			t.Cleanup(func() { Init(TestConfig()) })

			got := SetupLogger(tc.in, false, false)

			require.IsType(t, &loggerImpl{}, got)
			assert.Equal(t, tc.want, got.(*loggerImpl).charmLogger.GetLevel())
			assert.Same(t, got, GetDefault())
		})
	}

	t.Run("Should write JSON with the caller to stderr", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		stderr := os.Stderr
		os.Stderr = w
		t.Cleanup(func() {
			os.Stderr = stderr
			Init(TestConfig())
		})

		SetupLogger("info", true, true).Info("Converted input file", "key", "input/hosts.csv")
		require.NoError(t, w.Close())
		data, err := io.ReadAll(r)
		require.NoError(t, err)

		var line map[string]any
		require.NoError(t, json.Unmarshal(data, &line))
		assert.Equal(t, "Converted input file", line["msg"])
		assert.Equal(t, "input/hosts.csv", line["key"])
		assert.NotEmpty(t, line["caller"])
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write failure fields as one JSON object", func(t *testing.T) {
		log, buf := bufferLogger(InfoLevel, true)

		log.With("bucket", "inventory").Error("Failed to process input file", "key", "input/hosts.txt", "code", "FORMAT_ERROR")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "Failed to process input file", line["msg"])
		assert.Equal(t, "inventory", line["bucket"])
		assert.Equal(t, "input/hosts.txt", line["key"])
		assert.Equal(t, "FORMAT_ERROR", line["code"])
	})

	t.Run("Should render text fields as key=value pairs", func(t *testing.T) {
		log, buf := bufferLogger(InfoLevel, false)

		log.Info("Wrote netwatch script", "key", "output/hosts.rsc", "records", 3)

		out := buf.String()
		assert.Contains(t, out, "Wrote netwatch script")
		assert.Contains(t, out, "key=output/hosts.rsc")
		assert.Contains(t, out, "records=3")
	})

	t.Run("Should drop lines below the configured level", func(t *testing.T) {
		log, buf := bufferLogger(WarnLevel, false)

		log.Debug("Parsed header")
		log.Info("Skipping object outside the input path")
		log.Warn("Object key has malformed escapes")

		out := buf.String()
		assert.NotContains(t, out, "Parsed header")
		assert.NotContains(t, out, "Skipping object")
		assert.Contains(t, out, "malformed escapes")
	})

	t.Run("Should stay silent when disabled", func(t *testing.T) {
		log, buf := bufferLogger(DisabledLevel, false)

		log.Error("Failed to write CSV")

		assert.Zero(t, buf.Len())
	})

	t.Run("Should fall back to the default configuration", func(t *testing.T) {
		impl, ok := NewLogger(nil).(*loggerImpl)

		require.True(t, ok)
		assert.Equal(t, charmlog.InfoLevel, impl.charmLogger.GetLevel())
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should prefer the logger carried by the context", func(t *testing.T) {
		log, buf := bufferLogger(InfoLevel, false)
		ctx := ContextWithLogger(t.Context(), log.With("run_id", "r-1"))

		FromContext(ctx).Info("Processing event")

		assert.Contains(t, buf.String(), "run_id=r-1")
	})

	t.Run("Should use the installed default when the context has none", func(t *testing.T) {
		log, buf := bufferLogger(InfoLevel, false)
		defaultMu.Lock()
		defaultLogger = log
		defaultMu.Unlock()
		t.Cleanup(func() { Init(TestConfig()) })

		FromContext(context.WithValue(t.Context(), LoggerCtxKey, "not a logger")).Info("Fallback")

		assert.Contains(t, buf.String(), "Fallback")
	})

	t.Run("Should return a silent logger under go test without a default", func(t *testing.T) {
		defaultMu.Lock()
		prev := defaultLogger
		defaultLogger = nil
		defaultMu.Unlock()
		t.Cleanup(func() {
			defaultMu.Lock()
			defaultLogger = prev
			defaultMu.Unlock()
		})

		impl, ok := FromContext(t.Context()).(*loggerImpl)

		require.True(t, ok)
		assert.True(t, IsTestEnvironment())
		assert.Equal(t, charmlog.Level(1000), impl.charmLogger.GetLevel())
	})
}
