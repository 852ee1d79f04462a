package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickrget/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", "debug", zerolog.DebugLevel, false},
		{"info", "info", zerolog.InfoLevel, false},
		{"warn", "warn", zerolog.WarnLevel, false},
		{"warning alias", "warning", zerolog.WarnLevel, false},
		{"error", "error", zerolog.ErrorLevel, false},
		{"fatal", "fatal", zerolog.FatalLevel, false},
		{"disabled", "disabled", zerolog.Disabled, false},
		{"mixed case", "INFO", zerolog.InfoLevel, false},
		{"unknown", "verbose", zerolog.InfoLevel, true},
		{"empty", "", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		log, err := New(&config.LoggingConfig{Level: "info"})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := New(&config.LoggingConfig{Level: "shout"})
		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("with file output", func(t *testing.T) {
		file := t.TempDir() + "/logs/run.log"
		log, err := New(&config.LoggingConfig{Level: "debug", File: file})
		require.NoError(t, err)

		log.Info("hello")
		assert.FileExists(t, file)
	})
}

func TestInitializeSetsGlobalLogger(t *testing.T) {
	err := Initialize(&config.LoggingConfig{Level: "error"})
	require.NoError(t, err)
	assert.NotNil(t, GetLogger())
}

func TestZerologLoggerWithFields(t *testing.T) {
	base, err := New(&config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)

	// Derived loggers must not mutate the parent's fields.
	child := base.WithField("word", "sunset")
	grandchild := child.WithFields(map[string]interface{}{"page": 2})

	assert.NotSame(t, base, child)
	assert.NotSame(t, child, grandchild)

	// WithError(nil) is a no-op returning the same logger.
	assert.Same(t, child, child.WithError(nil))
}

func TestTestLoggerCapture(t *testing.T) {
	log := NewTestLogger()

	log.Info("starting search")
	log.WithField("word", "cat").Warn("empty page")
	log.WithError(errors.New("boom")).Error("download failed")
	log.InfoWithFields("downloading", map[string]interface{}{"url": "http://x/1.jpg"})

	msgs := log.GetMessages()
	require.Len(t, msgs, 4)

	assert.Equal(t, "INFO", msgs[0].Level)
	assert.Equal(t, "starting search", msgs[0].Message)

	warns := log.GetMessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "cat", warns[0].Fields["word"])

	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	require.Error(t, errs[0].Error)
	assert.True(t, log.HasError())

	assert.True(t, log.HasMessage("starting search"))
	assert.False(t, log.HasMessage("never logged"))
	assert.Len(t, log.MessagesContaining("download"), 2)
}

func TestTestLoggerContextMerging(t *testing.T) {
	log := NewTestLogger()

	ctx := log.WithFields(map[string]interface{}{"word": "dog", "page": 1})
	ctx.WithField("url", "http://x/2.jpg").Info("downloading")

	msgs := log.GetMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "dog", msgs[0].Fields["word"])
	assert.Equal(t, 1, msgs[0].Fields["page"])
	assert.Equal(t, "http://x/2.jpg", msgs[0].Fields["url"])
}

func TestTestLoggerClear(t *testing.T) {
	log := NewTestLogger()
	log.Info("one")
	log.Clear()

	assert.Empty(t, log.GetMessages())
	assert.Empty(t, log.String())
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()

	// Must accept every call without effect.
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
	log.WithField("k", "v").WithError(errors.New("x")).Error("e")
	log.InfoWithFields("f", map[string]interface{}{"k": 1})

	assert.NotNil(t, log.GetZerolog())
}
