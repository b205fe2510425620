package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "slog text", format: "text", want: "msg=hello"},
		{name: "slog json", format: "json", want: `"msg":"hello"`},
		{name: "zerolog json", format: "zerolog", want: `"message":"hello"`},
		{name: "zerolog console", format: "console", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(Options{Level: "info", Format: tt.format, Output: &buf})
			require.NoError(t, err)

			log.Info(context.Background(), "hello", "k", "v")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Format: "zerolog", Output: &buf})
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)

	_, err = New(Options{Format: "text", Level: "loud"})
	assert.Error(t, err)
}

func TestZerologLogger_FieldsAndWith(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Format: "zerolog", Output: &buf})
	require.NoError(t, err)

	log.With("component", "chat").Debug(context.Background(), "send failed", "err", errors.New("boom"), "dangling")

	line := strings.TrimSpace(buf.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &got))

	assert.Equal(t, "chat", got["component"])
	assert.Equal(t, "boom", got["err"])
	assert.Equal(t, "dangling", got["!BADKEY"])
	assert.Equal(t, "debug", got["level"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.With("a", 1).Error(context.Background(), "ignored")
	})
}
