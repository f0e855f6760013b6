package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		" DEBUG ":   zerolog.DebugLevel,
		"warning":   zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.InfoLevel,
		"gibberish": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first, Env: "test"})
	Init(Options{Level: "debug", Output: &second})

	storeLog := For("store")
	storeLog.Info().Msg("loaded")
	rootLog := Get()
	rootLog.Debug().Msg("filtered out")

	assert.Zero(t, second.Len())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(first.Bytes()), &line))
	assert.Equal(t, "loaded", line["message"])
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "test", line["env"])
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Panics(t, func() { Get() })
}
