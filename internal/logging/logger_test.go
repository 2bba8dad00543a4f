package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/morikuni/failure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriterJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "DEBUG", FormatJSON))

	log.Debug().Str("k", "v").Msg("hello")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "debug", event["level"])
	assert.Equal(t, "hello", event["message"])
	assert.Equal(t, "v", event["k"])
}

func TestSetupWriterAutoOnBufferIsJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "info", FormatAuto))
	log.Info().Msg("plain")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetupWriterHuman(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "info", FormatHuman))
	log.Info().Msg("readable")
	assert.Contains(t, buf.String(), "readable")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetupWriterErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, SetupWriter(&buf, "info", "xml"), "invalid log format")
	assert.Error(t, SetupWriter(&buf, "loud", FormatJSON))
}

func TestErrorStackMarshaller(t *testing.T) {
	err := failure.New(failure.StringCode("Boom"))
	frames, ok := errorStackMarshaller(err).([]string)
	require.True(t, ok)
	assert.NotEmpty(t, frames)

	assert.Nil(t, errorStackMarshaller(errors.New("no stack")))
}
