package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfuis201/ferreteriafacturacion-sub004/pkg/logger"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	log.WithStr("component", "ubl").Warn().Str("code", "P-01").Msg("producto no encontrado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ubl", entry["component"])
	assert.Equal(t, "P-01", entry["code"])
	assert.Equal(t, "producto no encontrado", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "error", Output: &buf})

	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
}
