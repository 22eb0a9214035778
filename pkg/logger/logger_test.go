package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dealflow-api/pkg/logger"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Service: "dealflow-api", Out: &buf})

	l.Info().Msg("oculto")
	c := l.Component("deals")
	c.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "oculto")
	assert.Contains(t, out, `"service":"dealflow-api"`)
	assert.Contains(t, out, `"component":"deals"`)
	assert.Contains(t, out, `"message":"visible"`)
}
