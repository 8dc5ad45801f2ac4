package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	SetupTestLogger()
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	return &buf
}

func TestForContext_IncluiIDs(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "Ab12Cd")

	ForContext(ctx).Info("relatório gerado")

	assert.Contains(t, buf.String(), "correlation_id="+correlationID)
	assert.Contains(t, buf.String(), "run_id=Ab12Cd")
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Equal(t, "Ab12Cd", GetRunID(ctx))
}

func TestWithFields_FiltraEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{
		"provider":    "sendgrid",
		"email_to":    "a@x.com",
		"user_agent":  "curl",
		"status_code": 200,
	}).Info("mensagem")

	output := buf.String()
	assert.Contains(t, output, "provider=sendgrid")
	assert.Contains(t, output, "email_to=")
	assert.Contains(t, output, "status_code=200")
	assert.NotContains(t, output, "user_agent")
}

func TestGetCorrelationID_ContextoVazio(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Empty(t, GetRunID(context.Background()))
}
