package bootstrap_test

import (
	"context"
	"testing"

	"karma-manager/internal/bootstrap"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	var logger bootstrap.AuditLogger = bootstrap.NewStdoutAuditLogger()
	logger.Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "interrupt"},
	})

	entries := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "audit"
	}).All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "Server is shutting down", fields["message"])
		assert.NotEmpty(t, fields["timestamp"])
	}
}
