package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "production")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = newLogger(buf, "nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestAllocationLoggerAllocation(t *testing.T) {
	log, buf := setupTestLogger()
	allocLogger := NewAllocationLogger(log)

	allocLogger.LogAllocation("single", 3, 3, 1000, 999)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "allocator", logEntry["component"])
	assert.Equal(t, "single", logEntry["bet_type"])
	assert.Equal(t, float64(1), logEntry["shortfall"])
}

func TestAllocationLoggerPoolFallback(t *testing.T) {
	log, buf := setupTestLogger()
	allocLogger := NewAllocationLogger(log)

	allocLogger.LogPoolFallback("trio", 1, 3, []string{"A", "B", "C"})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(3), logEntry["minimum"])
	assert.Len(t, logEntry["fallback_pool"], 3)
}

func TestAllocationLoggerOverrideBelowLevel(t *testing.T) {
	log, buf := setupTestLogger()
	allocLogger := NewAllocationLogger(log)

	allocLogger.LogOverride("A - B", 300, 500)
	assert.Zero(t, buf.Len())
}

func TestAuditLoggerSimulatedPurchase(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSimulatedPurchase(
		"purchase_1",
		"session_1",
		"quinella",
		3,
		900,
		900,
		time.Date(2026, 10, 18, 15, 40, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "purchase_1", logEntry["purchase_id"])
	assert.Equal(t, true, logEntry["simulated"])
}

func TestAuditLoggerMarkChange(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogMarkChange("session_1", "カランダガン", "", "◎")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "◎", logEntry["new_mark"])
}

func TestAuditLoggerManualScoreChange(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogManualScoreChange("session_1", "サンプルA", 0, 2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(2), logEntry["new_value"])
}

func TestAuditLoggerSessionReset(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogSessionReset("session_1", "horse set changed")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "horse set changed", logEntry["reason"])
}
