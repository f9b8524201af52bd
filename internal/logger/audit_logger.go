// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogSimulatedPurchase logs a simulated ticket purchase. Nothing is bought.
func (al *AuditLogger) LogSimulatedPurchase(purchaseID, sessionID, betType string, combinations, budget, total int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"purchase_id":  purchaseID,
		"session_id":   sessionID,
		"bet_type":     betType,
		"combinations": combinations,
		"budget":       budget,
		"total":        total,
		"timestamp":    timestamp.Unix(),
		"simulated":    true,
	}).Info("Simulated purchase recorded")
}

// LogMarkChange logs a mark change on a horse.
func (al *AuditLogger) LogMarkChange(sessionID, horse, oldMark, newMark string) {
	al.WithFields(logrus.Fields{
		"session_id": sessionID,
		"horse":      horse,
		"old_mark":   oldMark,
		"new_mark":   newMark,
	}).Info("Mark changed")
}

// LogManualScoreChange logs a manual score adjustment.
func (al *AuditLogger) LogManualScoreChange(sessionID, horse string, oldValue, newValue int) {
	al.WithFields(logrus.Fields{
		"session_id": sessionID,
		"horse":      horse,
		"old_value":  oldValue,
		"new_value":  newValue,
	}).Info("Manual score changed")
}

// LogSessionReset logs that a session's marks and manual scores were cleared.
func (al *AuditLogger) LogSessionReset(sessionID, reason string) {
	al.WithFields(logrus.Fields{
		"session_id": sessionID,
		"reason":     reason,
	}).Info("Session adjustments cleared")
}
