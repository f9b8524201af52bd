// Package logger provides allocation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AllocationLogger provides dedicated logging for bet allocation.
type AllocationLogger struct {
	*logrus.Entry
}

// NewAllocationLogger creates a new allocation logger.
func NewAllocationLogger(baseLogger *logrus.Logger) *AllocationLogger {
	return &AllocationLogger{
		Entry: baseLogger.WithField("component", "allocator"),
	}
}

// LogAllocation logs a completed allocation.
func (al *AllocationLogger) LogAllocation(betType string, poolSize, combinations, budget, total int) {
	al.WithFields(logrus.Fields{
		"bet_type":        betType,
		"pool_size":       poolSize,
		"combinations":    combinations,
		"budget":          budget,
		"total_allocated": total,
		"shortfall":       budget - total,
	}).Info("Allocation computed")
}

// LogPoolFallback logs the substitution of the default top-scored pool.
func (al *AllocationLogger) LogPoolFallback(betType string, selected int, minimum int, fallback []string) {
	al.WithFields(logrus.Fields{
		"bet_type":      betType,
		"selected":      selected,
		"minimum":       minimum,
		"fallback_pool": fallback,
	}).Info("Selection below minimum, using top-scored pool")
}

// LogOverride logs a manual per-row override.
func (al *AllocationLogger) LogOverride(combination string, oldAmount, newAmount int) {
	al.WithFields(logrus.Fields{
		"combination": combination,
		"old_amount":  oldAmount,
		"new_amount":  newAmount,
	}).Debug("Allocation row overridden")
}
