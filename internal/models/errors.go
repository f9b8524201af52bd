package models

import "errors"

// Custom errors
var (
	ErrNotFound              = errors.New("record not found")
	ErrUnknownHorse          = errors.New("unknown horse")
	ErrDuplicateHorse        = errors.New("duplicate horse in selection")
	ErrInvalidMark           = errors.New("invalid mark")
	ErrManualScoreOutOfRange = errors.New("manual score out of range")
	ErrUnknownBetType        = errors.New("unknown bet type")
	ErrUnknownSortKey        = errors.New("unknown sort key")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidRaceMeta       = errors.New("invalid race meta")
	ErrEmptyAllocation       = errors.New("allocation has no combinations")
	ErrUnknownCombination    = errors.New("combination not in allocation")
)
