package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRow is one ticket of a simulated purchase
type PurchaseRow struct {
	Horses []string `json:"horses"`
	Amount int      `json:"amount"`
}

// Purchase is a recorded simulated purchase. No ticket is ever bought.
type Purchase struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	SessionID uuid.UUID     `json:"session_id" db:"session_id"`
	Race      RaceMeta      `json:"race" db:"race"`
	BetType   string        `json:"bet_type" db:"bet_type"`
	Budget    int           `json:"budget" db:"budget"`
	Rows      []PurchaseRow `json:"rows" db:"rows"`
	Total     int           `json:"total" db:"total"`
	Shortfall int           `json:"shortfall" db:"shortfall"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
