package repository

import (
	"github.com/yourusername/keiba-desk/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Simulation SimulationRepository
}

// NewRepositories returns PostgreSQL repositories, or in-memory ones when
// db is nil.
func NewRepositories(db *database.DB) *Repositories {
	if db == nil {
		return &Repositories{
			Simulation: NewMemorySimulationRepository(),
		}
	}

	return &Repositories{
		Simulation: NewPostgresSimulationRepository(db),
	}
}
