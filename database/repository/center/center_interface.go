package centerRepo

import "hemovida/models"

// CenterRepository defines methods for blood-center directory access.
type CenterRepository interface {
	// GetByID retrieves a center by its unique ID, nil when absent.
	GetByID(id string) (*models.Center, error)
	// GetAll retrieves all centers.
	GetAll() ([]models.Center, error)
	// Upsert inserts or replaces a center record.
	Upsert(center *models.Center) error
}
