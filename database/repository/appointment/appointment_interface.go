package appointmentRepo

import "hemovida/models"

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID, nil when absent.
	GetByID(id string) (*models.Appointment, error)
	// GetActiveByUser retrieves the user's Pending or Confirmed appointment,
	// nil when none exists.
	GetActiveByUser(userID string) (*models.Appointment, error)
	// GetByUser retrieves all of a user's appointments, newest first.
	GetByUser(userID string) ([]models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// Update replaces an existing appointment record.
	Update(appt *models.Appointment) error
}
