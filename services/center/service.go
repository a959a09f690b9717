// Package center is the directory of blood-collection locations and the
// slots they offer. The booking flow consults it to validate a requested
// center/date/time.
package center

import (
	"fmt"
	"time"

	centerRepo "hemovida/database/repository/center"
	"hemovida/models"
)

// DefaultSlotTemplate is the slot grid offered on every working day by
// centers that do not define their own: half-hour slots through the morning
// collection window.
var DefaultSlotTemplate = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00",
}

// BookingWindowMonths bounds how far ahead a slot may be booked.
const BookingWindowMonths = 3

// InvalidDateError reports a date string that is not in YYYY-MM-DD form. A
// client mistake, not a directory failure.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, want YYYY-MM-DD", e.Date)
}

// DirectoryService exposes the center directory to the booking flow and the
// mobile client.
type DirectoryService interface {
	// ListCenters returns all registered centers.
	ListCenters() ([]models.Center, error)
	// GetCenter returns one center, nil when unknown.
	GetCenter(id string) (*models.Center, error)
	// SlotsFor returns the times offered by a center on a date. Unknown
	// centers and dates outside the booking window yield an empty set.
	SlotsFor(centerID, date string) ([]string, error)
	// IsOffered reports whether the center offers the given date/time slot.
	IsOffered(centerID, date, timeOfDay string) (bool, error)
}

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Repo centerRepo.CenterRepository
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultDirectoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListCenters returns all registered centers.
func (s *DefaultDirectoryService) ListCenters() ([]models.Center, error) {
	return s.Repo.GetAll()
}

// GetCenter returns one center, nil when unknown.
func (s *DefaultDirectoryService) GetCenter(id string) (*models.Center, error) {
	return s.Repo.GetByID(id)
}

// SlotsFor returns the offered times for a center on a date. Past dates and
// dates beyond the booking window offer nothing.
func (s *DefaultDirectoryService) SlotsFor(centerID, date string) ([]string, error) {
	center, err := s.Repo.GetByID(centerID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, &InvalidDateError{Date: date}
	}
	today := s.now()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(todayDate) || day.After(todayDate.AddDate(0, BookingWindowMonths, 0)) {
		return nil, nil
	}

	if len(center.SlotTemplate) > 0 {
		return center.SlotTemplate, nil
	}
	return DefaultSlotTemplate, nil
}

// IsOffered reports whether the center offers the given slot.
func (s *DefaultDirectoryService) IsOffered(centerID, date, timeOfDay string) (bool, error) {
	slots, err := s.SlotsFor(centerID, date)
	if err != nil {
		return false, err
	}
	for _, t := range slots {
		if t == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

// SeedDefaultCenters registers the initial set of collection locations when
// the directory is empty.
func SeedDefaultCenters(repo centerRepo.CenterRepository) error {
	existing, err := repo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []models.Center{
		{ID: "hc-campinas", Name: "Hemocentro Campinas (Unicamp)", City: "Campinas"},
		{ID: "hc-itapira", Name: "Hemocentro Itapira (Unidade Móvel)", City: "Itapira", Mobile: true},
		{ID: "hc-sumare", Name: "Hemocentro Sumaré (Hospital Estadual)", City: "Sumaré"},
	}
	for i := range defaults {
		if err := repo.Upsert(&defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
