// Package appointment implements the donation-appointment lifecycle: the
// booking gate, the status state machine and the follow-up effects of a
// completed donation.
package appointment

import (
	"errors"
	"fmt"
	"time"

	appointmentRepo "hemovida/database/repository/appointment"
	userRepo "hemovida/database/repository/user"
	"hemovida/models"
	"hemovida/services/center"
	"hemovida/services/eligibility"
	"hemovida/services/notification"
	"hemovida/services/updates"
	"hemovida/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Donation intervals by donor sex, following the Brazilian blood-bank rule:
// men may donate every 60 days, women every 90. Unknown sex gets the longer
// interval.
const (
	donationIntervalMale   = 60 * 24 * time.Hour
	donationIntervalFemale = 90 * 24 * time.Hour
)

// DonationInterval returns the mandatory waiting period after a completed
// donation for the given donor sex.
func DonationInterval(sex string) time.Duration {
	if sex == "male" {
		return donationIntervalMale
	}
	return donationIntervalFemale
}

// ReminderScheduler enqueues a reminder ahead of a confirmed appointment.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(appt models.Appointment) error
}

// AppointmentService defines the appointment operations exposed to handlers.
type AppointmentService interface {
	// Book creates a Pending appointment for an eligible donor on an
	// offered slot.
	Book(userID string, req models.BookingRequest) (*models.Appointment, error)
	// GetCurrent returns the donor's appointment of record, nil when none.
	GetCurrent(userID string) (*models.Appointment, error)
	// History returns all of the donor's appointments, newest first.
	History(userID string) ([]models.Appointment, error)
	// Cancel is the donor-initiated cancellation of their own appointment.
	Cancel(userID, apptID string) (*models.Appointment, error)
	// Discard clears the reference to a finished appointment so the donor
	// can book again.
	Discard(userID string) error
	// Confirm is the staff transition Pending -> Confirmed.
	Confirm(apptID string) (*models.Appointment, error)
	// Complete is the staff transition to Completed after the donation. It
	// also advances the donor's next-eligible date by the interval policy.
	Complete(apptID string) (*models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	UserRepo  userRepo.UserRepository
	Directory center.DirectoryService
	Hub       *updates.Hub
	Notifier  notification.NotificationService
	Reminders ReminderScheduler
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Book runs the booking gate and creates a Pending appointment. Rejections
// come back as NotEligibleError, DuplicateAppointmentError or
// InvalidSlotError; the caller surfaces them and takes no automatic action.
func (s *DefaultAppointmentService) Book(userID string, req models.BookingRequest) (*models.Appointment, error) {
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	result := eligibility.Classify(eligibility.ProfileFromUser(u), s.now())
	if result.Status != eligibility.StatusEligible {
		return nil, &NotEligibleError{Result: result}
	}

	active, err := s.Repo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, &DuplicateAppointmentError{ExistingID: active.ID, Status: active.Status}
	}

	offered, err := s.Directory.IsOffered(req.CenterID, req.Date, req.Time)
	if err != nil {
		// A malformed date is a slot the directory does not offer.
		var badDate *center.InvalidDateError
		if errors.As(err, &badDate) {
			return nil, &InvalidSlotError{CenterID: req.CenterID, Date: req.Date, Time: req.Time}
		}
		return nil, err
	}
	if !offered {
		return nil, &InvalidSlotError{CenterID: req.CenterID, Date: req.Date, Time: req.Time}
	}

	c, err := s.Directory.GetCenter(req.CenterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		UserID:      u.ID,
		PatientName: u.Name,
		CenterID:    c.ID,
		CenterName:  c.Name,
		Date:        req.Date,
		Time:        req.Time,
		Status:      models.AppointmentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(appt); err != nil {
		// The partial unique index catches a concurrent booking that won
		// the race between our active check and this insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateAppointmentError{Status: models.AppointmentPending}
		}
		return nil, err
	}

	u.CurrentAppointmentID = appt.ID
	u.UpdatedAt = now
	if err := s.UserRepo.Update(u); err != nil {
		return nil, fmt.Errorf("appointment %s created but user update failed: %w", appt.ID, err)
	}

	s.publish(appt)
	return appt, nil
}

// GetCurrent returns the donor's appointment of record, nil when none exists.
func (s *DefaultAppointmentService) GetCurrent(userID string) (*models.Appointment, error) {
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u.CurrentAppointmentID == "" {
		return nil, nil
	}
	return s.Repo.GetByID(u.CurrentAppointmentID)
}

// History returns all of the donor's appointments, newest first.
func (s *DefaultAppointmentService) History(userID string) ([]models.Appointment, error) {
	return s.Repo.GetByUser(userID)
}

// Cancel applies the donor-initiated cancellation. Only the owner may cancel,
// and only from Pending or Confirmed.
func (s *DefaultAppointmentService) Cancel(userID, apptID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, &AppointmentNotFoundError{ID: apptID}
	}
	if appt.UserID != userID {
		return nil, &NotOwnerError{AppointmentID: apptID, UserID: userID}
	}

	next, err := Cancel(*appt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(&next); err != nil {
		return nil, err
	}

	s.publish(&next)
	return &next, nil
}

// Discard clears the donor's reference to a Cancelled or Completed
// appointment, re-opening the booking form. Discarding an active appointment
// is refused; cancel it first.
func (s *DefaultAppointmentService) Discard(userID string) error {
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if u.CurrentAppointmentID == "" {
		return nil
	}

	appt, err := s.Repo.GetByID(u.CurrentAppointmentID)
	if err != nil {
		return err
	}
	// A missing record means the reference is stale; clear it like a
	// terminal one.
	if appt != nil && !appt.Status.Terminal() {
		return &DuplicateAppointmentError{ExistingID: appt.ID, Status: appt.Status}
	}

	u.CurrentAppointmentID = ""
	u.UpdatedAt = s.now()
	return s.UserRepo.Update(u)
}

// Confirm applies the staff transition Pending -> Confirmed, notifies the
// donor and schedules the pre-donation reminder.
func (s *DefaultAppointmentService) Confirm(apptID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, &AppointmentNotFoundError{ID: apptID}
	}

	next, err := Confirm(*appt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(&next); err != nil {
		return nil, err
	}

	s.publish(&next)
	s.notify(&next, "appointment_confirmed", "Agendamento confirmado",
		fmt.Sprintf("Sua doação em %s foi confirmada para %s às %s.", next.CenterName, next.Date, next.Time))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleAppointmentReminder(next); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("appointmentId", next.ID), zap.Error(err))
		}
	}
	return &next, nil
}

// Complete applies the staff transition to Completed and advances the
// donor's next-eligible date by the donation-interval policy for their sex.
func (s *DefaultAppointmentService) Complete(apptID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(apptID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, &AppointmentNotFoundError{ID: apptID}
	}

	next, err := Complete(*appt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(&next); err != nil {
		return nil, err
	}

	if err := s.advanceNextEligible(&next); err != nil {
		utils.GetLogger().Error("failed to advance next-eligible date",
			zap.String("appointmentId", next.ID), zap.Error(err))
	}

	s.publish(&next)
	s.notify(&next, "appointment_completed", "Obrigado por doar!",
		"Sua doação foi registrada. Você salvou até 4 vidas.")
	return &next, nil
}

// advanceNextEligible moves the donor's waiting-interval date forward from
// the donation date.
func (s *DefaultAppointmentService) advanceNextEligible(appt *models.Appointment) error {
	u, err := s.UserRepo.GetByID(appt.UserID)
	if err != nil {
		return err
	}

	base, err := time.Parse("2006-01-02", appt.Date)
	if err != nil {
		base = s.now()
	}
	next := base.Add(DonationInterval(u.Sex))
	u.NextEligibleDate = &next
	u.UpdatedAt = s.now()
	return s.UserRepo.Update(u)
}

func (s *DefaultAppointmentService) publish(appt *models.Appointment) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(updates.Event{
		Topic:   updates.AppointmentTopic(appt.UserID),
		Kind:    "appointment",
		Payload: appt,
	})
}

func (s *DefaultAppointmentService) notify(appt *models.Appointment, kind, title, message string) {
	if s.Notifier == nil {
		return
	}
	u, err := s.UserRepo.GetByID(appt.UserID)
	if err != nil {
		utils.GetLogger().Warn("failed to load user for notification",
			zap.String("userId", appt.UserID), zap.Error(err))
		return
	}
	n := models.Notification{
		ID:      uuid.New().String(),
		Type:    kind,
		Title:   title,
		Message: message,
		Data: map[string]string{
			"appointmentId": appt.ID,
			"status":        string(appt.Status),
			"date":          appt.Date,
			"time":          appt.Time,
		},
		CreatedAt: s.now(),
	}
	if err := s.Notifier.SendToUser(u, n); err != nil {
		utils.GetLogger().Warn("failed to send notification",
			zap.String("userId", appt.UserID), zap.Error(err))
	}
}
