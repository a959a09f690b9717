package appointment

import (
	"time"

	"hemovida/models"
)

// The appointment state machine:
//
//	Pending --confirm--> Confirmed --complete--> Completed (terminal)
//	Pending --complete--> Completed (terminal)
//	Pending --cancel--> Cancelled (terminal)
//	Confirmed --cancel--> Cancelled (terminal)
//
// Clinic staff may complete a Pending appointment directly, without a prior
// confirmation; walk-in completions at mobile units made the intermediate
// Confirmed state optional. Nothing leaves Cancelled or Completed.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted},
	models.AppointmentConfirmed: {models.AppointmentCancelled, models.AppointmentCompleted},
}

// Transition returns a copy of the appointment moved to the target status, or
// an InvalidTransitionError when the state machine forbids the move. The
// input is never mutated; the caller persists the returned value.
func Transition(appt models.Appointment, target models.AppointmentStatus, now time.Time) (models.Appointment, error) {
	for _, t := range allowedTransitions[appt.Status] {
		if t == target {
			next := appt
			next.Status = target
			next.UpdatedAt = now
			return next, nil
		}
	}
	return models.Appointment{}, &InvalidTransitionError{From: appt.Status, To: target}
}

// Confirm moves a Pending appointment to Confirmed. Staff only.
func Confirm(appt models.Appointment, now time.Time) (models.Appointment, error) {
	return Transition(appt, models.AppointmentConfirmed, now)
}

// Cancel moves a Pending or Confirmed appointment to Cancelled.
func Cancel(appt models.Appointment, now time.Time) (models.Appointment, error) {
	return Transition(appt, models.AppointmentCancelled, now)
}

// Complete moves a Pending or Confirmed appointment to Completed. Staff only.
func Complete(appt models.Appointment, now time.Time) (models.Appointment, error) {
	return Transition(appt, models.AppointmentCompleted, now)
}
