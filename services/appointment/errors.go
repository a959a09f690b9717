package appointment

import (
	"fmt"

	"hemovida/models"
	"hemovida/services/eligibility"
)

// NotEligibleError rejects a booking because the classifier did not return
// Eligible. It carries the derived result for the caller to render.
type NotEligibleError struct {
	Result eligibility.Result
}

func (e *NotEligibleError) Error() string {
	if e.Result.Reason != "" {
		return fmt.Sprintf("donor is not eligible to book: %s (%s)", e.Result.Status, e.Result.Reason)
	}
	return fmt.Sprintf("donor is not eligible to book: %s", e.Result.Status)
}

// DuplicateAppointmentError rejects a booking because the donor already holds
// an appointment that is not finished.
type DuplicateAppointmentError struct {
	ExistingID string
	Status     models.AppointmentStatus
}

func (e *DuplicateAppointmentError) Error() string {
	return fmt.Sprintf("donor already has a %s appointment (%s)", e.Status, e.ExistingID)
}

// InvalidSlotError rejects a booking because the requested slot is not among
// the offered set for the chosen center and date.
type InvalidSlotError struct {
	CenterID string
	Date     string
	Time     string
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("slot %s %s is not offered by center %s", e.Date, e.Time, e.CenterID)
}

// AppointmentNotFoundError reports an appointment ID with no record behind
// it, typically a stale ID held by the client.
type AppointmentNotFoundError struct {
	ID string
}

func (e *AppointmentNotFoundError) Error() string {
	return fmt.Sprintf("appointment %s not found", e.ID)
}

// NotOwnerError rejects an operation on another donor's appointment.
type NotOwnerError struct {
	AppointmentID string
	UserID        string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("appointment %s does not belong to user %s", e.AppointmentID, e.UserID)
}

// InvalidTransitionError rejects a lifecycle transition the state machine
// does not allow. It carries the attempted source and target statuses.
type InvalidTransitionError struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid appointment transition from %s to %s", e.From, e.To)
}
