package appointment_test

import (
	"errors"
	"testing"
	"time"

	"hemovida/models"
	"hemovida/services/appointment"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func appt(status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		ID:       "appt-1",
		UserID:   "user-1",
		CenterID: "hc-campinas",
		Date:     "2024-06-10",
		Time:     "08:30",
		Status:   status,
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name   string
		from   models.AppointmentStatus
		to     models.AppointmentStatus
		wantOK bool
	}{
		{"pending to confirmed", models.AppointmentPending, models.AppointmentConfirmed, true},
		{"pending to cancelled", models.AppointmentPending, models.AppointmentCancelled, true},
		{"pending to completed", models.AppointmentPending, models.AppointmentCompleted, true},
		{"confirmed to cancelled", models.AppointmentConfirmed, models.AppointmentCancelled, true},
		{"confirmed to completed", models.AppointmentConfirmed, models.AppointmentCompleted, true},
		{"confirmed to confirmed", models.AppointmentConfirmed, models.AppointmentConfirmed, false},
		{"cancelled to confirmed", models.AppointmentCancelled, models.AppointmentConfirmed, false},
		{"cancelled to completed", models.AppointmentCancelled, models.AppointmentCompleted, false},
		{"completed to cancelled", models.AppointmentCompleted, models.AppointmentCancelled, false},
		{"completed to confirmed", models.AppointmentCompleted, models.AppointmentConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := appointment.Transition(appt(tc.from), tc.to, now)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Status != tc.to {
					t.Fatalf("got status %s, want %s", got.Status, tc.to)
				}
				return
			}
			var invalid *appointment.InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if invalid.From != tc.from || invalid.To != tc.to {
				t.Fatalf("error carries %s->%s, want %s->%s", invalid.From, invalid.To, tc.from, tc.to)
			}
		})
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	orig := appt(models.AppointmentPending)
	if _, err := appointment.Confirm(orig, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if orig.Status != models.AppointmentPending {
		t.Fatalf("input mutated to %s", orig.Status)
	}
}

func TestCompleteOnCancelled(t *testing.T) {
	// Completing a cancelled appointment reports the attempted source and
	// target.
	_, err := appointment.Complete(appt(models.AppointmentCancelled), now)
	var invalid *appointment.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != models.AppointmentCancelled || invalid.To != models.AppointmentCompleted {
		t.Fatalf("got %s->%s", invalid.From, invalid.To)
	}
}

func TestDonationInterval(t *testing.T) {
	if got := appointment.DonationInterval("male"); got != 60*24*time.Hour {
		t.Fatalf("male interval: %v", got)
	}
	if got := appointment.DonationInterval("female"); got != 90*24*time.Hour {
		t.Fatalf("female interval: %v", got)
	}
	if got := appointment.DonationInterval(""); got != 90*24*time.Hour {
		t.Fatalf("unknown-sex interval: %v", got)
	}
}
