package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
	AppointmentCompleted AppointmentStatus = "Completed"
)

// Terminal reports whether no further transitions may leave this status.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCancelled || s == AppointmentCompleted
}

// Appointment is a scheduled donation slot at a center.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`
	UserID      string            `bson:"user_id" json:"userId"`
	PatientName string            `bson:"patient_name" json:"patientName"`
	CenterID    string            `bson:"center_id" json:"centerId"`
	CenterName  string            `bson:"center_name" json:"centerName"`
	Date        string            `bson:"date" json:"date"` // "2006-01-02"
	Time        string            `bson:"time" json:"time"` // "15:04"
	Status      AppointmentStatus `bson:"status" json:"status"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the payload a donor submits to book a slot.
type BookingRequest struct {
	CenterID string `json:"centerId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}
