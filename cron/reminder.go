// Package cron runs the background reminder worker: when staff confirm an
// appointment a reminder task is enqueued and delivered to the donor's
// device the day before the slot.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hemovida/config"
	appointmentRepo "hemovida/database/repository/appointment"
	userRepo "hemovida/database/repository/user"
	"hemovida/models"
	"hemovida/services/notification"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// reminderLeadTime is how long before the slot the reminder fires.
const reminderLeadTime = 24 * time.Hour

// ReminderPayload is the task body enqueued per confirmed appointment.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// ReminderScheduler enqueues reminder tasks. It satisfies the appointment
// service's scheduler dependency.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler backed by the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleAppointmentReminder enqueues a reminder for the day before the
// slot. Appointments closer than the lead time get no reminder.
func (s *ReminderScheduler) ScheduleAppointmentReminder(appt models.Appointment) error {
	slot, err := time.Parse("2006-01-02 15:04", appt.Date+" "+appt.Time)
	if err != nil {
		return fmt.Errorf("unparseable appointment slot %q %q: %w", appt.Date, appt.Time, err)
	}

	processAt := slot.Add(-reminderLeadTime)
	if !processAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{AppointmentID: appt.ID, UserID: appt.UserID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(processAt), asynq.MaxRetry(3))
	return err
}

// Close releases the underlying queue client.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(appts appointmentRepo.AppointmentRepository, users userRepo.UserRepository, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(appts, users, notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

// handleReminderTask delivers the reminder if the appointment is still on.
func handleReminderTask(appts appointmentRepo.AppointmentRepository, users userRepo.UserRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid reminder payload: %w", err)
		}

		appt, err := appts.GetByID(payload.AppointmentID)
		if err != nil {
			return err
		}
		// Cancelled or already completed: nothing to remind.
		if appt.Status != models.AppointmentConfirmed {
			return nil
		}

		u, err := users.GetByID(payload.UserID)
		if err != nil {
			return err
		}

		n := models.Notification{
			ID:      uuid.New().String(),
			Type:    "appointment_reminder",
			Title:   "Lembrete de doação",
			Message: fmt.Sprintf("Sua doação em %s é amanhã às %s. Durma bem e evite bebidas alcoólicas.", appt.CenterName, appt.Time),
			Data: map[string]string{
				"appointmentId": appt.ID,
				"date":          appt.Date,
				"time":          appt.Time,
			},
			CreatedAt: time.Now(),
		}
		return notifSvc.SendToUser(u, n)
	}
}
