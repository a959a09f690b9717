package appointment_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"hemovida/models"
	"hemovida/services/appointment"
	"hemovida/services/center"
	"hemovida/services/updates"

	"go.mongodb.org/mongo-driver/bson"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	users map[string]models.User
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return &u, nil
}

func (r *memUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(u *models.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Update(u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return fmt.Errorf("user %s not found", u.ID)
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

// memApptRepo is an in-memory AppointmentRepository for tests.
type memApptRepo struct {
	appts map[string]models.Appointment
}

func (r *memApptRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memApptRepo) GetActiveByUser(userID string) (*models.Appointment, error) {
	for _, a := range r.appts {
		if a.UserID == userID && !a.Status.Terminal() {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memApptRepo) GetByUser(userID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApptRepo) Create(a *models.Appointment) error {
	r.appts[a.ID] = *a
	return nil
}

func (r *memApptRepo) Update(a *models.Appointment) error {
	if _, ok := r.appts[a.ID]; !ok {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	r.appts[a.ID] = *a
	return nil
}

type testEnv struct {
	Svc   *appointment.DefaultAppointmentService
	Users *memUserRepo
	Appts *memApptRepo
	Hub   *updates.Hub
}

// eligibleUser returns a donor whose questionnaire is fully answered with no
// impediments.
func eligibleUser() models.User {
	answers := models.QuestionnaireAnswers{
		Chronic:   map[models.ChronicCondition]bool{},
		Temporary: map[models.TemporaryCondition]bool{},
	}
	for _, c := range models.AllChronicConditions() {
		answers.Chronic[c] = false
	}
	for _, c := range models.AllTemporaryConditions() {
		answers.Temporary[c] = false
	}
	return models.User{
		ID:                "user-1",
		Name:              "Maria Silva",
		Email:             "maria@example.com",
		Sex:               "female",
		Questionnaire:     &answers,
		AnsweredQuestions: answers.AnsweredCount(),
	}
}

func newTestEnv(t *testing.T, users ...models.User) testEnv {
	t.Helper()
	userRepo := &memUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	apptRepo := &memApptRepo{appts: make(map[string]models.Appointment)}
	hub := updates.NewHub()

	clock := func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	dir := &center.DefaultDirectoryService{
		Repo: newMemCenterRepo(models.Center{ID: "hc-campinas", Name: "Hemocentro Campinas (Unicamp)"}),
		Now:  clock,
	}
	svc := &appointment.DefaultAppointmentService{
		Repo:      apptRepo,
		UserRepo:  userRepo,
		Directory: dir,
		Hub:       hub,
		Now:       clock,
	}
	return testEnv{Svc: svc, Users: userRepo, Appts: apptRepo, Hub: hub}
}

// memCenterRepo mirrors the one in the center package tests.
type memCenterRepo struct {
	centers map[string]models.Center
}

func newMemCenterRepo(centers ...models.Center) *memCenterRepo {
	r := &memCenterRepo{centers: make(map[string]models.Center)}
	for _, c := range centers {
		r.centers[c.ID] = c
	}
	return r
}

func (r *memCenterRepo) GetByID(id string) (*models.Center, error) {
	c, ok := r.centers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCenterRepo) GetAll() ([]models.Center, error) { return nil, nil }
func (r *memCenterRepo) Upsert(c *models.Center) error    { return nil }

var validRequest = models.BookingRequest{
	CenterID: "hc-campinas",
	Date:     "2024-06-10",
	Time:     "08:30",
}

func TestBookSuccess(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.Status != models.AppointmentPending {
		t.Fatalf("got status %s, want Pending", appt.Status)
	}
	if appt.ID == "" {
		t.Fatal("appointment has no ID")
	}
	if appt.CenterName != "Hemocentro Campinas (Unicamp)" {
		t.Fatalf("center name not resolved: %q", appt.CenterName)
	}
	u, _ := env.Users.GetByID("user-1")
	if u.CurrentAppointmentID != appt.ID {
		t.Fatalf("user reference not set: %q", u.CurrentAppointmentID)
	}
}

func TestBookRejectsNotScreened(t *testing.T) {
	u := eligibleUser()
	u.Questionnaire = nil
	u.AnsweredQuestions = 0
	env := newTestEnv(t, u)

	_, err := env.Svc.Book("user-1", validRequest)
	var notEligible *appointment.NotEligibleError
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
}

func TestBookRejectsChronicIneligible(t *testing.T) {
	u := eligibleUser()
	u.Questionnaire.Chronic[models.ChronicInjectableDrugUse] = true
	env := newTestEnv(t, u)

	_, err := env.Svc.Book("user-1", validRequest)
	var notEligible *appointment.NotEligibleError
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
}

func TestBookRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	first, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("first book: %v", err)
	}

	_, err = env.Svc.Book("user-1", validRequest)
	var dup *appointment.DuplicateAppointmentError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateAppointmentError, got %v", err)
	}
	if dup.ExistingID != first.ID {
		t.Fatalf("error references %s, want %s", dup.ExistingID, first.ID)
	}
}

func TestBookRejectsInvalidSlot(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	cases := []struct {
		name string
		req  models.BookingRequest
	}{
		{"unknown center", models.BookingRequest{CenterID: "hc-nowhere", Date: "2024-06-10", Time: "08:30"}},
		{"time not offered", models.BookingRequest{CenterID: "hc-campinas", Date: "2024-06-10", Time: "13:00"}},
		{"past date", models.BookingRequest{CenterID: "hc-campinas", Date: "2024-05-01", Time: "08:30"}},
		{"malformed date", models.BookingRequest{CenterID: "hc-campinas", Date: "10/06/2024", Time: "08:30"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Svc.Book("user-1", tc.req)
			var invalid *appointment.InvalidSlotError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidSlotError, got %v", err)
			}
		})
	}
}

func TestBookAgainAfterCancelAndDiscard(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	first, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := env.Svc.Cancel("user-1", first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := env.Svc.Discard("user-1"); err != nil {
		t.Fatalf("discard: %v", err)
	}

	second, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("rebook: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("rebooking reused the old appointment")
	}
}

func TestDiscardRefusesActiveAppointment(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	if _, err := env.Svc.Book("user-1", validRequest); err != nil {
		t.Fatalf("book: %v", err)
	}
	err := env.Svc.Discard("user-1")
	var dup *appointment.DuplicateAppointmentError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateAppointmentError, got %v", err)
	}
}

func TestCancelForeignAppointment(t *testing.T) {
	other := eligibleUser()
	other.ID = "user-2"
	other.Email = "joao@example.com"
	env := newTestEnv(t, eligibleUser(), other)

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	_, err = env.Svc.Cancel("user-2", appt.ID)
	var notOwner *appointment.NotOwnerError
	if !errors.As(err, &notOwner) {
		t.Fatalf("expected NotOwnerError, got %v", err)
	}
	if notOwner.AppointmentID != appt.ID || notOwner.UserID != "user-2" {
		t.Fatalf("error carries %s/%s", notOwner.AppointmentID, notOwner.UserID)
	}
}

func TestLifecycleUnknownAppointment(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	var notFound *appointment.AppointmentNotFoundError
	if _, err := env.Svc.Cancel("user-1", "appt-missing"); !errors.As(err, &notFound) {
		t.Fatalf("cancel: expected AppointmentNotFoundError, got %v", err)
	}
	if _, err := env.Svc.Confirm("appt-missing"); !errors.As(err, &notFound) {
		t.Fatalf("confirm: expected AppointmentNotFoundError, got %v", err)
	}
	if _, err := env.Svc.Complete("appt-missing"); !errors.As(err, &notFound) {
		t.Fatalf("complete: expected AppointmentNotFoundError, got %v", err)
	}
	if notFound.ID != "appt-missing" {
		t.Fatalf("error carries %q", notFound.ID)
	}
}

func TestConfirmThenComplete(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	confirmed, err := env.Svc.Confirm(appt.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.AppointmentConfirmed {
		t.Fatalf("got %s, want Confirmed", confirmed.Status)
	}

	completed, err := env.Svc.Complete(appt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.AppointmentCompleted {
		t.Fatalf("got %s, want Completed", completed.Status)
	}

	// Female donor: next eligible 90 days after the donation date.
	u, _ := env.Users.GetByID("user-1")
	if u.NextEligibleDate == nil {
		t.Fatal("next-eligible date not set")
	}
	donation, _ := time.Parse("2006-01-02", validRequest.Date)
	want := donation.Add(90 * 24 * time.Hour)
	if !u.NextEligibleDate.Equal(want) {
		t.Fatalf("next eligible %v, want %v", u.NextEligibleDate, want)
	}
}

func TestCompleteDirectlyFromPending(t *testing.T) {
	// Clinic staff may complete without prior confirmation.
	env := newTestEnv(t, eligibleUser())

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	completed, err := env.Svc.Complete(appt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.AppointmentCompleted {
		t.Fatalf("got %s, want Completed", completed.Status)
	}
}

func TestCompleteCancelledFails(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := env.Svc.Cancel("user-1", appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = env.Svc.Complete(appt.ID)
	var invalid *appointment.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != models.AppointmentCancelled || invalid.To != models.AppointmentCompleted {
		t.Fatalf("got %s->%s", invalid.From, invalid.To)
	}
}

func TestBookAfterCompletionBlockedByInterval(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := env.Svc.Complete(appt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := env.Svc.Discard("user-1"); err != nil {
		t.Fatalf("discard: %v", err)
	}

	// The waiting interval now gates a rebooking attempt.
	_, err = env.Svc.Book("user-1", validRequest)
	var notEligible *appointment.NotEligibleError
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
}

func TestLifecyclePublishesUpdates(t *testing.T) {
	env := newTestEnv(t, eligibleUser())

	ch, cancel := env.Hub.Subscribe(updates.AppointmentTopic("user-1"))
	defer cancel()

	appt, err := env.Svc.Book("user-1", validRequest)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := env.Svc.Confirm(appt.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	booked := <-ch
	confirmed := <-ch
	if booked.Payload.(*models.Appointment).Status != models.AppointmentPending {
		t.Fatalf("first event: %+v", booked)
	}
	if confirmed.Payload.(*models.Appointment).Status != models.AppointmentConfirmed {
		t.Fatalf("second event: %+v", confirmed)
	}
}
