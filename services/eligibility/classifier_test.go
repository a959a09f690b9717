package eligibility_test

import (
	"testing"
	"time"

	"hemovida/models"
	"hemovida/services/eligibility"
)

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// screened returns a profile with enough answered fields to count as
// submitted and every flag answered "no".
func screened() eligibility.Profile {
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
	return eligibility.Profile{
		Answers:           answers,
		AnsweredQuestions: answers.AnsweredCount(),
	}
}

func TestClassifyNotScreened(t *testing.T) {
	cases := []struct {
		name     string
		answered int
	}{
		{"zero answers", 0},
		{"below threshold", eligibility.MinScreeningAnswers - 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := eligibility.Profile{AnsweredQuestions: tc.answered}
			got := eligibility.Classify(p, today)
			if got.Status != eligibility.StatusNotScreened {
				t.Fatalf("got %s, want NotScreened", got.Status)
			}
		})
	}
}

func TestClassifyChronicDominates(t *testing.T) {
	// A chronic flag wins over temporary flags and a future interval date.
	for _, chronic := range models.AllChronicConditions() {
		p := screened()
		p.Answers.Chronic[chronic] = true
		p.Answers.Temporary[models.TemporaryFluOrCold] = true
		next := today.AddDate(0, 2, 0)
		p.NextEligibleDate = &next

		got := eligibility.Classify(p, today)
		if got.Status != eligibility.StatusChronicallyIneligible {
			t.Errorf("%s: got %s, want ChronicallyIneligible", chronic, got.Status)
		}
	}
}

func TestClassifyTemporaryFlag(t *testing.T) {
	for _, temp := range models.AllTemporaryConditions() {
		p := screened()
		p.Answers.Temporary[temp] = true

		got := eligibility.Classify(p, today)
		if got.Status != eligibility.StatusTemporarilyIneligible {
			t.Errorf("%s: got %s, want TemporarilyIneligible", temp, got.Status)
		}
		if got.Reason != eligibility.ReasonPendingCondition {
			t.Errorf("%s: got reason %q, want %q", temp, got.Reason, eligibility.ReasonPendingCondition)
		}
	}
}

func TestClassifyWaitingInterval(t *testing.T) {
	p := screened()
	next := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	p.NextEligibleDate = &next

	got := eligibility.Classify(p, today)
	if got.Status != eligibility.StatusTemporarilyIneligible {
		t.Fatalf("got %s, want TemporarilyIneligible", got.Status)
	}
	if got.Reason != eligibility.ReasonWaitingInterval {
		t.Fatalf("got reason %q, want %q", got.Reason, eligibility.ReasonWaitingInterval)
	}
	if got.EligibleOn != "15/07/2024" {
		t.Fatalf("got eligibleOn %q, want 15/07/2024", got.EligibleOn)
	}
}

func TestClassifyDateOnlyComparison(t *testing.T) {
	// An interval date later the same day is not "in the future".
	p := screened()
	next := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	p.NextEligibleDate = &next

	got := eligibility.Classify(p, today.Add(1*time.Hour))
	if got.Status != eligibility.StatusEligible {
		t.Fatalf("got %s, want Eligible", got.Status)
	}
}

func TestClassifyEligible(t *testing.T) {
	cases := []struct {
		name string
		next *time.Time
	}{
		{"no interval date", nil},
		{"interval date today", &today},
		{"interval date past", timePtr(today.AddDate(0, -1, 0))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := screened()
			p.NextEligibleDate = tc.next
			got := eligibility.Classify(p, today)
			if got.Status != eligibility.StatusEligible {
				t.Fatalf("got %s, want Eligible", got.Status)
			}
		})
	}
}

func TestClassifyFullyAnsweredClean(t *testing.T) {
	// A fully answered questionnaire with no flags and no interval date.
	p := screened()
	p.Answers.Personal = map[string]string{
		"occupation": "teacher", "lastMeal": "08:00",
		"sleepHours": "8", "weight": "70",
	}
	p.AnsweredQuestions = 20

	got := eligibility.Classify(p, today)
	if got.Status != eligibility.StatusEligible {
		t.Fatalf("got %s, want Eligible", got.Status)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	p := screened()
	p.Answers.Temporary[models.TemporaryVaccine] = true
	first := eligibility.Classify(p, today)
	for i := 0; i < 10; i++ {
		if got := eligibility.Classify(p, today); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestAnsweredCount(t *testing.T) {
	answers := models.QuestionnaireAnswers{
		Chronic:   map[models.ChronicCondition]bool{models.ChronicSevereDisease: false},
		Temporary: map[models.TemporaryCondition]bool{models.TemporaryVaccine: true},
		Personal:  map[string]string{"occupation": "nurse", "blank": ""},
	}
	if got := answers.AnsweredCount(); got != 3 {
		t.Fatalf("got %d answered, want 3", got)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
