// Package eligibility derives a donor's current eligibility status from the
// screening questionnaire and the donation-interval date. Classification is a
// pure function over its inputs; the status is never stored as ground truth.
package eligibility

import (
	"time"

	"hemovida/models"
)

// Status is the derived donor classification.
type Status string

const (
	StatusNotScreened           Status = "NotScreened"
	StatusChronicallyIneligible Status = "ChronicallyIneligible"
	StatusTemporarilyIneligible Status = "TemporarilyIneligible"
	StatusEligible              Status = "Eligible"
)

// Reasons attached to a TemporarilyIneligible result.
const (
	ReasonPendingCondition = "pending health condition"
	ReasonWaitingInterval  = "waiting interval"
)

// MinScreeningAnswers is the minimum number of answered questionnaire fields
// for the screening to count as submitted. Below this the donor is treated as
// not screened at all; a partially filled first section does not qualify.
const MinScreeningAnswers = 7

// EligibleOnFormat is the display format for the waiting-interval target date.
const EligibleOnFormat = "02/01/2006"

// Profile is the view of a donor the classifier needs.
type Profile struct {
	Answers           models.QuestionnaireAnswers
	AnsweredQuestions int
	NextEligibleDate  *time.Time
}

// ProfileFromUser builds a classifier profile from a stored user record.
func ProfileFromUser(u *models.User) Profile {
	p := Profile{
		AnsweredQuestions: u.AnsweredQuestions,
		NextEligibleDate:  u.NextEligibleDate,
	}
	if u.Questionnaire != nil {
		p.Answers = *u.Questionnaire
	}
	return p
}

// Result carries the derived status plus display details for the temporary
// cases.
type Result struct {
	Status Status `json:"status"`
	// Reason is set for TemporarilyIneligible results.
	Reason string `json:"reason,omitempty"`
	// EligibleOn is the formatted date the waiting interval ends, set only
	// for the waiting-interval reason.
	EligibleOn string `json:"eligibleOn,omitempty"`
}

// Classify maps a donor profile to an eligibility status. First match wins:
// the order below encodes precedence, a chronic condition always dominates
// temporary conditions and date checks. Unanswered flags count as "no".
func Classify(p Profile, today time.Time) Result {
	if p.AnsweredQuestions < MinScreeningAnswers {
		return Result{Status: StatusNotScreened}
	}
	if p.Answers.HasChronic() {
		return Result{Status: StatusChronicallyIneligible}
	}
	if p.Answers.HasTemporary() {
		return Result{Status: StatusTemporarilyIneligible, Reason: ReasonPendingCondition}
	}
	if p.NextEligibleDate != nil && dateOnly(*p.NextEligibleDate).After(dateOnly(today)) {
		return Result{
			Status:     StatusTemporarilyIneligible,
			Reason:     ReasonWaitingInterval,
			EligibleOn: p.NextEligibleDate.Format(EligibleOnFormat),
		}
	}
	return Result{Status: StatusEligible}
}

// dateOnly truncates a timestamp to its calendar date, time of day ignored.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
