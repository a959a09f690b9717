package models

// ChronicCondition identifies a questionnaire answer that permanently
// impedes donation.
type ChronicCondition string

const (
	ChronicInfectiousDisease ChronicCondition = "infectiousDisease"
	ChronicInjectableDrugUse ChronicCondition = "injectableDrugUse"
	ChronicSevereDisease     ChronicCondition = "severeDisease"
)

// AllChronicConditions lists every chronic condition the questionnaire asks
// about. Keep in sync with the constants above.
func AllChronicConditions() []ChronicCondition {
	return []ChronicCondition{
		ChronicInfectiousDisease,
		ChronicInjectableDrugUse,
		ChronicSevereDisease,
	}
}

// TemporaryCondition identifies a questionnaire answer that impedes donation
// for a limited time.
type TemporaryCondition string

const (
	TemporaryFluOrCold            TemporaryCondition = "fluOrCold"
	TemporaryPregnancy            TemporaryCondition = "pregnancyOrBreastfeeding"
	TemporaryTattooOrMakeup       TemporaryCondition = "tattooOrPermanentMakeup"
	TemporaryDentalTreatment      TemporaryCondition = "dentalTreatment"
	TemporarySurgery              TemporaryCondition = "recentSurgery"
	TemporaryEndoscopy            TemporaryCondition = "recentEndoscopy"
	TemporaryVaccine              TemporaryCondition = "recentVaccine"
	TemporaryMedication           TemporaryCondition = "currentMedication"
	TemporaryTransfusion          TemporaryCondition = "recentTransfusion"
	TemporaryMultiplePartners     TemporaryCondition = "multipleSexualPartners"
	TemporaryNonInjectableDrugUse TemporaryCondition = "nonInjectableDrugUse"
	TemporaryAlcohol              TemporaryCondition = "recentAlcohol"
	TemporaryEndemicAreaTravel    TemporaryCondition = "endemicAreaTravel"
)

// AllTemporaryConditions lists every temporary condition the questionnaire
// asks about.
func AllTemporaryConditions() []TemporaryCondition {
	return []TemporaryCondition{
		TemporaryFluOrCold,
		TemporaryPregnancy,
		TemporaryTattooOrMakeup,
		TemporaryDentalTreatment,
		TemporarySurgery,
		TemporaryEndoscopy,
		TemporaryVaccine,
		TemporaryMedication,
		TemporaryTransfusion,
		TemporaryMultiplePartners,
		TemporaryNonInjectableDrugUse,
		TemporaryAlcohol,
		TemporaryEndemicAreaTravel,
	}
}

// QuestionnaireAnswers holds a donor's screening answers. A condition absent
// from its map was not answered; an entry with value false is an explicit
// "no".
type QuestionnaireAnswers struct {
	Chronic   map[ChronicCondition]bool   `bson:"chronic,omitempty" json:"chronic,omitempty"`
	Temporary map[TemporaryCondition]bool `bson:"temporary,omitempty" json:"temporary,omitempty"`
	// Personal holds the free-form answers from the personal-information
	// section (occupation, travel details and the like).
	Personal map[string]string `bson:"personal,omitempty" json:"personal,omitempty"`
}

// AnsweredCount returns the number of questionnaire fields the donor filled
// in, counting explicit "no" answers and non-empty personal fields.
func (q QuestionnaireAnswers) AnsweredCount() int {
	n := len(q.Chronic) + len(q.Temporary)
	for _, v := range q.Personal {
		if v != "" {
			n++
		}
	}
	return n
}

// HasChronic reports whether any chronic condition was answered "yes".
func (q QuestionnaireAnswers) HasChronic() bool {
	for _, c := range AllChronicConditions() {
		if q.Chronic[c] {
			return true
		}
	}
	return false
}

// HasTemporary reports whether any temporary condition was answered "yes".
func (q QuestionnaireAnswers) HasTemporary() bool {
	for _, c := range AllTemporaryConditions() {
		if q.Temporary[c] {
			return true
		}
	}
	return false
}
