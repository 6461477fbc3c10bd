package models

import (
	"time"

	"gorm.io/datatypes"
)

// Intake mirrors one row of the comprehensive_intake table: the current
// health questionnaire answers for a single user. Exactly one row per
// user id exists; repeated submissions overwrite it in place.
type Intake struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"uniqueIndex:uidx_intake_user;not null"`

	PreferredName          Answer `gorm:"serializer:json"`
	Birthday               Answer `gorm:"serializer:json"`
	Location               Answer `gorm:"serializer:json"`
	BiologicalSex          Answer `gorm:"serializer:json"`
	Goals                  Answer `gorm:"serializer:json"`
	ChronicConditions      Answer `gorm:"serializer:json"`
	MedicationsSupplements Answer `gorm:"serializer:json"`
	PregnancyStatus        Answer `gorm:"serializer:json"`
	HasMenstrualCycle      Answer `gorm:"serializer:json"`
	MenstrualSymptoms      Answer `gorm:"serializer:json"`
	BowelMovementFrequency Answer `gorm:"serializer:json"`
	BowelMovementType      Answer `gorm:"serializer:json"`
	DigestiveSymptoms      Answer `gorm:"serializer:json"`
	OtherSymptoms          Answer `gorm:"serializer:json"`
	BodyTemperature        Answer `gorm:"serializer:json"`
	NervousSystemSignals   Answer `gorm:"serializer:json"`
	EnergyPattern          Answer `gorm:"serializer:json"`
	SleepPattern           Answer `gorm:"serializer:json"`
	MovementLevel          Answer `gorm:"serializer:json"`
	AppetitePattern        Answer `gorm:"serializer:json"`
	DietType               Answer `gorm:"serializer:json"`
	FoodAllergies          Answer `gorm:"serializer:json"`
	EmotionalPatterns      Answer `gorm:"serializer:json"`
	BirthHistory           Answer `gorm:"serializer:json"`
	PastMedications        Answer `gorm:"serializer:json"`
	SignificantHistory     Answer `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (Intake) TableName() string {
	return "comprehensive_intake"
}

// IntakeSubmission is the append-only audit row kept for every webhook
// delivery, including the raw payload. The profile page renders these
// as submission history; comprehensive_intake stays one row per user.
type IntakeSubmission struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"index:idx_intake_submissions_user;not null"`
	SubmissionID string
	EventID      string
	Payload      datatypes.JSON
	CreatedAt    time.Time `gorm:"not null"`
}

func (IntakeSubmission) TableName() string {
	return "intake_submissions"
}

// IntakeAnswerColumns lists the answer columns in questionnaire order.
// The order matches the Tally form and drives both the upsert column
// set and page rendering.
var IntakeAnswerColumns = []string{
	"preferred_name",
	"birthday",
	"location",
	"biological_sex",
	"goals",
	"chronic_conditions",
	"medications_supplements",
	"pregnancy_status",
	"has_menstrual_cycle",
	"menstrual_symptoms",
	"bowel_movement_frequency",
	"bowel_movement_type",
	"digestive_symptoms",
	"other_symptoms",
	"body_temperature",
	"nervous_system_signals",
	"energy_pattern",
	"sleep_pattern",
	"movement_level",
	"appetite_pattern",
	"diet_type",
	"food_allergies",
	"emotional_patterns",
	"birth_history",
	"past_medications",
	"significant_history",
}

func (intake *Intake) answerFieldByColumn(column string) *Answer {
	switch column {
	case "preferred_name":
		return &intake.PreferredName
	case "birthday":
		return &intake.Birthday
	case "location":
		return &intake.Location
	case "biological_sex":
		return &intake.BiologicalSex
	case "goals":
		return &intake.Goals
	case "chronic_conditions":
		return &intake.ChronicConditions
	case "medications_supplements":
		return &intake.MedicationsSupplements
	case "pregnancy_status":
		return &intake.PregnancyStatus
	case "has_menstrual_cycle":
		return &intake.HasMenstrualCycle
	case "menstrual_symptoms":
		return &intake.MenstrualSymptoms
	case "bowel_movement_frequency":
		return &intake.BowelMovementFrequency
	case "bowel_movement_type":
		return &intake.BowelMovementType
	case "digestive_symptoms":
		return &intake.DigestiveSymptoms
	case "other_symptoms":
		return &intake.OtherSymptoms
	case "body_temperature":
		return &intake.BodyTemperature
	case "nervous_system_signals":
		return &intake.NervousSystemSignals
	case "energy_pattern":
		return &intake.EnergyPattern
	case "sleep_pattern":
		return &intake.SleepPattern
	case "movement_level":
		return &intake.MovementLevel
	case "appetite_pattern":
		return &intake.AppetitePattern
	case "diet_type":
		return &intake.DietType
	case "food_allergies":
		return &intake.FoodAllergies
	case "emotional_patterns":
		return &intake.EmotionalPatterns
	case "birth_history":
		return &intake.BirthHistory
	case "past_medications":
		return &intake.PastMedications
	case "significant_history":
		return &intake.SignificantHistory
	}
	return nil
}

// SetAnswer assigns an answer by column name; unknown columns report false.
func (intake *Intake) SetAnswer(column string, value Answer) bool {
	field := intake.answerFieldByColumn(column)
	if field == nil {
		return false
	}
	*field = value
	return true
}

// AnswerByColumn reads an answer by column name.
func (intake *Intake) AnswerByColumn(column string) (Answer, bool) {
	field := intake.answerFieldByColumn(column)
	if field == nil {
		return Answer{}, false
	}
	return *field, true
}
