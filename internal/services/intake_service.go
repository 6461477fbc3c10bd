package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrMissingWebhookUserID = errors.New("webhook payload is missing the user id field")

type IntakeRepository interface {
	FindByUserID(userID string) (models.Intake, error)
	ExistsByUserID(userID string) (bool, error)
	Upsert(intake *models.Intake) error
	AppendSubmission(submission *models.IntakeSubmission) error
	ListSubmissionsByUserID(userID string) ([]models.IntakeSubmission, error)
}

type IntakeService struct {
	intakes IntakeRepository
}

func NewIntakeService(intakes IntakeRepository) *IntakeService {
	return &IntakeService{intakes: intakes}
}

// SaveSubmission normalizes a webhook payload and writes it through:
// the canonical comprehensive_intake row is replaced atomically, and
// the raw delivery is appended to the submission history.
func (service *IntakeService) SaveSubmission(payload *TallyWebhook, rawBody []byte) (*models.Intake, error) {
	userID := payload.UserID()
	if userID == "" {
		return nil, ErrMissingWebhookUserID
	}

	flat := NormalizeTallyFields(payload.Data.Fields)
	columns := MapIntakeColumns(flat)

	intake := &models.Intake{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	for column, answer := range columns {
		intake.SetAnswer(column, answer)
	}

	if err := service.intakes.Upsert(intake); err != nil {
		return nil, err
	}

	submission := &models.IntakeSubmission{
		ID:           uuid.NewString(),
		UserID:       userID,
		SubmissionID: payload.Data.SubmissionID,
		EventID:      payload.EventID,
		Payload:      datatypes.JSON(rawBody),
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.intakes.AppendSubmission(submission); err != nil {
		return nil, err
	}

	return intake, nil
}

// LatestForUser returns the canonical intake record, or absent=false
// when the user has not submitted the form yet.
func (service *IntakeService) LatestForUser(userID string) (models.Intake, bool, error) {
	intake, err := service.intakes.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Intake{}, false, nil
	}
	if err != nil {
		return models.Intake{}, false, err
	}
	return intake, true, nil
}

func (service *IntakeService) HasIntake(userID string) (bool, error) {
	return service.intakes.ExistsByUserID(userID)
}

func (service *IntakeService) SubmissionHistory(userID string) ([]models.IntakeSubmission, error) {
	return service.intakes.ListSubmissionsByUserID(userID)
}
