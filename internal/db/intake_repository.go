package db

import (
	"time"

	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IntakeRepository struct {
	database *gorm.DB
}

func NewIntakeRepository(database *gorm.DB) *IntakeRepository {
	return &IntakeRepository{database: database}
}

func (repo *IntakeRepository) FindByUserID(userID string) (models.Intake, error) {
	var intake models.Intake
	if err := repo.database.First(&intake, "user_id = ?", userID).Error; err != nil {
		return models.Intake{}, err
	}
	return intake, nil
}

func (repo *IntakeRepository) ExistsByUserID(userID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Intake{}).
		Where("user_id = ?", userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Upsert writes the intake row as a single conditional insert keyed on
// user_id. A conflicting row keeps its id and created_at; every answer
// column and updated_at take the incoming values. Concurrent webhook
// deliveries for one user can therefore never double-insert or
// interleave a read-then-write race.
func (repo *IntakeRepository) Upsert(intake *models.Intake) error {
	now := time.Now().UTC()
	if intake.CreatedAt.IsZero() {
		intake.CreatedAt = now
	}
	intake.UpdatedAt = now

	assignments := make([]string, 0, len(models.IntakeAnswerColumns)+1)
	assignments = append(assignments, models.IntakeAnswerColumns...)
	assignments = append(assignments, "updated_at")

	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(assignments),
	}).Create(intake).Error
}

func (repo *IntakeRepository) AppendSubmission(submission *models.IntakeSubmission) error {
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	return repo.database.Create(submission).Error
}

func (repo *IntakeRepository) ListSubmissionsByUserID(userID string) ([]models.IntakeSubmission, error) {
	submissions := make([]models.IntakeSubmission, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
