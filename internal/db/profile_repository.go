package db

import (
	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByID(userID string) (models.Profile, error) {
	var profile models.Profile
	if err := repo.database.First(&profile, "id = ?", userID).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) ExistsByID(userID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Profile{}).
		Where("id = ?", userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateIfAbsent inserts the profile unless a row with the same id
// already exists, reporting whether the insert happened. Two
// near-simultaneous first logins therefore cannot produce two rows;
// the loser of the race keeps the winner's row.
func (repo *ProfileRepository) CreateIfAbsent(profile *models.Profile) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(profile)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ProfileRepository) UpdateByID(userID string, updates map[string]any) error {
	return repo.database.Model(&models.Profile{}).Where("id = ?", userID).Updates(updates).Error
}
