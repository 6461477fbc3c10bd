package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(userID string) (models.Profile, error)
	CreateIfAbsent(profile *models.Profile) (bool, error)
	UpdateByID(userID string, updates map[string]any) error
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// EnsureProfile returns the profile for the given provider user id,
// creating it on first login. The created flag lets callers trigger
// first-login side effects (the welcome email).
func (service *ProfileService) EnsureProfile(userID string, email string, fullName string, emailVerified bool) (models.Profile, bool, error) {
	existing, err := service.profiles.FindByID(userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, false, err
	}

	profile := models.Profile{
		ID:            userID,
		Email:         email,
		FullName:      DefaultFullName(fullName, email),
		EmailVerified: emailVerified,
		CreatedAt:     time.Now().UTC(),
	}
	inserted, err := service.profiles.CreateIfAbsent(&profile)
	if err != nil {
		return models.Profile{}, false, err
	}
	if !inserted {
		// Lost a race with another first login; both callers see the
		// surviving row.
		stored, err := service.profiles.FindByID(userID)
		if err != nil {
			return models.Profile{}, false, err
		}
		return stored, false, nil
	}
	return profile, true, nil
}

func (service *ProfileService) FindByID(userID string) (models.Profile, bool, error) {
	profile, err := service.profiles.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	return profile, true, nil
}

func (service *ProfileService) UpdateProfile(userID string, updates map[string]any) error {
	return service.profiles.UpdateByID(userID, updates)
}

func (service *ProfileService) MarkEmailVerified(userID string) error {
	return service.profiles.UpdateByID(userID, map[string]any{"email_verified": true})
}

// DefaultFullName falls back to the email's local part when no display
// name was provided, and to "User" when even the email is unusable.
func DefaultFullName(fullName string, email string) string {
	name := strings.TrimSpace(fullName)
	if name != "" {
		return name
	}

	localPart, _, found := strings.Cut(strings.TrimSpace(email), "@")
	if found && localPart != "" {
		return localPart
	}
	return "User"
}
