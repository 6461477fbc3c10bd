package api

import (
	"github.com/rutahealth/ruta/internal/db"
	"github.com/rutahealth/ruta/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	handler.intakeService = services.NewIntakeService(handler.repositories.Intakes)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	}
	if handler.intakeService == nil {
		handler.intakeService = services.NewIntakeService(handler.repositories.Intakes)
	}
}
