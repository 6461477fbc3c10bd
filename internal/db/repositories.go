package db

import "gorm.io/gorm"

type Repositories struct {
	Profiles *ProfileRepository
	Intakes  *IntakeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Profiles: NewProfileRepository(database),
		Intakes:  NewIntakeRepository(database),
	}
}
