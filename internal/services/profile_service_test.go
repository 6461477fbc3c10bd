package services

import (
	"testing"

	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/gorm"
)

type fakeProfileRepository struct {
	byID map[string]models.Profile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{byID: make(map[string]models.Profile)}
}

func (repo *fakeProfileRepository) FindByID(userID string) (models.Profile, error) {
	profile, ok := repo.byID[userID]
	if !ok {
		return models.Profile{}, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (repo *fakeProfileRepository) CreateIfAbsent(profile *models.Profile) (bool, error) {
	if _, ok := repo.byID[profile.ID]; ok {
		return false, nil
	}
	repo.byID[profile.ID] = *profile
	return true, nil
}

func (repo *fakeProfileRepository) UpdateByID(userID string, updates map[string]any) error {
	profile, ok := repo.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if verified, ok := updates["email_verified"].(bool); ok {
		profile.EmailVerified = verified
	}
	if name, ok := updates["full_name"].(string); ok {
		profile.FullName = name
	}
	repo.byID[userID] = profile
	return nil
}

func TestEnsureProfileCreatesOnFirstLogin(t *testing.T) {
	service := NewProfileService(newFakeProfileRepository())

	profile, created, err := service.EnsureProfile("user-1", "alice@example.com", "", true)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if !created {
		t.Fatalf("first login should create the profile")
	}
	if profile.FullName != "alice" {
		t.Fatalf("full name should default to the email local part, got %q", profile.FullName)
	}
	if !profile.EmailVerified {
		t.Fatalf("verified flag not stored")
	}
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	repo := newFakeProfileRepository()
	service := NewProfileService(repo)

	first, created, err := service.EnsureProfile("user-1", "alice@example.com", "Alice", true)
	if err != nil || !created {
		t.Fatalf("first ensure failed: created=%v err=%v", created, err)
	}

	second, created, err := service.EnsureProfile("user-1", "alice@example.com", "Someone Else", true)
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if created {
		t.Fatalf("second login must not report creation")
	}
	if second.FullName != first.FullName {
		t.Fatalf("existing profile must win: %q vs %q", second.FullName, first.FullName)
	}
}

func TestDefaultFullName(t *testing.T) {
	cases := []struct {
		fullName string
		email    string
		want     string
	}{
		{"Alice Smith", "alice@example.com", "Alice Smith"},
		{"  ", "alice@example.com", "alice"},
		{"", "bob.jones@company.io", "bob.jones"},
		{"", "@example.com", "User"},
		{"", "", "User"},
	}
	for _, tc := range cases {
		if got := DefaultFullName(tc.fullName, tc.email); got != tc.want {
			t.Fatalf("DefaultFullName(%q, %q) = %q, want %q", tc.fullName, tc.email, got, tc.want)
		}
	}
}
