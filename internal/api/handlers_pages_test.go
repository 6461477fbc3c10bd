package api

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rutahealth/ruta/internal/models"
	"gorm.io/datatypes"
)

func TestHomeRendersIntakeEntries(t *testing.T) {
	app := newTestApp(t)
	createTestProfile(t, app.database, "user-1", "alice@example.com")

	intake := models.Intake{ID: "intake-1", UserID: "user-1", CreatedAt: time.Now().UTC()}
	intake.SetAnswer("preferred_name", models.TextAnswer("Maya"))
	intake.SetAnswer("goals", models.MultiAnswer("Better sleep", "More energy"))
	if err := app.database.Create(&intake).Error; err != nil {
		t.Fatalf("create intake: %v", err)
	}

	response := getPage(t, app, "/home", sessionCookieValue(t, "user-1", "alice@example.com"))
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	rendered := string(body)

	if !strings.Contains(rendered, "Maya") {
		t.Fatalf("home should show the preferred name")
	}
	if !strings.Contains(rendered, "Better sleep, More energy") {
		t.Fatalf("home should join multi answers for display")
	}
	if !strings.Contains(rendered, "Preferred name") {
		t.Fatalf("home should label intake entries")
	}
	// Unanswered questions stay off the page entirely.
	if strings.Contains(rendered, "Food allergies") {
		t.Fatalf("unanswered entries must not render")
	}
}

func TestProfileRendersAccountAndHistory(t *testing.T) {
	app := newTestApp(t)
	createTestProfile(t, app.database, "user-1", "alice@example.com")
	createTestIntake(t, app.database, "user-1")

	submission := models.IntakeSubmission{
		ID:           "sub-row-1",
		UserID:       "user-1",
		SubmissionID: "sub-1",
		EventID:      "evt-1",
		Payload:      datatypes.JSON([]byte(`{}`)),
		CreatedAt:    time.Now().UTC(),
	}
	if err := app.database.Create(&submission).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}

	response := getPage(t, app, "/profile", sessionCookieValue(t, "user-1", "alice@example.com"))
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	rendered := string(body)

	if !strings.Contains(rendered, "alice@example.com") {
		t.Fatalf("profile should show the account email")
	}
	if !strings.Contains(rendered, "Submission history") {
		t.Fatalf("profile should show the history section")
	}
	if !strings.Contains(rendered, "sub-1") {
		t.Fatalf("history should list the submission id")
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	response := getPage(t, app, "/healthz", "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	body, _ := io.ReadAll(response.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", body)
	}
}
