package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rutahealth/ruta/internal/db"
	"github.com/rutahealth/ruta/internal/identity"
	"github.com/rutahealth/ruta/internal/models"
	"github.com/rutahealth/ruta/internal/tokenstore"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key"

type fakeIdentityClient struct {
	mu           sync.Mutex
	usersByToken map[string]identity.User
	sentLinks    []string
	signOuts     []string
}

func newFakeIdentityClient() *fakeIdentityClient {
	return &fakeIdentityClient{usersByToken: make(map[string]identity.User)}
}

func (client *fakeIdentityClient) SendMagicLink(_ context.Context, email string, _ string) error {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.sentLinks = append(client.sentLinks, email)
	return nil
}

func (client *fakeIdentityClient) GetUser(_ context.Context, accessToken string) (identity.User, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	user, ok := client.usersByToken[accessToken]
	if !ok {
		return identity.User{}, errors.New("invalid token")
	}
	return user, nil
}

func (client *fakeIdentityClient) SignOut(_ context.Context, accessToken string) error {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.signOuts = append(client.signOuts, accessToken)
	return nil
}

func (client *fakeIdentityClient) sentCount() int {
	client.mu.Lock()
	defer client.mu.Unlock()
	return len(client.sentLinks)
}

// fakeWelcomeMailer reports deliveries over a channel because the
// handler sends the welcome email from a goroutine.
type fakeWelcomeMailer struct {
	delivered chan string
}

func newFakeWelcomeMailer() *fakeWelcomeMailer {
	return &fakeWelcomeMailer{delivered: make(chan string, 4)}
}

func (mailer *fakeWelcomeMailer) SendWelcomeEmail(to string, _ string) error {
	mailer.delivered <- to
	return nil
}

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	identity *fakeIdentityClient
	mailer   *fakeWelcomeMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithSigningSecret(t, "")
}

func newTestAppWithSigningSecret(t *testing.T, tallySigningSecret string) *testApp {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	apiDir := filepath.Dir(testFile)
	templatesDir := filepath.Join(filepath.Dir(apiDir), "templates")

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ruta-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	identityClient := newFakeIdentityClient()
	welcomeMailer := newFakeWelcomeMailer()

	handler, err := NewHandler(database, Options{
		Identity:           identityClient,
		Mailer:             welcomeMailer,
		Tokens:             tokenstore.NewMemoryStore(),
		SecretKey:          testSecretKey,
		TemplateDir:        templatesDir,
		PublicBaseURL:      "http://localhost:5000",
		TallySigningSecret: tallySigningSecret,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{
		app:      app,
		handler:  handler,
		database: database,
		identity: identityClient,
		mailer:   welcomeMailer,
	}
}

func createTestProfile(t *testing.T, database *gorm.DB, userID string, email string) models.Profile {
	t.Helper()

	profile := models.Profile{
		ID:            userID,
		Email:         email,
		FullName:      "Test User",
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := database.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func createTestIntake(t *testing.T, database *gorm.DB, userID string) {
	t.Helper()

	intake := models.Intake{ID: "intake-" + userID, UserID: userID, CreatedAt: time.Now().UTC()}
	intake.SetAnswer("preferred_name", models.TextAnswer("Test"))
	if err := database.Create(&intake).Error; err != nil {
		t.Fatalf("create intake: %v", err)
	}
}

func sessionCookieValue(t *testing.T, userID string, email string) string {
	t.Helper()

	now := time.Now()
	claims := sessionClaims{
		UserID:        userID,
		Email:         email,
		ProviderToken: "provider-token",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("sign session token: %v", err)
	}
	return sessionCookieName + "=" + token
}

func responseCookie(response *http.Response, name string) (*http.Cookie, bool) {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie, true
		}
	}
	return nil, false
}

func decodeFlashCookie(t *testing.T, response *http.Response) FlashPayload {
	t.Helper()

	cookie, ok := responseCookie(response, flashCookieName)
	if !ok || cookie.Value == "" {
		return FlashPayload{}
	}

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		t.Fatalf("decode flash cookie: %v", err)
	}
	var payload FlashPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("parse flash cookie: %v", err)
	}
	return payload
}
