package api

import (
	"context"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rutahealth/ruta/internal/db"
	"github.com/rutahealth/ruta/internal/identity"
	"github.com/rutahealth/ruta/internal/models"
	"github.com/rutahealth/ruta/internal/services"
	"github.com/rutahealth/ruta/internal/tokenstore"
	"gorm.io/gorm"
)

const (
	sessionCookieName = "ruta_session"
	flashCookieName   = "ruta_flash"

	contextProfileKey = "current_profile"
	contextSessionKey = "current_session"
)

const (
	sessionTokenTTL = 7 * 24 * time.Hour

	// One magic link per address per cooldown window.
	magicLinkCooldown = 60 * time.Second

	// Webhook event ids are remembered long enough to absorb Tally's
	// redelivery attempts.
	webhookDedupTTL = 24 * time.Hour
)

// IdentityClient is the slice of the identity provider API the handlers
// use; satisfied by identity.Client and by fakes in tests.
type IdentityClient interface {
	SendMagicLink(ctx context.Context, email string, redirectTo string) error
	GetUser(ctx context.Context, accessToken string) (identity.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

type WelcomeMailer interface {
	SendWelcomeEmail(to string, name string) error
}

type Handler struct {
	db                 *gorm.DB
	identity           IdentityClient
	mailer             WelcomeMailer
	tokens             tokenstore.Store
	secretKey          []byte
	cookieSecure       bool
	publicBaseURL      string
	tallySigningSecret []byte
	templates          map[string]*template.Template

	repositories   *db.Repositories
	profileService *services.ProfileService
	intakeService  *services.IntakeService
}

// Options carries the collaborators constructed once at process start.
type Options struct {
	Identity           IdentityClient
	Mailer             WelcomeMailer
	Tokens             tokenstore.Store
	SecretKey          string
	TemplateDir        string
	CookieSecure       bool
	PublicBaseURL      string
	TallySigningSecret string
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	templates, err := parsePageTemplates(options.TemplateDir, pageTemplateNames)
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		db:                 database,
		identity:           options.Identity,
		mailer:             options.Mailer,
		tokens:             options.Tokens,
		secretKey:          []byte(options.SecretKey),
		cookieSecure:       options.CookieSecure,
		publicBaseURL:      options.PublicBaseURL,
		tallySigningSecret: []byte(options.TallySigningSecret),
		templates:          templates,
	}
	return handler.withDependencies(database), nil
}

func currentProfile(c *fiber.Ctx) (*models.Profile, bool) {
	profile, ok := c.Locals(contextProfileKey).(*models.Profile)
	return profile, ok
}

func currentSession(c *fiber.Ctx) (*sessionClaims, bool) {
	claims, ok := c.Locals(contextSessionKey).(*sessionClaims)
	return claims, ok
}
