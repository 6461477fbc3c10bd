package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rutahealth/ruta/internal/api"
	"github.com/rutahealth/ruta/internal/config"
	"github.com/rutahealth/ruta/internal/db"
	"github.com/rutahealth/ruta/internal/identity"
	"github.com/rutahealth/ruta/internal/mailer"
	"github.com/rutahealth/ruta/internal/tokenstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	identityClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey)

	var welcomeMailer api.WelcomeMailer = mailer.LogSender{}
	if cfg.MailerConfigured() {
		welcomeMailer = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	var tokens tokenstore.Store = tokenstore.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore := tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		cancelPing()
		tokens = redisStore
	} else {
		log.Printf("REDIS_ADDR not set, using in-process token store (single instance only)")
	}

	handler, err := api.NewHandler(database, api.Options{
		Identity:           identityClient,
		Mailer:             welcomeMailer,
		Tokens:             tokens,
		SecretKey:          cfg.SessionSecret,
		TemplateDir:        filepath.Join("internal", "templates"),
		CookieSecure:       cfg.CookieSecure,
		PublicBaseURL:      strings.TrimRight(cfg.PublicBaseURL, "/"),
		TallySigningSecret: cfg.TallySigningSecret,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Ruta",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "ruta_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		// Token-authenticated JSON endpoints: the webhook is signed by
		// the form service and verify_token carries provider tokens.
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/tally-webhook" || c.Path() == "/verify_token"
		},
	}))

	app.Static("/static", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Ruta listening on http://0.0.0.0:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
