package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type verifyTokenRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// VerifyToken exchanges provider-issued magic-link tokens for a local
// session. First logins create the profile row and decide whether the
// user is routed to the intake form or home.
func (handler *Handler) VerifyToken(c *fiber.Ctx) error {
	var request verifyTokenRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if strings.TrimSpace(request.AccessToken) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing access token",
		})
	}

	user, err := handler.identity.GetUser(c.Context(), request.AccessToken)
	if err != nil {
		log.Printf("verify token failed: %v", err)
		return c.JSON(fiber.Map{"success": false, "error": "Invalid user"})
	}

	handler.ensureDependencies()
	profile, created, err := handler.profileService.EnsureProfile(user.ID, user.Email, "", user.EmailConfirmed())
	if err != nil {
		log.Printf("ensure profile for %s failed: %v", user.ID, err)
		return c.JSON(fiber.Map{"success": false, "error": "Failed to load profile"})
	}
	if created {
		go func(email string, name string) {
			if err := handler.mailer.SendWelcomeEmail(email, name); err != nil {
				log.Printf("send welcome email to %s failed: %v", email, err)
			}
		}(profile.Email, profile.FullName)
	}

	hasIntake, err := handler.intakeService.HasIntake(user.ID)
	if err != nil {
		log.Printf("load intake state for %s failed: %v", user.ID, err)
		return c.JSON(fiber.Map{"success": false, "error": "Failed to load intake state"})
	}

	// The cookie is issued last so a failed login attempt never leaves a
	// session behind.
	if err := handler.setSessionCookie(c, sessionClaims{
		UserID:        user.ID,
		Email:         user.Email,
		ProviderToken: request.AccessToken,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create session",
		})
	}

	redirect := "/home"
	if !hasIntake {
		redirect = "/tally-form"
	}
	return c.JSON(fiber.Map{"success": true, "redirect": redirect})
}

// Logout clears the local session unconditionally; the provider-side
// sign-out is best effort.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if claims, err := handler.parseSessionCookie(c); err == nil && claims.ProviderToken != "" {
		if err := handler.identity.SignOut(c.Context(), claims.ProviderToken); err != nil {
			log.Printf("provider sign-out failed: %v", err)
		}
	}

	handler.clearSessionCookie(c)
	handler.setFlashCookie(c, FlashPayload{Info: "You have been logged out."})
	return c.Redirect("/welcome", fiber.StatusSeeOther)
}
