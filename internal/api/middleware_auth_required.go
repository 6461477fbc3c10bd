package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired gates page routes on a valid session whose profile still
// exists. Users without an intake record are forced onto the intake
// form before reaching any other gated page.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	claims, err := handler.parseSessionCookie(c)
	if err != nil {
		handler.setFlashCookie(c, FlashPayload{Warning: "Please log in to access this page."})
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	profile, found, err := handler.profileService.FindByID(claims.UserID)
	if err != nil || !found {
		handler.clearSessionCookie(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals(contextSessionKey, claims)
	c.Locals(contextProfileKey, &profile)

	if !isIntakeFormPath(c.Path()) {
		hasIntake, err := handler.intakeService.HasIntake(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("failed to load intake state")
		}
		if !hasIntake {
			return c.Redirect("/tally-form", fiber.StatusSeeOther)
		}
	}

	return c.Next()
}

func isIntakeFormPath(path string) bool {
	cleanPath := strings.TrimSpace(path)
	return cleanPath == "/tally-form" || strings.HasPrefix(cleanPath, "/tally-form/")
}
