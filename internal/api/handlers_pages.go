package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	intake, found, err := handler.intakeService.LatestForUser(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load intake data")
	}

	data := fiber.Map{
		"Title":     "Home",
		"Profile":   profile,
		"HasIntake": found,
	}
	if found {
		data["IntakeEntries"] = buildIntakeEntries(&intake)
	}
	return handler.render(c, "home", data)
}

func (handler *Handler) ShowProfilePage(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	intake, found, err := handler.intakeService.LatestForUser(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load intake data")
	}

	history, err := handler.intakeService.SubmissionHistory(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load submission history")
	}

	data := fiber.Map{
		"Title":     "Profile",
		"Profile":   profile,
		"HasIntake": found,
		"History":   history,
	}
	if found {
		data["IntakeEntries"] = buildIntakeEntries(&intake)
		data["IntakeUpdatedAt"] = intake.UpdatedAt
	}
	return handler.render(c, "profile", data)
}

func (handler *Handler) ShowExplorePage(c *fiber.Ctx) error {
	return handler.render(c, "explore", fiber.Map{"Title": "Explore"})
}

// ShowTallyForm renders the embedded intake form with the hidden
// fields pre-filled so the webhook can attribute the submission.
func (handler *Handler) ShowTallyForm(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	return handler.render(c, "tally_form", fiber.Map{
		"Title":        "Health intake",
		"Profile":      profile,
		"PrefillUser":  profile.ID,
		"PrefillEmail": profile.Email,
	})
}
