package api

import (
	"log"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Index(c *fiber.Ctx) error {
	if handler.hasSession(c) {
		return c.Redirect("/home", fiber.StatusSeeOther)
	}
	return c.Redirect("/welcome", fiber.StatusSeeOther)
}

func (handler *Handler) ShowWelcomePage(c *fiber.Ctx) error {
	return handler.render(c, "welcome", fiber.Map{"Title": "Welcome"})
}

func (handler *Handler) ShowSignupPage(c *fiber.Ctx) error {
	return handler.render(c, "signup", fiber.Map{"Title": "Sign up"})
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return handler.render(c, "login", fiber.Map{"Title": "Log in"})
}

// SendSignupLink and SendLoginLink both request a magic link; the
// provider creates missing accounts, so the two forms differ only in
// the page they live on.
func (handler *Handler) SendSignupLink(c *fiber.Ctx) error {
	return handler.sendMagicLink(c, "/signup", "Check your email for the signup link.")
}

func (handler *Handler) SendLoginLink(c *fiber.Ctx) error {
	return handler.sendMagicLink(c, "/login", "Check your email for the login link.")
}

func (handler *Handler) sendMagicLink(c *fiber.Ctx, formPath string, sentMessage string) error {
	email := normalizeEmail(c.FormValue("email"))
	if email == "" {
		handler.setFlashCookie(c, FlashPayload{Error: "Please enter a valid email address."})
		return c.Redirect(formPath, fiber.StatusSeeOther)
	}

	allowed, err := handler.tokens.PutIfAbsent(c.Context(), "magiclink:"+email, "sent", magicLinkCooldown)
	if err != nil {
		log.Printf("magic link throttle check failed: %v", err)
		allowed = true
	}
	if !allowed {
		handler.setFlashCookie(c, FlashPayload{Warning: "A link was sent recently. Please wait a minute before requesting another."})
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := handler.identity.SendMagicLink(c.Context(), email, handler.publicBaseURL+"/login"); err != nil {
		log.Printf("send magic link to %s failed: %v", email, err)
	}

	// The flash never reveals whether the address has an account.
	handler.setFlashCookie(c, FlashPayload{Info: sentMessage})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
