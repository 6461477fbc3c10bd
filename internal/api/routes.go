package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/", handler.Index)
	app.Get("/welcome", handler.ShowWelcomePage)
	app.Get("/signup", handler.ShowSignupPage)
	app.Post("/signup", handler.SendSignupLink)
	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.SendLoginLink)
	app.Post("/verify_token", handler.VerifyToken)
	app.Get("/logout", handler.Logout)

	app.Get("/home", handler.AuthRequired, handler.ShowHome)
	app.Get("/profile", handler.AuthRequired, handler.ShowProfilePage)
	app.Get("/explore", handler.AuthRequired, handler.ShowExplorePage)
	app.Get("/tally-form", handler.AuthRequired, handler.ShowTallyForm)

	app.Post("/tally-webhook", handler.HandleTallyWebhook)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
