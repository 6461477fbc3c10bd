package api

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

var pageTemplateNames = []string{
	"welcome",
	"signup",
	"login",
	"home",
	"profile",
	"explore",
	"tally_form",
}

func parsePageTemplates(templateDir string, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	payload := fiber.Map{
		"Flash":     handler.popFlashCookie(c),
		"CSRFToken": csrfToken(c),
	}
	if profile, ok := currentProfile(c); ok {
		payload["CurrentProfile"] = profile
	}
	for key, value := range data {
		payload[key] = value
	}
	return payload
}
