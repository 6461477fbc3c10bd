package api

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/rutahealth/ruta/internal/services"
)

const tallySignatureHeader = "Tally-Signature"

// HandleTallyWebhook ingests a form-submission delivery: authenticate
// the payload, attribute it to a user, then normalize and upsert the
// intake record. Redeliveries of an already-processed event are
// acknowledged without a second write.
func (handler *Handler) HandleTallyWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()

	if !verifyTallySignature(handler.tallySigningSecret, rawBody, c.Get(tallySignatureHeader)) {
		return apiError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	var payload services.TallyWebhook
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	if payload.UserID() == "" {
		log.Printf("webhook delivery without user id (event %s)", payload.EventID)
		return apiError(c, fiber.StatusBadRequest, "Missing user_id")
	}

	dedupKey := ""
	if payload.EventID != "" {
		dedupKey = "tally:event:" + payload.EventID
		fresh, err := handler.tokens.PutIfAbsent(c.Context(), dedupKey, "seen", webhookDedupTTL)
		if err != nil {
			log.Printf("webhook dedup check failed: %v", err)
			dedupKey = ""
			fresh = true
		}
		if !fresh {
			return c.JSON(fiber.Map{"status": "success"})
		}
	}

	handler.ensureDependencies()
	if _, err := handler.intakeService.SaveSubmission(&payload, rawBody); err != nil {
		// A failed write must not poison the dedup key, or the sender's
		// retry of this event would be acked without storing anything.
		if dedupKey != "" {
			if delErr := handler.tokens.Delete(c.Context(), dedupKey); delErr != nil {
				log.Printf("webhook dedup release failed (event %s): %v", payload.EventID, delErr)
			}
		}
		if errors.Is(err, services.ErrMissingWebhookUserID) {
			return apiError(c, fiber.StatusBadRequest, "Missing user_id")
		}
		log.Printf("webhook processing failed (event %s): %v", payload.EventID, err)
		return apiError(c, fiber.StatusBadRequest, "Failed to process submission")
	}

	return c.JSON(fiber.Map{"status": "success"})
}
