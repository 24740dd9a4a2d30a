package models

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform JSON response shape for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondData writes a successful response carrying a payload.
func RespondData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

// RespondMessage writes a successful response with just a message.
func RespondMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message})
}

// RespondMessageData writes a successful response with both a message and a payload.
func RespondMessageData(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

// RespondBadRequest writes a 400 for malformed requests (bad JSON,
// unparseable IDs). Business failures use RespondWithError instead.
func RespondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{Success: false, Message: message})
}
