package handlers

import "github.com/gofiber/fiber/v2"

// respond writes the success envelope shared by every endpoint.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
