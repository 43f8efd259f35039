package controllers

import (
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// IssueToken signs a token that grants control of one table.
func IssueToken(secret []byte, tableID string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["table_id"] = tableID
	return token.SignedString(secret)
}

// TableOf returns the table granted by the verified token of the request.
func TableOf(c *fiber.Ctx) (string, bool) {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	id, ok := claims["table_id"].(string)
	return id, ok
}

// RequireTable rejects tokens issued for another table than :id.
func RequireTable(c *fiber.Ctx) error {
	id, ok := TableOf(c)
	if !ok || id != c.Params("id") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "token does not grant this table"})
	}
	return c.Next()
}

func Cur(c *fiber.Ctx) error {
	id, ok := TableOf(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.JSON(fiber.Map{"table_id": id})
}
