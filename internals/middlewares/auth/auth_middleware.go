package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"gdm_backend/internals/configs"
)

// AuthMiddleware valida o token Bearer e guarda as claims no contexto.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		claims := jwt.MapClaims{}
		_, parseErr := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWTSecret), nil
		})
		if parseErr != nil {
			log.Printf("[AUTH] token inválido: %v", parseErr)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token inválido ou expirado",
			})
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Token não fornecido")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Formato de token inválido. Use: Bearer <token>")
	}
	return parts[1], nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if id, ok := claims["id"].(float64); ok {
		c.Locals("user_id", uint(id))
	}
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}
	if roleID, ok := claims["role_id"].(float64); ok {
		c.Locals("role_id", int(roleID))
	}
	if tipo, ok := claims["tipo"].(string); ok {
		c.Locals("tipo", tipo)
	}
}
