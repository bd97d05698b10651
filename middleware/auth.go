package middleware

import (
	"fmt"
	"os"
	"strings"

	"enrollment-gateway/constants"
	"enrollment-gateway/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequirePermissions creates a middleware that accepts only tokens carrying
// one of the given permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission allows access with any valid token
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// IsAuthenticated validates the bearer token and checks its permission
// claims against the allowed set
func IsAuthenticated(allowedPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearerToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Unauthorized: " + err.Error(),
				Data:    nil,
			})
		}

		userPermissions := extractUserPermissionsFromClaims(claims)

		for _, allowed := range allowedPermissions {
			if allowed == constants.PermAny && len(userPermissions) > 0 {
				c.Locals("user", claims)
				c.Locals("permissions", userPermissions)
				return c.Next()
			}
			if userPermissions[allowed] {
				c.Locals("user", claims)
				c.Locals("permissions", userPermissions)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Forbidden: insufficient permissions",
			Data:    nil,
		})
	}
}

func parseBearerToken(authHeader string) (jwt.MapClaims, error) {
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, fmt.Errorf("invalid token format")
	}

	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		// Fail closed: no secret means no admin access at all
		return nil, fmt.Errorf("admin auth is not configured")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func extractUserPermissionsFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}

	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	return permissionSet
}
