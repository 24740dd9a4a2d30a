package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"artspace/internal/middleware"
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "artspace-api"
	tokenAudience = "artspace-client"
)

// parseAndValidateToken validates the JWT and returns the user ID.
func (s *Server) parseAndValidateToken(c *fiber.Ctx, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, fmt.Errorf("invalid token audience")
	}

	// Revoked tokens sit in the Redis blacklist until they expire.
	if jti, jtiOk := claims["jti"].(string); jtiOk && s.redis != nil {
		if exists, _ := s.redis.Exists(c.Context(), blacklistKey(jti)).Result(); exists > 0 {
			return 0, fmt.Errorf("token revoked")
		}
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("invalid subject claim")
	}
	return uint(userID), nil
}

func blacklistKey(jti string) string {
	return "jwt_blacklist:" + jti
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func setUserContext(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
	c.SetUserContext(ctx)
}

// AuthRequired returns the authentication middleware.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required", nil))
		}

		userID, err := s.parseAndValidateToken(c, tokenString)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token", err))
		}

		setUserContext(c, userID)
		return c.Next()
	}
}

// OptionalAuth fills the viewer identity when a valid token is present
// but lets anonymous requests through.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := bearerToken(c); tokenString != "" {
			if userID, err := s.parseAndValidateToken(c, tokenString); err == nil {
				setUserContext(c, userID)
			}
		}
		return c.Next()
	}
}

// AdminRequired rejects non-admin users. Must be placed after
// AuthRequired so the user ID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError("failed to check permissions", err))
		}
		if !admin {
			return models.RespondWithError(c,
				models.NewForbiddenError("Admin access required", nil))
		}
		return c.Next()
	}
}
