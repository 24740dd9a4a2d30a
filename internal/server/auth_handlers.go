package server

import (
	"fmt"
	"strconv"
	"time"

	"artspace/internal/models"
	"artspace/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Username, email, and password are required", nil))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error(), nil))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to hash password", err))
	}

	user, err := s.userService.Register(c.Context(), req.Username, req.Email, string(hashedPassword))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to generate token", err))
	}

	return models.RespondData(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondBadRequest(c, "Invalid request body")
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to load user", err))
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid credentials", nil))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid credentials", nil))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to generate token", err))
	}

	return models.RespondData(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles POST /api/auth/refresh. It exchanges a still-valid
// token for a fresh one and revokes the old token's jti.
func (s *Server) Refresh(c *fiber.Ctx) error {
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

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil || user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired token", err))
	}

	s.blacklistToken(c, tokenString)

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to generate token", err))
	}
	return models.RespondData(c, fiber.Map{"token": token})
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Authorization required", nil))
	}
	if _, err := s.parseAndValidateToken(c, tokenString); err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired token", err))
	}

	s.blacklistToken(c, tokenString)
	return models.RespondMessage(c, "Logged out")
}

// blacklistToken puts the token's jti on the Redis blacklist until the
// token would have expired anyway. Without Redis, logout is best-effort.
func (s *Server) blacklistToken(c *fiber.Ctx, tokenString string) {
	if s.redis == nil {
		return
	}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return
	}

	ttl := tokenLifetime
	if exp, expOk := claims["exp"].(float64); expOk {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), blacklistKey(jti), "1", ttl)
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
