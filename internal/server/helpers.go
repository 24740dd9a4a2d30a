package server

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// PageParams holds parsed page/page_size query parameters.
type PageParams struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// parsePage extracts page and page_size query parameters. Out-of-range
// values clamp rather than error.
func parsePage(c *fiber.Ctx) PageParams {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	size := c.QueryInt("page_size", c.QueryInt("limit", defaultPageSize))
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return PageParams{Page: page, PageSize: size}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondBadRequest(c, "Invalid "+humanizeParam(param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated user's ID. Only valid behind
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// viewerID returns the authenticated user's ID, or zero for anonymous
// requests behind OptionalAuth.
func viewerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
