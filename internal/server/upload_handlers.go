package server

import (
	"artspace/internal/blob"
	"artspace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/uploads?kind=artwork|avatar. The file field
// is named "file". The stored URL comes back for use in a subsequent
// create-artwork or update-profile call.
func (s *Server) Upload(c *fiber.Ctx) error {
	kind := c.Query("kind", "artwork")

	var prefix string
	var maxSize int64
	switch kind {
	case "artwork":
		prefix, maxSize = "artworks", blob.MaxArtworkSize
	case "avatar":
		prefix, maxSize = "avatars", blob.MaxAvatarSize
	default:
		return models.RespondWithError(c,
			models.NewValidationError("kind must be artwork or avatar", nil))
	}

	header, err := c.FormFile("file")
	if err != nil {
		return models.RespondBadRequest(c, "Missing file upload")
	}

	f, err := header.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError("failed to read upload", err))
	}
	defer f.Close()

	url, err := s.blobs.Put(prefix, f, header.Size, maxSize)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error(), nil))
	}

	return models.RespondData(c, fiber.Map{"url": url})
}
