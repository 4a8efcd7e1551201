package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia handles POST /api/medias
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnprocessableError("file form field is required"))
	}

	mediaID, err := s.mediaService.Upload(c.UserContext(), currentUserID(c), fileHeader)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":   "true",
		"media_id": mediaID,
	})
}

// GetMedia handles GET /api/medias/:id and the legacy GET /:id alias. It
// streams the stored file.
func (s *Server) GetMedia(c *fiber.Ctx) error {
	mediaID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	path, err := s.mediaService.Path(c.UserContext(), mediaID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := c.SendFile(path); err != nil {
		// Row exists but the file is gone from disk.
		return models.RespondWithError(c,
			models.NewNotFoundError(models.ErrTypeInvalidMediaID, "media file not found"))
	}
	return nil
}
