package server

import (
	"bloggy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{
		"message": "User retrieved successfully",
		"user":    user,
	}

	// Tell an authenticated viewer whether they already follow this profile.
	if viewerID := currentUserID(c); viewerID != 0 && viewerID != userID {
		following, err := s.followService.IsFollowing(c.Context(), viewerID, userID)
		if err != nil {
			return respondServiceError(c, err)
		}
		resp["is_following"] = following
	}

	return c.JSON(resp)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

// UpdateBio handles PUT /api/users/me/bio
func (s *Server) UpdateBio(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateBio(c.Context(), userID, req.Bio)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Bio updated successfully",
		"user":    user,
	})
}

// UploadProfileImage handles POST /api/users/me/image. The client sends the
// image as a base64 data URL; the response carries the durable hosted URL.
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil || req.Image == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image is required"))
	}

	user, err := s.userService.UpdateProfileImage(c.Context(), userID, req.Image)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":           "Profile image updated successfully",
		"profile_image_url": user.ProfileImageURL,
		"user":              user,
	})
}
