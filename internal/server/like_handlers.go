package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikeBlog handles POST /api/blogs/:id/like
func (s *Server) LikeBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.engagementService.Like(c.Context(), blogID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog liked successfully",
		"likes":   likes,
	})
}

// UnlikeBlog handles DELETE /api/blogs/:id/like
func (s *Server) UnlikeBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.engagementService.Unlike(c.Context(), blogID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog unliked successfully",
		"likes":   likes,
	})
}

// GetInitialLikes handles GET /api/blogs/:id/likes. Anonymous readers get the
// count only; authenticated readers also learn whether they liked the blog.
func (s *Server) GetInitialLikes(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.engagementService.InitialLikeState(c.Context(), blogID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Like state retrieved successfully",
		"likes":         state.Likes,
		"liked_by_user": state.LikedByUser,
	})
}
