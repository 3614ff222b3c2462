package server

import (
	"bloggy/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateBlog handles POST /api/blogs. The cover image may arrive either as an
// already-hosted URL or as a base64 data URL, in which case it is pushed to
// the image host first.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title      string `json:"title"`
		Body       string `json:"body"`
		CoverImage string `json:"cover_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	coverURL := req.CoverImage
	if len(coverURL) > 5 && coverURL[:5] == "data:" {
		hosted, err := s.userService.UploadImage(c.Context(), coverURL)
		if err != nil {
			return respondServiceError(c, err)
		}
		coverURL = hosted
	}

	blog, err := s.blogService.Create(c.Context(), userID, req.Title, req.Body, coverURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Blog created successfully",
		"blog":    blog,
	})
}

// GetBlog handles GET /api/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.Get(c.Context(), blogID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog retrieved successfully",
		"blog":    blog,
	})
}

// GetBlogs handles GET /api/blogs (home feed, newest first)
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	blogs, err := s.blogService.ListHome(c.Context(), p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blogs retrieved successfully",
		"blogs":   blogs,
	})
}

// GetMyBlogs handles GET /api/blogs/me
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	blogs, err := s.blogService.ListByUser(c.Context(), userID, p.Limit, p.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blogs retrieved successfully",
		"blogs":   blogs,
	})
}

// GetUserBlogs handles GET /api/blogs/user/:id
func (s *Server) GetUserBlogs(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	blogs, err := s.blogService.ListByUser(c.Context(), authorID, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blogs retrieved successfully",
		"blogs":   blogs,
	})
}
