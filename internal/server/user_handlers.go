package server

import (
	"creationity/internal/models"
	"creationity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/user/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/user/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// GetMyStats handles GET /api/user/stats
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	stats, err := s.userService.Stats(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// GetMyContent handles GET /api/content/user/me
func (s *Server) GetMyContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	in := parseListInput(c)
	items, total, err := s.contentService.ListByUser(c.Context(), userID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(newListEnvelope(items, in.Page, in.Limit, total))
}

// GetMyLikedContent handles GET /api/user/liked
func (s *Server) GetMyLikedContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	in := parseListInput(c)
	items, total, err := s.contentService.ListLikedBy(c.Context(), userID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(newListEnvelope(items, in.Page, in.Limit, total))
}

// GetUserProfile handles GET /api/user/profile/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	user, err := s.userService.GetUserByUsername(c.Context(), username)
	if err != nil {
		return respondAppError(c, err)
	}

	// Public view: never leak the email address.
	return c.JSON(fiber.Map{
		"_id":       user.ID,
		"username":  user.Username,
		"bio":       user.Bio,
		"avatar":    user.Avatar,
		"createdAt": user.CreatedAt,
	})
}
