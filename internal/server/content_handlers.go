package server

import (
	"net/url"

	"creationity/internal/models"
	"creationity/internal/service"

	"github.com/gofiber/fiber/v2"
)

type contentRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Type     string   `json:"type"`
}

// GetContentList handles GET /api/content
func (s *Server) GetContentList(c *fiber.Ctx) error {
	in := parseListInput(c)
	items, total, err := s.contentService.ListContent(c.Context(), in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(newListEnvelope(items, in.Page, in.Limit, total))
}

// GetTrending handles GET /api/content/trending/:type. Without the type
// segment it serves the cross-type leaderboard.
func (s *Server) GetTrending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	items, err := s.contentService.Trending(c.Context(), c.Params("type"), limit)
	if err != nil {
		return respondAppError(c, err)
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return c.JSON(fiber.Map{"content": items})
}

// GetContentByTypeAndCategory handles GET /api/content/:type/:category
func (s *Server) GetContentByTypeAndCategory(c *fiber.Ctx) error {
	// categories can contain spaces ("Formal Jokes" arrives percent-encoded)
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		category = c.Params("category")
	}

	in := parseListInput(c)
	in.Type = c.Params("type")
	in.Category = category

	items, total, err := s.contentService.ListContent(c.Context(), in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(newListEnvelope(items, in.Page, in.Limit, total))
}

// GetContent handles GET /api/content/item/:id and records a view.
func (s *Server) GetContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.contentService.GetContent(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	s.contentService.RecordView(c.Context(), id)
	return c.JSON(item)
}

// CreateContent handles POST /api/content
func (s *Server) CreateContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.CreateContent(c.Context(), service.CreateContentInput{
		UserID:   userID,
		Type:     req.Type,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateContent handles PUT /api/content/:id
func (s *Server) UpdateContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.UpdateContent(c.Context(), service.UpdateContentInput{
		UserID:   userID,
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(item)
}

// DeleteContent handles DELETE /api/content/:id
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.DeleteContent(c.Context(), userID, id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Content deleted"})
}

// ToggleLike handles POST /api/content/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.contentService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(item)
}
