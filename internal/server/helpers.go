package server

import (
	"errors"

	"creationity/internal/models"
	"creationity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPageLimit = 100

// parseListInput extracts page/limit/type/category query parameters.
func parseListInput(c *fiber.Ctx) service.ListContentInput {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return service.ListContentInput{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID from request locals.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// listEnvelope is the wire shape of every paginated content response.
type listEnvelope struct {
	Content    []models.ContentItem `json:"content"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int64                `json:"total"`
}

func newListEnvelope(items []models.ContentItem, page, limit int, total int64) listEnvelope {
	if items == nil {
		items = []models.ContentItem{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return listEnvelope{
		Content:    items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// respondAppError maps an AppError to its HTTP status. Unknown errors become 500.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
