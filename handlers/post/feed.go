package post

import (
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// GetFeed returns the authenticated user's college feed, newest first.
// Supports ?page, ?limit and ?category query parameters.
func (h *PostHandler) GetFeed(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if user.CollegeID == nil {
		return response.BadRequest(c, "Complete onboarding to see your college feed")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	category := c.Query("category")
	if category != "" && category != "all" && !model.IsValidPostCategory(category) {
		return response.BadRequest(c, "Invalid category")
	}

	feed, total, err := h.feedService.GetPostsByCollege(c.Context(), services.FeedOptions{
		CollegeID: *user.CollegeID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		Category:  category,
		ViewerID:  user.ID,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to load feed")
	}

	return response.Paginated(c, feed, response.CalculatePagination(page, limit, total))
}
