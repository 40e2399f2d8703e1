package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/board"
	"github.com/shantnusharma/storyboard/internal/dashboard"
	"github.com/shantnusharma/storyboard/internal/estimate"
	"github.com/shantnusharma/storyboard/internal/services"
)

// HandleGetBoard returns the Kanban projection: one column per
// status, recomputed from the authoritative story set on every call.
func (h *handlerImpl) HandleGetBoard(c *gin.Context) {
	filter := services.StoryFilter{
		Project: c.Query("project"),
		Sprint:  c.Query("sprint"),
	}

	stories, err := h.stories.GetStories(c, filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get stories for board")
		abortServiceError(c, err)
		return
	}

	columns := board.Project(stories, h.wipLimits)
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (h *handlerImpl) HandleGetDashboard(c *gin.Context) {
	stories, err := h.stories.GetStories(c, services.StoryFilter{})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get stories for dashboard")
		abortServiceError(c, err)
		return
	}

	teamMembers, err := h.users.CountUsers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to count users")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard.Compute(stories, teamMembers))
}

type estimateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

func (h *handlerImpl) HandleEstimate(c *gin.Context) {
	var req estimateRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	c.JSON(http.StatusOK, estimate.FromText(req.Title, req.Description))
}
