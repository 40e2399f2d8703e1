package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

type storyResponse struct {
	ID                 string     `json:"id"`
	Number             string     `json:"number"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	AcceptanceCriteria string     `json:"acceptance_criteria"`
	Points             int        `json:"points"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Type               string     `json:"type"`
	Project            string     `json:"project"`
	Workspace          string     `json:"workspace,omitempty"`
	TeamLead           string     `json:"team_lead,omitempty"`
	Epic               string     `json:"epic,omitempty"`
	Sprint             string     `json:"sprint"`
	Tags               []string   `json:"tags"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	AssigneeID         *string    `json:"assignee_id,omitempty"`
	CreatedBy          string     `json:"created_by"`
	UpdatedBy          string     `json:"updated_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func newStoryResponse(story *models.Story) storyResponse {
	return storyResponse{
		ID:                 story.ID,
		Number:             story.Number,
		Title:              story.Title,
		Description:        story.Description,
		AcceptanceCriteria: story.AcceptanceCriteria,
		Points:             story.Points,
		Status:             string(story.Status),
		Priority:           string(story.Priority),
		Type:               string(story.Type),
		Project:            story.Project,
		Workspace:          story.Workspace,
		TeamLead:           story.TeamLead,
		Epic:               story.Epic,
		Sprint:             story.Sprint,
		Tags:               story.Tags,
		DueDate:            story.DueDate,
		AssigneeID:         story.AssigneeID,
		CreatedBy:          story.CreatedBy,
		UpdatedBy:          story.UpdatedBy,
		CreatedAt:          story.CreatedAt,
		UpdatedAt:          story.UpdatedAt,
	}
}

type createStoryRequest struct {
	Title              string     `json:"title" binding:"required,max=255"`
	Description        string     `json:"description"`
	AcceptanceCriteria string     `json:"acceptance_criteria"`
	Points             int        `json:"points" binding:"omitempty,min=1,max=5"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Type               string     `json:"type"`
	Project            string     `json:"project" binding:"required,max=64"`
	Workspace          string     `json:"workspace"`
	TeamLead           string     `json:"team_lead"`
	Epic               string     `json:"epic"`
	Sprint             string     `json:"sprint"`
	Tags               []string   `json:"tags"`
	DueDate            *time.Time `json:"due_date"`
	AssigneeID         *string    `json:"assignee_id"`
}

func (h *handlerImpl) HandleCreateStory(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	var req createStoryRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	story, err := h.stories.CreateStory(c, services.CreateStoryParams{
		Title:              req.Title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Points:             req.Points,
		Status:             models.StoryStatus(req.Status),
		Priority:           models.StoryPriority(req.Priority),
		Type:               models.StoryType(req.Type),
		Project:            req.Project,
		Workspace:          req.Workspace,
		TeamLead:           req.TeamLead,
		Epic:               req.Epic,
		Sprint:             req.Sprint,
		Tags:               req.Tags,
		DueDate:            req.DueDate,
		AssigneeID:         req.AssigneeID,
		ActorID:            principal.UserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create story")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newStoryResponse(story))
}

func (h *handlerImpl) HandleGetStories(c *gin.Context) {
	filter := services.StoryFilter{
		Project:    c.Query("project"),
		Status:     models.StoryStatus(c.Query("status")),
		AssigneeID: c.Query("assignee_id"),
		Sprint:     c.Query("sprint"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		abort(c, newBadRequestError(services.ErrInvalidStoryStatus.Error()))
		return
	}

	stories, err := h.stories.GetStories(c, filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get stories")
		abortServiceError(c, err)
		return
	}

	response := make([]storyResponse, len(stories))
	for i := range stories {
		response[i] = newStoryResponse(&stories[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetStory(c *gin.Context) {
	story, err := h.stories.GetStoryByID(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get story")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStoryResponse(story))
}

type patchStoryRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	AcceptanceCriteria *string    `json:"acceptance_criteria"`
	Points             *int       `json:"points"`
	Status             *string    `json:"status"`
	Priority           *string    `json:"priority"`
	Type               *string    `json:"type"`
	Workspace          *string    `json:"workspace"`
	TeamLead           *string    `json:"team_lead"`
	Epic               *string    `json:"epic"`
	Sprint             *string    `json:"sprint"`
	Tags               []string   `json:"tags"`
	DueDate            *time.Time `json:"due_date"`
	AssigneeID         *string    `json:"assignee_id"`
}

func (h *handlerImpl) HandlePatchStory(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	var req patchStoryRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateStoryParams{
		ID:                 c.Param("id"),
		Title:              req.Title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Points:             req.Points,
		Workspace:          req.Workspace,
		TeamLead:           req.TeamLead,
		Epic:               req.Epic,
		Sprint:             req.Sprint,
		Tags:               req.Tags,
		DueDate:            req.DueDate,
		AssigneeID:         req.AssigneeID,
		ActorID:            principal.UserID,
	}
	if req.Status != nil {
		status := models.StoryStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := models.StoryPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.Type != nil {
		storyType := models.StoryType(*req.Type)
		params.Type = &storyType
	}

	story, err := h.stories.UpdateStory(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update story")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStoryResponse(story))
}

func (h *handlerImpl) HandleDeleteStory(c *gin.Context) {
	storyID := c.Param("id")

	err := h.stories.DeleteStory(c, storyID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("story_id", storyID).
			Msg("failed to delete story")
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
