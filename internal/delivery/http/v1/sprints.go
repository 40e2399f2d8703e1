package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

type sprintResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Status    string    `json:"status"`
	Project   string    `json:"project"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSprintResponse(sprint *models.Sprint) sprintResponse {
	return sprintResponse{
		ID:        sprint.ID,
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		Status:    string(sprint.Status),
		Project:   sprint.Project,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		CreatedBy: sprint.CreatedBy,
		CreatedAt: sprint.CreatedAt,
		UpdatedAt: sprint.UpdatedAt,
	}
}

func (h *handlerImpl) HandleGetSprints(c *gin.Context) {
	sprints, err := h.sprints.GetSprints(c, c.Query("project"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get sprints")
		abortServiceError(c, err)
		return
	}

	response := make([]sprintResponse, len(sprints))
	for i := range sprints {
		response[i] = newSprintResponse(&sprints[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetSprint(c *gin.Context) {
	sprint, err := h.sprints.GetSprintByID(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get sprint")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSprintResponse(sprint))
}

type createSprintRequest struct {
	Name      string    `json:"name" binding:"required,max=255"`
	Goal      string    `json:"goal"`
	Status    string    `json:"status"`
	Project   string    `json:"project" binding:"required,max=64"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (h *handlerImpl) HandleCreateSprint(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	var req createSprintRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	sprint, err := h.sprints.CreateSprint(c, services.CreateSprintParams{
		Name:      req.Name,
		Goal:      req.Goal,
		Status:    models.SprintStatus(req.Status),
		Project:   req.Project,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ActorID:   principal.UserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create sprint")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSprintResponse(sprint))
}

type updateSprintRequest struct {
	Name      *string    `json:"name"`
	Goal      *string    `json:"goal"`
	Status    *string    `json:"status"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (h *handlerImpl) HandleUpdateSprint(c *gin.Context) {
	var req updateSprintRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateSprintParams{
		ID:        c.Param("id"),
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != nil {
		status := models.SprintStatus(*req.Status)
		params.Status = &status
	}

	sprint, err := h.sprints.UpdateSprint(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update sprint")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSprintResponse(sprint))
}

func (h *handlerImpl) HandleDeleteSprint(c *gin.Context) {
	err := h.sprints.DeleteSprint(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete sprint")
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
