package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Prefix      string    `json:"prefix"`
	Description string    `json:"description"`
	TeamLeadID  *string   `json:"team_lead_id,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Prefix:      project.Prefix,
		Description: project.Description,
		TeamLeadID:  project.TeamLeadID,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	projects, err := h.projects.GetProjects(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get projects")
		abortServiceError(c, err)
		return
	}

	response := make([]projectResponse, len(projects))
	for i := range projects {
		response[i] = newProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	project, err := h.projects.GetProjectByID(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get project")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProjectResponse(project))
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Prefix      string  `json:"prefix" binding:"required,max=64"`
	Description string  `json:"description"`
	TeamLeadID  *string `json:"team_lead_id"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	var req createProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.CreateProject(c, services.CreateProjectParams{
		Name:        req.Name,
		Prefix:      req.Prefix,
		Description: req.Description,
		TeamLeadID:  req.TeamLeadID,
		ActorID:     principal.UserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create project")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Prefix      *string `json:"prefix"`
	Description *string `json:"description"`
	TeamLeadID  *string `json:"team_lead_id"`
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	project, err := h.projects.UpdateProject(c, services.UpdateProjectParams{
		ID:          c.Param("id"),
		Name:        req.Name,
		Prefix:      req.Prefix,
		Description: req.Description,
		TeamLeadID:  req.TeamLeadID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update project")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProjectResponse(project))
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	err := h.projects.DeleteProject(c, c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete project")
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
