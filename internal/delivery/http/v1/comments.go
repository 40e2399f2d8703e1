package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

type commentResponse struct {
	ID             string    `json:"id"`
	StoryID        string    `json:"story_id"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name,omitempty"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func newCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:             comment.ID,
		StoryID:        comment.StoryID,
		AuthorID:       comment.AuthorID,
		AuthorName:     comment.AuthorName,
		AuthorUsername: comment.AuthorUsername,
		Text:           comment.Text,
		CreatedAt:      comment.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetComments(c *gin.Context) {
	storyID := c.Param("id")

	comments, err := h.comments.GetComments(c, storyID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("story_id", storyID).
			Msg("failed to get comments")
		abortServiceError(c, err)
		return
	}

	response := make([]commentResponse, len(comments))
	for i := range comments {
		response[i] = newCommentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

func (h *handlerImpl) HandleAddComment(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	var req addCommentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	comment, err := h.comments.AddComment(c, services.AddCommentParams{
		StoryID:  c.Param("id"),
		AuthorID: principal.UserID,
		Text:     req.Text,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to add comment")
		abortServiceError(c, err)
		return
	}
	comment.AuthorName = principal.FullName
	comment.AuthorUsername = principal.Username

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

func (h *handlerImpl) HandleDeleteComment(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	err := h.comments.DeleteComment(c, services.DeleteCommentParams{
		ID:    c.Param("id"),
		Actor: principal,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete comment")
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
