package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/models"
)

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.GetUsers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get users")
		abortServiceError(c, err)
		return
	}

	response := make([]userResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetMe(c *gin.Context) {
	principal, ok := h.mustPrincipal(c)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(c, principal.UserID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get current user")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
