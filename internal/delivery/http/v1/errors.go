package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/services"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// abortServiceError maps the service layer's sentinel errors onto the
// response taxonomy: unauthorized, forbidden, not found, validation
// failed, conflict. Anything unrecognized becomes a plain 500.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStoryNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrSprintNotFound),
		errors.Is(err, services.ErrUserNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		abort(c, newForbiddenError(err.Error()))
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrPastDueDate),
		errors.Is(err, services.ErrInvalidStoryStatus),
		errors.Is(err, services.ErrInvalidStoryPriority),
		errors.Is(err, services.ErrInvalidStoryType),
		errors.Is(err, services.ErrInvalidStoryPoints),
		errors.Is(err, services.ErrInvalidSprintStatus),
		errors.Is(err, services.ErrSprintDateRange):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrUserAlreadyExists),
		errors.Is(err, services.ErrProjectPrefixTaken):
		abort(c, newConflictError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
