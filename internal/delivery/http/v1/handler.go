package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/access"
	"github.com/shantnusharma/storyboard/internal/board"
	"github.com/shantnusharma/storyboard/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	RequireCapability(capability access.Capability) gin.HandlerFunc

	HandleCreateStory(c *gin.Context)
	HandleGetStories(c *gin.Context)
	HandleGetStory(c *gin.Context)
	HandlePatchStory(c *gin.Context)
	HandleDeleteStory(c *gin.Context)

	HandleGetComments(c *gin.Context)
	HandleAddComment(c *gin.Context)
	HandleDeleteComment(c *gin.Context)

	HandleGetBoard(c *gin.Context)
	HandleGetDashboard(c *gin.Context)
	HandleEstimate(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleGetMe(c *gin.Context)

	HandleGetProjects(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleCreateProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)

	HandleGetSprints(c *gin.Context)
	HandleGetSprint(c *gin.Context)
	HandleCreateSprint(c *gin.Context)
	HandleUpdateSprint(c *gin.Context)
	HandleDeleteSprint(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
	stories  services.StoryService
	comments services.CommentService
	projects services.ProjectService
	sprints  services.SprintService
	users    services.UserService

	jwtIssuer     string
	jwtSigningKey []byte
	wipLimits     board.WIPLimits
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	storyService services.StoryService,
	commentService services.CommentService,
	projectService services.ProjectService,
	sprintService services.SprintService,
	userService services.UserService,
	jwtIssuer string,
	jwtSigningKey []byte,
	wipLimits board.WIPLimits,
) Handler {
	return &handlerImpl{
		logger:        logger,
		auth:          authService,
		sessions:      sessionService,
		stories:       storyService,
		comments:      commentService,
		projects:      projectService,
		sprints:       sprintService,
		users:         userService,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		wipLimits:     wipLimits,
	}
}
