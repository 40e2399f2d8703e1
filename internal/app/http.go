package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/shantnusharma/storyboard/internal/access"
	"github.com/shantnusharma/storyboard/internal/board"
	"github.com/shantnusharma/storyboard/internal/config"
	"github.com/shantnusharma/storyboard/internal/delivery/http/v1"
	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()
	jwtCfg := cfg.JWT

	wipLimits := board.WIPLimits{
		models.StatusToDo:       cfg.Board.WIPToDo,
		models.StatusInProgress: cfg.Board.WIPInProgress,
	}

	v1Handler := v1.New(
		globalLogger,
		services.NewAuthService(
			globalLogger,
			globalPostgresPool,
			jwtCfg.Issuer,
			[]byte(jwtCfg.SigningKey),
			jwtCfg.AccessTokenTTL,
			jwtCfg.RefreshTokenTTL,
		),
		services.NewSessionService(globalLogger, globalPostgresPool),
		services.NewStoryService(globalLogger, globalPostgresPool),
		services.NewCommentService(globalLogger, globalPostgresPool),
		services.NewProjectService(globalLogger, globalPostgresPool),
		services.NewSprintService(globalLogger, globalPostgresPool),
		services.NewUserService(globalLogger, globalPostgresPool),
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		wipLimits,
	)
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", v1Handler.HandleAuthMiddleware, v1Handler.HandleLogout)

	authed := router.Group("", v1Handler.HandleAuthMiddleware)

	storiesRouter := authed.Group("/stories")
	storiesRouter.GET("", v1Handler.HandleGetStories)
	storiesRouter.POST("", v1Handler.HandleCreateStory)
	storiesRouter.GET("/:id", v1Handler.HandleGetStory)
	storiesRouter.PATCH("/:id", v1Handler.HandlePatchStory)
	storiesRouter.DELETE("/:id",
		v1Handler.RequireCapability(access.CapDeleteStory),
		v1Handler.HandleDeleteStory)
	storiesRouter.GET("/:id/comments", v1Handler.HandleGetComments)
	storiesRouter.POST("/:id/comments", v1Handler.HandleAddComment)

	authed.DELETE("/comments/:id", v1Handler.HandleDeleteComment)

	authed.GET("/board", v1Handler.HandleGetBoard)
	authed.GET("/dashboard", v1Handler.HandleGetDashboard)
	authed.POST("/estimate", v1Handler.HandleEstimate)

	usersRouter := authed.Group("/users")
	usersRouter.GET("",
		v1Handler.RequireCapability(access.CapListUsers),
		v1Handler.HandleGetUsers)
	usersRouter.GET("/me", v1Handler.HandleGetMe)

	projectsRouter := authed.Group("/projects")
	projectsRouter.GET("", v1Handler.HandleGetProjects)
	projectsRouter.GET("/:id", v1Handler.HandleGetProject)
	projectsRouter.POST("",
		v1Handler.RequireCapability(access.CapManageProjects),
		v1Handler.HandleCreateProject)
	projectsRouter.PUT("/:id",
		v1Handler.RequireCapability(access.CapManageProjects),
		v1Handler.HandleUpdateProject)
	projectsRouter.DELETE("/:id",
		v1Handler.RequireCapability(access.CapManageProjects),
		v1Handler.HandleDeleteProject)

	sprintsRouter := authed.Group("/sprints")
	sprintsRouter.GET("", v1Handler.HandleGetSprints)
	sprintsRouter.GET("/:id", v1Handler.HandleGetSprint)
	sprintsRouter.POST("",
		v1Handler.RequireCapability(access.CapManageSprints),
		v1Handler.HandleCreateSprint)
	sprintsRouter.PUT("/:id",
		v1Handler.RequireCapability(access.CapManageSprints),
		v1Handler.HandleUpdateSprint)
	sprintsRouter.DELETE("/:id",
		v1Handler.RequireCapability(access.CapManageSprints),
		v1Handler.HandleDeleteSprint)
}
