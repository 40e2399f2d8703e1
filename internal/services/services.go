package services

import (
	"context"
	"errors"
	"time"

	"github.com/shantnusharma/storyboard/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrStoryNotFound        = errors.New("story not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrPastDueDate          = errors.New("due date is in the past")
	ErrInvalidStoryStatus   = errors.New("invalid story status")
	ErrInvalidStoryPriority = errors.New("invalid story priority")
	ErrInvalidStoryType     = errors.New("invalid story type")
	ErrInvalidStoryPoints   = errors.New("story points must be between 1 and 5")

	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("operation not permitted")

	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectPrefixTaken = errors.New("project prefix already exists")

	ErrSprintNotFound      = errors.New("sprint not found")
	ErrInvalidSprintStatus = errors.New("invalid sprint status")
	ErrSprintDateRange     = errors.New("sprint end date must be after start date")
)

type AuthService interface {
	// Login authenticates the user by username and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// username doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register creates a user with the given identity and the
	// default "User" role, plus a session with a fresh JWT token
	// pair. The password is hashed before it is stored.
	//
	// It returns ErrUserAlreadyExists if the username or email
	// is already taken.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error
}

type SessionService interface {
	// GetPrincipalBySessionID resolves a session to the
	// authenticated identity behind it, joined with the owning
	// user's username, display name and role.
	GetPrincipalBySessionID(ctx context.Context, sessionID string) (*models.Principal, error)

	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type StoryService interface {
	// CreateStory validates the input, allocates the next story
	// number in the project's sequence and persists the story.
	// Allocation runs inside a transaction against a per-project
	// counter, so two concurrent creates in the same project
	// cannot produce a duplicate number.
	CreateStory(ctx context.Context, params CreateStoryParams) (*models.Story, error)

	// GetStories lists stories matching the filter, oldest first.
	GetStories(ctx context.Context, filter StoryFilter) ([]models.Story, error)

	GetStoryByID(ctx context.Context, id string) (*models.Story, error)

	// UpdateStory merges the non-nil patch fields onto the stored
	// story and stamps the editor and update time. The story
	// number and creator never change. Concurrent updates are
	// last-write-wins.
	UpdateStory(ctx context.Context, params UpdateStoryParams) (*models.Story, error)

	// DeleteStory removes the story and, through the schema's
	// cascade, its comments.
	DeleteStory(ctx context.Context, id string) error
}

type CommentService interface {
	AddComment(ctx context.Context, params AddCommentParams) (*models.Comment, error)

	// GetComments lists a story's comments ordered by creation
	// time ascending, joined with each author's display identity.
	GetComments(ctx context.Context, storyID string) ([]models.Comment, error)

	// DeleteComment removes a comment. Only the comment's author
	// or an Admin may delete it; anyone else gets ErrForbidden.
	DeleteComment(ctx context.Context, params DeleteCommentParams) error
}

type ProjectService interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type SprintService interface {
	// GetSprints lists sprints, narrowed to a project prefix when
	// project is non-empty.
	GetSprints(ctx context.Context, project string) ([]models.Sprint, error)
	GetSprintByID(ctx context.Context, id string) (*models.Sprint, error)
	CreateSprint(ctx context.Context, params CreateSprintParams) (*models.Sprint, error)
	UpdateSprint(ctx context.Context, params UpdateSprintParams) (*models.Sprint, error)
	DeleteSprint(ctx context.Context, id string) error
}

type UserService interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type LoginParams struct {
	Username    string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	Username    string
	Email       string
	FullName    string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type StoryFilter struct {
	Project    string
	Status     models.StoryStatus
	AssigneeID string
	Sprint     string
}

type CreateStoryParams struct {
	Title              string
	Description        string
	AcceptanceCriteria string
	Points             int
	Status             models.StoryStatus
	Priority           models.StoryPriority
	Type               models.StoryType
	Project            string
	Workspace          string
	TeamLead           string
	Epic               string
	Sprint             string
	Tags               []string
	DueDate            *time.Time
	AssigneeID         *string
	ActorID            string
}

// UpdateStoryParams is a partial patch: nil fields keep the stored
// value. Tags replace the whole set when non-nil.
type UpdateStoryParams struct {
	ID                 string
	Title              *string
	Description        *string
	AcceptanceCriteria *string
	Points             *int
	Status             *models.StoryStatus
	Priority           *models.StoryPriority
	Type               *models.StoryType
	Workspace          *string
	TeamLead           *string
	Epic               *string
	Sprint             *string
	Tags               []string
	DueDate            *time.Time
	AssigneeID         *string
	ActorID            string
}

type AddCommentParams struct {
	StoryID  string
	AuthorID string
	Text     string
}

type DeleteCommentParams struct {
	ID    string
	Actor models.Principal
}

type CreateProjectParams struct {
	Name        string
	Prefix      string
	Description string
	TeamLeadID  *string
	ActorID     string
}

type UpdateProjectParams struct {
	ID          string
	Name        *string
	Prefix      *string
	Description *string
	TeamLeadID  *string
}

type CreateSprintParams struct {
	Name      string
	Goal      string
	Status    models.SprintStatus
	Project   string
	StartDate time.Time
	EndDate   time.Time
	ActorID   string
}

type UpdateSprintParams struct {
	ID        string
	Name      *string
	Goal      *string
	Status    *models.SprintStatus
	StartDate *time.Time
	EndDate   *time.Time
}
