package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/access"
	"github.com/shantnusharma/storyboard/internal/board"
	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/services"
)

type mockStoryService struct {
	createFn  func(ctx context.Context, params services.CreateStoryParams) (*models.Story, error)
	listFn    func(ctx context.Context, filter services.StoryFilter) ([]models.Story, error)
	getFn     func(ctx context.Context, id string) (*models.Story, error)
	updateFn  func(ctx context.Context, params services.UpdateStoryParams) (*models.Story, error)
	deleteFn  func(ctx context.Context, id string) error
	deleteLog []string
}

func (m *mockStoryService) CreateStory(ctx context.Context, params services.CreateStoryParams) (*models.Story, error) {
	if m.createFn == nil {
		panic("unexpected call to CreateStory")
	}
	return m.createFn(ctx, params)
}

func (m *mockStoryService) GetStories(ctx context.Context, filter services.StoryFilter) ([]models.Story, error) {
	if m.listFn == nil {
		panic("unexpected call to GetStories")
	}
	return m.listFn(ctx, filter)
}

func (m *mockStoryService) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	if m.getFn == nil {
		panic("unexpected call to GetStoryByID")
	}
	return m.getFn(ctx, id)
}

func (m *mockStoryService) UpdateStory(ctx context.Context, params services.UpdateStoryParams) (*models.Story, error) {
	if m.updateFn == nil {
		panic("unexpected call to UpdateStory")
	}
	return m.updateFn(ctx, params)
}

func (m *mockStoryService) DeleteStory(ctx context.Context, id string) error {
	m.deleteLog = append(m.deleteLog, id)
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockCommentService struct {
	addFn    func(ctx context.Context, params services.AddCommentParams) (*models.Comment, error)
	listFn   func(ctx context.Context, storyID string) ([]models.Comment, error)
	deleteFn func(ctx context.Context, params services.DeleteCommentParams) error
}

func (m *mockCommentService) AddComment(ctx context.Context, params services.AddCommentParams) (*models.Comment, error) {
	if m.addFn == nil {
		panic("unexpected call to AddComment")
	}
	return m.addFn(ctx, params)
}

func (m *mockCommentService) GetComments(ctx context.Context, storyID string) ([]models.Comment, error) {
	if m.listFn == nil {
		panic("unexpected call to GetComments")
	}
	return m.listFn(ctx, storyID)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, params services.DeleteCommentParams) error {
	if m.deleteFn == nil {
		panic("unexpected call to DeleteComment")
	}
	return m.deleteFn(ctx, params)
}

type mockUserService struct {
	listFn  func(ctx context.Context) ([]models.User, error)
	getFn   func(ctx context.Context, id string) (*models.User, error)
	countFn func(ctx context.Context) (int, error)
}

func (m *mockUserService) GetUsers(ctx context.Context) ([]models.User, error) {
	if m.listFn == nil {
		panic("unexpected call to GetUsers")
	}
	return m.listFn(ctx)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getFn == nil {
		panic("unexpected call to GetUserByID")
	}
	return m.getFn(ctx, id)
}

func (m *mockUserService) CountUsers(ctx context.Context) (int, error) {
	if m.countFn == nil {
		panic("unexpected call to CountUsers")
	}
	return m.countFn(ctx)
}

func testPrincipal(role models.Role) models.Principal {
	return models.Principal{
		UserID:    "user-1",
		SessionID: "session-1",
		Username:  "jdoe",
		FullName:  "Jane Doe",
		Role:      role,
	}
}

// newTestRouter wires the story, comment and read-side routes behind a
// stub auth middleware that injects the given principal directly.
func newTestRouter(stories *mockStoryService, comments *mockCommentService, users *mockUserService, principal models.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(
		zerolog.Nop(),
		nil, nil,
		stories, comments,
		nil, nil,
		users,
		"storyboard",
		[]byte("test-signing-key"),
		board.WIPLimits{models.StatusInProgress: 2},
	)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(principalCtxKey, principal)
		c.Next()
	})

	api.POST("/stories", h.HandleCreateStory)
	api.GET("/stories", h.HandleGetStories)
	api.GET("/stories/:id", h.HandleGetStory)
	api.PATCH("/stories/:id", h.HandlePatchStory)
	api.DELETE("/stories/:id", h.RequireCapability(access.CapDeleteStory), h.HandleDeleteStory)
	api.GET("/stories/:id/comments", h.HandleGetComments)
	api.POST("/stories/:id/comments", h.HandleAddComment)
	api.DELETE("/comments/:id", h.HandleDeleteComment)
	api.GET("/board", h.HandleGetBoard)
	api.GET("/dashboard", h.HandleGetDashboard)
	api.POST("/estimate", h.HandleEstimate)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateStory(t *testing.T) {
	var got services.CreateStoryParams
	stories := &mockStoryService{
		createFn: func(_ context.Context, params services.CreateStoryParams) (*models.Story, error) {
			got = params
			return &models.Story{
				ID:        "42",
				Number:    "T&D-1001",
				Title:     params.Title,
				Points:    3,
				Status:    models.StatusToDo,
				Priority:  models.PriorityMedium,
				Type:      models.TypeStory,
				Project:   params.Project,
				Sprint:    models.DefaultSprint,
				Tags:      []string{},
				CreatedBy: params.ActorID,
				UpdatedBy: params.ActorID,
			}, nil
		},
	}
	router := newTestRouter(stories, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/stories", gin.H{
		"title":   "Add avatar upload",
		"project": "T&D",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if got.ActorID != "user-1" {
		t.Errorf("actor = %q, want the authenticated user", got.ActorID)
	}

	var resp storyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Number != "T&D-1001" {
		t.Errorf("number = %q, want %q", resp.Number, "T&D-1001")
	}
	if resp.CreatedBy != "user-1" {
		t.Errorf("created_by = %q, want %q", resp.CreatedBy, "user-1")
	}
}

func TestHandleCreateStoryMissingTitle(t *testing.T) {
	router := newTestRouter(&mockStoryService{}, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/stories", gin.H{
		"project": "T&D",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateStoryPastDueDate(t *testing.T) {
	stories := &mockStoryService{
		createFn: func(context.Context, services.CreateStoryParams) (*models.Story, error) {
			return nil, services.ErrPastDueDate
		},
	}
	router := newTestRouter(stories, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/stories", gin.H{
		"title":    "Backfill report",
		"project":  "T&D",
		"due_date": "2020-01-01T00:00:00Z",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleGetStoriesRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(&mockStoryService{}, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stories?status=Archived", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandlePatchStory(t *testing.T) {
	var got services.UpdateStoryParams
	stories := &mockStoryService{
		updateFn: func(_ context.Context, params services.UpdateStoryParams) (*models.Story, error) {
			got = params
			return &models.Story{
				ID:        params.ID,
				Number:    "T&D-1001",
				Title:     "Add avatar upload",
				Status:    *params.Status,
				Priority:  models.PriorityMedium,
				Type:      models.TypeStory,
				Project:   "T&D",
				Tags:      []string{},
				CreatedBy: "someone-else",
				UpdatedBy: "user-1",
			}, nil
		},
	}
	router := newTestRouter(stories, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/stories/42", gin.H{
		"status": "In Progress",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got.ID != "42" {
		t.Errorf("patched story id = %q, want %q", got.ID, "42")
	}
	if got.Status == nil || *got.Status != models.StatusInProgress {
		t.Errorf("status patch = %v, want In Progress", got.Status)
	}
	if got.Title != nil {
		t.Errorf("absent title field sent as patch: %q", *got.Title)
	}

	var resp storyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CreatedBy != "someone-else" {
		t.Errorf("created_by = %q, editing must not reassign the creator", resp.CreatedBy)
	}
	if resp.UpdatedBy != "user-1" {
		t.Errorf("updated_by = %q, want the editor", resp.UpdatedBy)
	}
}

func TestHandleDeleteStoryByRole(t *testing.T) {
	tests := []struct {
		name        string
		role        models.Role
		wantStatus  int
		wantDeleted bool
	}{
		{name: "admin may delete", role: models.RoleAdmin, wantStatus: http.StatusNoContent, wantDeleted: true},
		{name: "team lead may delete", role: models.RoleTeamLead, wantStatus: http.StatusNoContent, wantDeleted: true},
		{name: "user is refused", role: models.RoleUser, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stories := &mockStoryService{}
			router := newTestRouter(stories, nil, nil, testPrincipal(tt.role))

			rec := doJSON(t, router, http.MethodDelete, "/api/v1/stories/42", nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			deleted := len(stories.deleteLog) > 0
			if deleted != tt.wantDeleted {
				t.Errorf("delete reached the service: %v, want %v", deleted, tt.wantDeleted)
			}
		})
	}
}

func TestHandleDeleteStoryNotFound(t *testing.T) {
	stories := &mockStoryService{
		deleteFn: func(context.Context, string) error {
			return services.ErrStoryNotFound
		},
	}
	router := newTestRouter(stories, nil, nil, testPrincipal(models.RoleAdmin))

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/stories/999", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleAddComment(t *testing.T) {
	comments := &mockCommentService{
		addFn: func(_ context.Context, params services.AddCommentParams) (*models.Comment, error) {
			return &models.Comment{
				ID:       "7",
				StoryID:  params.StoryID,
				AuthorID: params.AuthorID,
				Text:     params.Text,
			}, nil
		},
	}
	router := newTestRouter(nil, comments, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/stories/42/comments", gin.H{
		"text": "looks good",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp commentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StoryID != "42" || resp.AuthorID != "user-1" {
		t.Errorf("comment bound to story %q author %q", resp.StoryID, resp.AuthorID)
	}
	if resp.AuthorUsername != "jdoe" {
		t.Errorf("author_username = %q, want %q", resp.AuthorUsername, "jdoe")
	}
}

func TestHandleAddCommentStoryGone(t *testing.T) {
	comments := &mockCommentService{
		addFn: func(context.Context, services.AddCommentParams) (*models.Comment, error) {
			return nil, services.ErrStoryNotFound
		},
	}
	router := newTestRouter(nil, comments, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/stories/999/comments", gin.H{
		"text": "into the void",
	})

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleDeleteComment(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "author deletes own comment", serviceErr: nil, wantStatus: http.StatusNoContent},
		{name: "foreign comment is refused", serviceErr: services.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "missing comment", serviceErr: services.ErrCommentNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got services.DeleteCommentParams
			comments := &mockCommentService{
				deleteFn: func(_ context.Context, params services.DeleteCommentParams) error {
					got = params
					return tt.serviceErr
				},
			}
			router := newTestRouter(nil, comments, nil, testPrincipal(models.RoleUser))

			rec := doJSON(t, router, http.MethodDelete, "/api/v1/comments/7", nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got.ID != "7" || got.Actor.UserID != "user-1" {
				t.Errorf("service got id=%q actor=%q", got.ID, got.Actor.UserID)
			}
		})
	}
}

func TestHandleGetBoard(t *testing.T) {
	stories := &mockStoryService{
		listFn: func(_ context.Context, filter services.StoryFilter) ([]models.Story, error) {
			if filter.Project != "T&D" {
				t.Errorf("project filter = %q, want %q", filter.Project, "T&D")
			}
			return []models.Story{
				{Number: "T&D-1001", Status: models.StatusToDo, Points: 3},
				{Number: "T&D-1002", Status: models.StatusInProgress, Points: 5},
				{Number: "T&D-1003", Status: models.StatusInProgress, Points: 2},
				{Number: "T&D-1004", Status: models.StatusInProgress, Points: 1},
			}, nil
		},
	}
	router := newTestRouter(stories, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/board?project=T%26D", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Columns []board.Column `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Columns) != len(models.StatusOrder) {
		t.Fatalf("got %d columns, want %d", len(resp.Columns), len(models.StatusOrder))
	}
	for _, col := range resp.Columns {
		switch col.Status {
		case models.StatusToDo:
			if col.Count != 1 || col.Points != 3 {
				t.Errorf("To Do count=%d points=%d, want 1 and 3", col.Count, col.Points)
			}
		case models.StatusInProgress:
			if col.Count != 3 || !col.OverLimit {
				t.Errorf("In Progress count=%d overLimit=%v, want 3 over a limit of 2", col.Count, col.OverLimit)
			}
		}
	}
}

func TestHandleGetDashboard(t *testing.T) {
	stories := &mockStoryService{
		listFn: func(context.Context, services.StoryFilter) ([]models.Story, error) {
			return []models.Story{
				{Status: models.StatusToDo, Priority: models.PriorityHigh, Points: 3},
				{Status: models.StatusCompleted, Priority: models.PriorityMedium, Points: 2},
			}, nil
		},
	}
	users := &mockUserService{
		countFn: func(context.Context) (int, error) { return 5, nil },
	}
	router := newTestRouter(stories, nil, users, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		TotalStories     int `json:"total_stories"`
		CompletedStories int `json:"completed_stories"`
		TotalPoints      int `json:"total_points"`
		TeamMembers      int `json:"team_members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalStories != 2 || resp.CompletedStories != 1 || resp.TotalPoints != 5 || resp.TeamMembers != 5 {
		t.Errorf("metrics = %+v, want 2 stories, 1 completed, 5 points, 5 members", resp)
	}
}

func TestHandleEstimate(t *testing.T) {
	router := newTestRouter(nil, nil, nil, testPrincipal(models.RoleUser))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/estimate", gin.H{
		"title":       "Fix login bug",
		"description": "Session cookie is dropped",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Points   int    `json:"points"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Points != 3 {
		t.Errorf("points = %d, want 3", resp.Points)
	}
	if resp.Priority != string(models.PriorityHigh) {
		t.Errorf("priority = %q, want %q", resp.Priority, models.PriorityHigh)
	}
}
