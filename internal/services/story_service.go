package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/models"
	"github.com/shantnusharma/storyboard/internal/storynum"
)

type storyServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewStoryService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) StoryService {
	return &storyServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *storyServiceImpl) CreateStory(ctx context.Context, params CreateStoryParams) (*models.Story, error) {
	now := time.Now()
	story := &models.Story{
		Title:              strings.TrimSpace(params.Title),
		Description:        params.Description,
		AcceptanceCriteria: params.AcceptanceCriteria,
		Points:             params.Points,
		Status:             params.Status,
		Priority:           params.Priority,
		Type:               params.Type,
		Project:            params.Project,
		Workspace:          params.Workspace,
		TeamLead:           params.TeamLead,
		Epic:               params.Epic,
		Sprint:             params.Sprint,
		Tags:               params.Tags,
		DueDate:            params.DueDate,
		AssigneeID:         params.AssigneeID,
		CreatedBy:          params.ActorID,
		UpdatedBy:          params.ActorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if story.Title == "" {
		return nil, ErrTitleRequired
	}
	if story.Points == 0 {
		story.Points = 1
	}
	if story.Status == "" {
		story.Status = models.StatusToDo
	}
	if story.Priority == "" {
		story.Priority = models.PriorityMedium
	}
	if story.Type == "" {
		story.Type = models.TypeStory
	}
	if story.Sprint == "" {
		story.Sprint = models.DefaultSprint
	}
	if story.Tags == nil {
		story.Tags = []string{}
	}

	err := validateStoryFields(story, now)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("project", story.Project).
			Msg("rejected story create")
		return nil, err
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectProjectPrefixQuery = `
SELECT prefix
FROM projects
WHERE prefix = $1
`
	var prefix string
	err = tx.QueryRow(
		ctx,
		selectProjectPrefixQuery,
		story.Project,
	).Scan(&prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("project", story.Project).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project", story.Project).
			Msg("failed to select project")
		return nil, err
	}

	sequence, err := s.nextSequence(ctx, tx, prefix)
	if err != nil {
		return nil, err
	}
	story.Number = storynum.Format(prefix, sequence)

	const insertStoryQuery = `
INSERT INTO stories (number,
                     title,
                     description,
                     acceptance_criteria,
                     points,
                     status,
                     priority,
                     story_type,
                     project,
                     workspace,
                     team_lead,
                     epic,
                     sprint,
                     tags,
                     due_date,
                     assignee_id,
                     created_by,
                     updated_by,
                     created_at,
                     updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING id
`
	var storyID int64
	err = tx.QueryRow(
		ctx,
		insertStoryQuery,
		story.Number,
		story.Title,
		story.Description,
		story.AcceptanceCriteria,
		story.Points,
		story.Status,
		story.Priority,
		story.Type,
		story.Project,
		story.Workspace,
		story.TeamLead,
		story.Epic,
		story.Sprint,
		story.Tags,
		story.DueDate,
		story.AssigneeID,
		story.CreatedBy,
		story.UpdatedBy,
		story.CreatedAt,
		story.UpdatedAt,
	).Scan(&storyID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("number", story.Number).
			Msg("failed to insert story")
		return nil, err
	}
	story.ID = strconv.FormatInt(storyID, 10)

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("story_id", story.ID).
		Str("number", story.Number).
		Str("created_by", story.CreatedBy).
		Msg("created story")
	return story, nil
}

// nextSequence advances the project's story counter inside the
// caller's transaction. The counter row is seeded lazily from a
// max-scan of the project's existing numbers, which keeps the
// sequence monotonic even for projects that predate the counter
// table. Malformed numbers are skipped by the scan.
func (s *storyServiceImpl) nextSequence(ctx context.Context, tx pgx.Tx, prefix string) (int, error) {
	const selectCounterQuery = `
SELECT last_number
FROM story_counters
WHERE project = $1
FOR UPDATE
`
	var last int
	err := tx.QueryRow(ctx, selectCounterQuery, prefix).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		const selectNumbersQuery = `
SELECT number
FROM stories
WHERE project = $1
`
		rows, err := tx.Query(ctx, selectNumbersQuery, prefix)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("project", prefix).
				Msg("failed to select story numbers")
			return 0, err
		}

		var numbers []string
		for rows.Next() {
			var number string
			if err = rows.Scan(&number); err != nil {
				rows.Close()
				s.logger.Error().
					Err(err).
					Msg("failed to scan story number")
				return 0, err
			}
			numbers = append(numbers, number)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to iterate over rows")
			return 0, err
		}

		const insertCounterQuery = `
INSERT INTO story_counters (project, last_number)
VALUES ($1, $2)
ON CONFLICT (project) DO NOTHING
`
		seed := storynum.MaxSequence(numbers)
		_, err = tx.Exec(ctx, insertCounterQuery, prefix, seed)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("project", prefix).
				Msg("failed to seed story counter")
			return 0, err
		}
	} else if err != nil {
		s.logger.Error().
			Err(err).
			Str("project", prefix).
			Msg("failed to lock story counter")
		return 0, err
	}

	const advanceCounterQuery = `
UPDATE story_counters
SET last_number = last_number + 1
WHERE project = $1
RETURNING last_number
`
	var next int
	err = tx.QueryRow(ctx, advanceCounterQuery, prefix).Scan(&next)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project", prefix).
			Msg("failed to advance story counter")
		return 0, err
	}
	s.logger.Debug().
		Str("project", prefix).
		Int("sequence", next).
		Msg("allocated story sequence")
	return next, nil
}

const storyColumns = `id,
       number,
       title,
       description,
       acceptance_criteria,
       points,
       status,
       priority,
       story_type,
       project,
       workspace,
       team_lead,
       epic,
       sprint,
       tags,
       due_date,
       assignee_id,
       created_by,
       updated_by,
       created_at,
       updated_at`

func scanStory(row pgx.Row) (*models.Story, error) {
	var (
		story models.Story
		id    int64
	)
	err := row.Scan(
		&id,
		&story.Number,
		&story.Title,
		&story.Description,
		&story.AcceptanceCriteria,
		&story.Points,
		&story.Status,
		&story.Priority,
		&story.Type,
		&story.Project,
		&story.Workspace,
		&story.TeamLead,
		&story.Epic,
		&story.Sprint,
		&story.Tags,
		&story.DueDate,
		&story.AssigneeID,
		&story.CreatedBy,
		&story.UpdatedBy,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	story.ID = strconv.FormatInt(id, 10)
	return &story, nil
}

func (s *storyServiceImpl) GetStories(ctx context.Context, filter StoryFilter) ([]models.Story, error) {
	query := `
SELECT ` + storyColumns + `
FROM stories
`
	var (
		conditions []string
		args       []any
	)
	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.Project != "" {
		addCondition("project", filter.Project)
	}
	if filter.Status != "" {
		addCondition("status", filter.Status)
	}
	if filter.AssigneeID != "" {
		addCondition("assignee_id", filter.AssigneeID)
	}
	if filter.Sprint != "" {
		addCondition("sprint", filter.Sprint)
	}
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "ORDER BY created_at ASC"

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select stories")
		return nil, err
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan story")
			return nil, err
		}
		stories = append(stories, *story)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(stories)).
		Msg("selected stories")
	return stories, nil
}

func (s *storyServiceImpl) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	query := `
SELECT ` + storyColumns + `
FROM stories
WHERE id = $1
`
	story, err := scanStory(s.pgPool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("story_id", id).
				Msg("story not found")
			return nil, ErrStoryNotFound
		}

		s.logger.Error().
			Err(err).
			Str("story_id", id).
			Msg("failed to select story")
		return nil, err
	}
	return story, nil
}

func (s *storyServiceImpl) UpdateStory(ctx context.Context, params UpdateStoryParams) (*models.Story, error) {
	story, err := s.GetStoryByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if params.Title != nil {
		story.Title = strings.TrimSpace(*params.Title)
		if story.Title == "" {
			return nil, ErrTitleRequired
		}
	}
	if params.Description != nil {
		story.Description = *params.Description
	}
	if params.AcceptanceCriteria != nil {
		story.AcceptanceCriteria = *params.AcceptanceCriteria
	}
	if params.Points != nil {
		story.Points = *params.Points
	}
	if params.Status != nil {
		story.Status = *params.Status
	}
	if params.Priority != nil {
		story.Priority = *params.Priority
	}
	if params.Type != nil {
		story.Type = *params.Type
	}
	if params.Workspace != nil {
		story.Workspace = *params.Workspace
	}
	if params.TeamLead != nil {
		story.TeamLead = *params.TeamLead
	}
	if params.Epic != nil {
		story.Epic = *params.Epic
	}
	if params.Sprint != nil {
		story.Sprint = *params.Sprint
	}
	if params.Tags != nil {
		story.Tags = params.Tags
	}
	if params.DueDate != nil {
		story.DueDate = params.DueDate
	}
	if params.AssigneeID != nil {
		story.AssigneeID = params.AssigneeID
	}
	story.UpdatedBy = params.ActorID
	story.UpdatedAt = now

	err = validateStoryFields(story, now)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("story_id", story.ID).
			Msg("rejected story update")
		return nil, err
	}

	const updateStoryQuery = `
UPDATE stories
SET title = $1,
    description = $2,
    acceptance_criteria = $3,
    points = $4,
    status = $5,
    priority = $6,
    story_type = $7,
    workspace = $8,
    team_lead = $9,
    epic = $10,
    sprint = $11,
    tags = $12,
    due_date = $13,
    assignee_id = $14,
    updated_by = $15,
    updated_at = $16
WHERE id = $17
`
	_, err = s.pgPool.Exec(
		ctx,
		updateStoryQuery,
		story.Title,
		story.Description,
		story.AcceptanceCriteria,
		story.Points,
		story.Status,
		story.Priority,
		story.Type,
		story.Workspace,
		story.TeamLead,
		story.Epic,
		story.Sprint,
		story.Tags,
		story.DueDate,
		story.AssigneeID,
		story.UpdatedBy,
		story.UpdatedAt,
		story.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("story_id", story.ID).
			Msg("failed to update story")
		return nil, err
	}

	s.logger.Info().
		Str("story_id", story.ID).
		Str("updated_by", story.UpdatedBy).
		Msg("updated story")
	return story, nil
}

func (s *storyServiceImpl) DeleteStory(ctx context.Context, id string) error {
	const deleteStoryQuery = `
DELETE FROM stories
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteStoryQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("story_id", id).
			Msg("failed to delete story")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("story_id", id).
			Msg("story not found")
		return ErrStoryNotFound
	}

	s.logger.Info().
		Str("story_id", id).
		Msg("deleted story")
	return nil
}

// validateStoryFields holds the business rules shared by create and
// update: enum membership, the 1..5 point scale, and the rule that a
// due date may not fall before the day it is assigned.
func validateStoryFields(story *models.Story, now time.Time) error {
	if !story.Status.Valid() {
		return ErrInvalidStoryStatus
	}
	if !story.Priority.Valid() {
		return ErrInvalidStoryPriority
	}
	if !story.Type.Valid() {
		return ErrInvalidStoryType
	}
	if story.Points < 1 || story.Points > 5 {
		return ErrInvalidStoryPoints
	}
	if story.DueDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if story.DueDate.Before(today) {
			return ErrPastDueDate
		}
	}
	return nil
}
