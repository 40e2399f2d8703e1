package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/models"
)

type sprintServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewSprintService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) SprintService {
	return &sprintServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const sprintColumns = `id,
       name,
       goal,
       status,
       project,
       start_date,
       end_date,
       created_by,
       created_at,
       updated_at`

func scanSprint(row pgx.Row) (*models.Sprint, error) {
	var (
		sprint models.Sprint
		id     int64
	)
	err := row.Scan(
		&id,
		&sprint.Name,
		&sprint.Goal,
		&sprint.Status,
		&sprint.Project,
		&sprint.StartDate,
		&sprint.EndDate,
		&sprint.CreatedBy,
		&sprint.CreatedAt,
		&sprint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sprint.ID = strconv.FormatInt(id, 10)
	return &sprint, nil
}

func (s *sprintServiceImpl) GetSprints(ctx context.Context, project string) ([]models.Sprint, error) {
	query := `
SELECT ` + sprintColumns + `
FROM sprints
`
	var args []any
	if project != "" {
		query += "WHERE project = $1\n"
		args = append(args, project)
	}
	query += "ORDER BY start_date ASC"

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select sprints")
		return nil, err
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		sprint, err := scanSprint(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan sprint")
			return nil, err
		}
		sprints = append(sprints, *sprint)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return sprints, nil
}

func (s *sprintServiceImpl) GetSprintByID(ctx context.Context, id string) (*models.Sprint, error) {
	query := `
SELECT ` + sprintColumns + `
FROM sprints
WHERE id = $1
`
	sprint, err := scanSprint(s.pgPool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("sprint_id", id).
				Msg("sprint not found")
			return nil, ErrSprintNotFound
		}

		s.logger.Error().
			Err(err).
			Str("sprint_id", id).
			Msg("failed to select sprint")
		return nil, err
	}
	return sprint, nil
}

func (s *sprintServiceImpl) CreateSprint(ctx context.Context, params CreateSprintParams) (*models.Sprint, error) {
	now := time.Now()
	sprint := &models.Sprint{
		Name:      params.Name,
		Goal:      params.Goal,
		Status:    params.Status,
		Project:   params.Project,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		CreatedBy: params.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if sprint.Status == "" {
		sprint.Status = models.SprintPlanning
	}

	if !sprint.Status.Valid() {
		return nil, ErrInvalidSprintStatus
	}
	if !sprint.StartDate.Before(sprint.EndDate) {
		return nil, ErrSprintDateRange
	}

	const selectProjectQuery = `
SELECT prefix
FROM projects
WHERE prefix = $1
`
	var prefix string
	err := s.pgPool.QueryRow(ctx, selectProjectQuery, sprint.Project).Scan(&prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project", sprint.Project).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project", sprint.Project).
			Msg("failed to select project")
		return nil, err
	}

	const insertSprintQuery = `
INSERT INTO sprints (name,
                     goal,
                     status,
                     project,
                     start_date,
                     end_date,
                     created_by,
                     created_at,
                     updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`
	var sprintID int64
	err = s.pgPool.QueryRow(
		ctx,
		insertSprintQuery,
		sprint.Name,
		sprint.Goal,
		sprint.Status,
		sprint.Project,
		sprint.StartDate,
		sprint.EndDate,
		sprint.CreatedBy,
		sprint.CreatedAt,
		sprint.UpdatedAt,
	).Scan(&sprintID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert sprint")
		return nil, err
	}
	sprint.ID = strconv.FormatInt(sprintID, 10)

	s.logger.Info().
		Str("sprint_id", sprint.ID).
		Str("project", sprint.Project).
		Msg("created sprint")
	return sprint, nil
}

func (s *sprintServiceImpl) UpdateSprint(ctx context.Context, params UpdateSprintParams) (*models.Sprint, error) {
	sprint, err := s.GetSprintByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		sprint.Name = *params.Name
	}
	if params.Goal != nil {
		sprint.Goal = *params.Goal
	}
	if params.Status != nil {
		sprint.Status = *params.Status
	}
	if params.StartDate != nil {
		sprint.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		sprint.EndDate = *params.EndDate
	}
	sprint.UpdatedAt = time.Now()

	if !sprint.Status.Valid() {
		return nil, ErrInvalidSprintStatus
	}
	if !sprint.StartDate.Before(sprint.EndDate) {
		return nil, ErrSprintDateRange
	}

	const updateSprintQuery = `
UPDATE sprints
SET name = $1,
    goal = $2,
    status = $3,
    start_date = $4,
    end_date = $5,
    updated_at = $6
WHERE id = $7
`
	_, err = s.pgPool.Exec(
		ctx,
		updateSprintQuery,
		sprint.Name,
		sprint.Goal,
		sprint.Status,
		sprint.StartDate,
		sprint.EndDate,
		sprint.UpdatedAt,
		sprint.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sprint_id", sprint.ID).
			Msg("failed to update sprint")
		return nil, err
	}

	s.logger.Info().
		Str("sprint_id", sprint.ID).
		Msg("updated sprint")
	return sprint, nil
}

func (s *sprintServiceImpl) DeleteSprint(ctx context.Context, id string) error {
	const deleteSprintQuery = `
DELETE FROM sprints
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteSprintQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sprint_id", id).
			Msg("failed to delete sprint")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("sprint_id", id).
			Msg("sprint not found")
		return ErrSprintNotFound
	}

	s.logger.Info().
		Str("sprint_id", id).
		Msg("deleted sprint")
	return nil
}
