package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/models"
)

type projectServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewProjectService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) ProjectService {
	return &projectServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const projectColumns = `id,
       name,
       prefix,
       description,
       team_lead_id,
       created_by,
       created_at,
       updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		project models.Project
		id      int64
	)
	err := row.Scan(
		&id,
		&project.Name,
		&project.Prefix,
		&project.Description,
		&project.TeamLeadID,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.ID = strconv.FormatInt(id, 10)
	return &project, nil
}

func (s *projectServiceImpl) GetProjects(ctx context.Context) ([]models.Project, error) {
	query := `
SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at ASC
`
	rows, err := s.pgPool.Query(ctx, query)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select projects")
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan project")
			return nil, err
		}
		projects = append(projects, *project)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return projects, nil
}

func (s *projectServiceImpl) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1
`
	project, err := scanProject(s.pgPool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("project_id", id).
				Msg("project not found")
			return nil, ErrProjectNotFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to select project")
		return nil, err
	}
	return project, nil
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	now := time.Now()
	project := &models.Project{
		Name:        params.Name,
		Prefix:      params.Prefix,
		Description: params.Description,
		TeamLeadID:  params.TeamLeadID,
		CreatedBy:   params.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertProjectQuery = `
INSERT INTO projects (name,
                      prefix,
                      description,
                      team_lead_id,
                      created_by,
                      created_at,
                      updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	var projectID int64
	err := s.pgPool.QueryRow(
		ctx,
		insertProjectQuery,
		project.Name,
		project.Prefix,
		project.Description,
		project.TeamLeadID,
		project.CreatedBy,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&projectID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("prefix", project.Prefix).
				Msg("project prefix already exists")
			return nil, ErrProjectPrefixTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert project")
		return nil, err
	}
	project.ID = strconv.FormatInt(projectID, 10)

	s.logger.Info().
		Str("project_id", project.ID).
		Str("prefix", project.Prefix).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error) {
	project, err := s.GetProjectByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		project.Name = *params.Name
	}
	if params.Prefix != nil {
		project.Prefix = *params.Prefix
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.TeamLeadID != nil {
		project.TeamLeadID = params.TeamLeadID
	}
	project.UpdatedAt = time.Now()

	const updateProjectQuery = `
UPDATE projects
SET name = $1,
    prefix = $2,
    description = $3,
    team_lead_id = $4,
    updated_at = $5
WHERE id = $6
`
	_, err = s.pgPool.Exec(
		ctx,
		updateProjectQuery,
		project.Name,
		project.Prefix,
		project.Description,
		project.TeamLeadID,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("prefix", project.Prefix).
				Msg("project prefix already exists")
			return nil, ErrProjectPrefixTaken
		}

		s.logger.Error().
			Err(err).
			Str("project_id", project.ID).
			Msg("failed to update project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	const deleteProjectQuery = `
DELETE FROM projects
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteProjectQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to delete project")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("project_id", id).
			Msg("project not found")
		return ErrProjectNotFound
	}

	s.logger.Info().
		Str("project_id", id).
		Msg("deleted project")
	return nil
}
