package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shantnusharma/storyboard/internal/models"
)

type commentServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewCommentService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) CommentService {
	return &commentServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *commentServiceImpl) AddComment(ctx context.Context, params AddCommentParams) (*models.Comment, error) {
	comment := &models.Comment{
		StoryID:   params.StoryID,
		AuthorID:  params.AuthorID,
		Text:      strings.TrimSpace(params.Text),
		CreatedAt: time.Now(),
	}

	const insertCommentQuery = `
INSERT INTO comments (story_id,
                      author_id,
                      body,
                      created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	var commentID int64
	err := s.pgPool.QueryRow(
		ctx,
		insertCommentQuery,
		comment.StoryID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&commentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			s.logger.Warn().
				Str("story_id", comment.StoryID).
				Msg("story not found for comment")
			return nil, ErrStoryNotFound
		}

		s.logger.Error().
			Err(err).
			Str("story_id", comment.StoryID).
			Msg("failed to insert comment")
		return nil, err
	}
	comment.ID = strconv.FormatInt(commentID, 10)

	s.logger.Info().
		Str("comment_id", comment.ID).
		Str("story_id", comment.StoryID).
		Msg("added comment")
	return comment, nil
}

func (s *commentServiceImpl) GetComments(ctx context.Context, storyID string) ([]models.Comment, error) {
	const selectCommentsQuery = `
SELECT c.id,
       c.story_id,
       c.author_id,
       c.body,
       c.created_at,
       u.full_name,
       u.username
FROM comments c
         JOIN users u ON u.id = c.author_id
WHERE c.story_id = $1
ORDER BY c.created_at ASC
`
	rows, err := s.pgPool.Query(ctx, selectCommentsQuery, storyID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("story_id", storyID).
			Msg("failed to select comments")
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var (
			comment models.Comment
			id      int64
		)
		err = rows.Scan(
			&id,
			&comment.StoryID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.AuthorName,
			&comment.AuthorUsername,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan comment")
			return nil, err
		}
		comment.ID = strconv.FormatInt(id, 10)
		comments = append(comments, comment)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(comments)).
		Str("story_id", storyID).
		Msg("selected comments")
	return comments, nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, params DeleteCommentParams) error {
	const selectAuthorQuery = `
SELECT author_id
FROM comments
WHERE id = $1
`
	var authorID string
	err := s.pgPool.QueryRow(ctx, selectAuthorQuery, params.ID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("comment_id", params.ID).
				Msg("comment not found")
			return ErrCommentNotFound
		}

		s.logger.Error().
			Err(err).
			Str("comment_id", params.ID).
			Msg("failed to select comment")
		return err
	}

	if authorID != params.Actor.UserID && params.Actor.Role != models.RoleAdmin {
		s.logger.Warn().
			Str("comment_id", params.ID).
			Str("actor_id", params.Actor.UserID).
			Msg("comment delete forbidden")
		return ErrForbidden
	}

	const deleteCommentQuery = `
DELETE FROM comments
WHERE id = $1
`
	_, err = s.pgPool.Exec(ctx, deleteCommentQuery, params.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("comment_id", params.ID).
			Msg("failed to delete comment")
		return err
	}

	s.logger.Info().
		Str("comment_id", params.ID).
		Str("actor_id", params.Actor.UserID).
		Msg("deleted comment")
	return nil
}
