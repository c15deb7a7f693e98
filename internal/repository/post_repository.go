package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/content-planner/internal/models"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

const postColumns = `id, title, content, platform, status, scheduled_time, engagement_score, image_url, created_at`

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var scheduledTime sql.NullTime
	var imageURL sql.NullString

	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Platform, &post.Status, &scheduledTime, &post.EngagementScore, &imageURL, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	if scheduledTime.Valid {
		post.ScheduledTime = &scheduledTime.Time
	}
	if imageURL.Valid {
		post.ImageURL = &imageURL.String
	}
	return &post, nil
}

// Create inserts post and fills in the generated id and created_at.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, platform, status, scheduled_time, engagement_score, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Platform, post.Status, post.ScheduledTime, post.EngagementScore, post.ImageURL).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	var conds []string
	var args []any

	if filter.Platform != "" {
		args = append(args, filter.Platform)
		conds = append(conds, fmt.Sprintf("platform = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	for _, term := range strings.Fields(filter.Search) {
		args = append(args, "%"+escapeLike(term)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%[1]d OR content ILIKE $%[1]d)", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

// Update overwrites every mutable column. It reports false when no row has
// post.ID; created_at is read back from the row, never written.
func (r *postRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		UPDATE posts
		SET title = $1,
			content = $2,
			platform = $3,
			status = $4,
			scheduled_time = $5,
			engagement_score = $6,
			image_url = $7
		WHERE id = $8
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Platform, post.Status, post.ScheduledTime, post.EngagementScore, post.ImageURL, post.ID).
		Scan(&post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return true, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
