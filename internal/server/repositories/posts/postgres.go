package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE foreign_key_violation: the owner row is gone.
const pgForeignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (user_id, contents)
		 VALUES ($1, $2)
		 RETURNING post_id
		 `

	created := *post
	if err := r.db.QueryRowContext(ctx, query, post.UserID, post.Contents).Scan(&created.ID); err != nil {
		return nil, translate(err)
	}
	return &created, nil
}

// ListByUser returns the user's posts ordered by id. Unknown users simply
// have no posts.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	query :=
		`SELECT post_id, user_id, contents FROM posts
		 WHERE user_id = $1
		 ORDER BY post_id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Contents); err != nil {
			return nil, translate(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, postID int64) (*models.Post, error) {
	query :=
		`SELECT post_id, user_id, contents FROM posts
		 WHERE user_id = $1 AND post_id = $2
		 `

	p := &models.Post{}
	if err := r.db.QueryRowContext(ctx, query, userID, postID).Scan(&p.ID, &p.UserID, &p.Contents); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Update changes only the contents of post (matched on UserID and ID).
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts SET contents = $1
		 WHERE user_id = $2 AND post_id = $3
		 RETURNING post_id, user_id, contents
		 `

	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, post.Contents, post.UserID, post.ID).
		Scan(&p.ID, &p.UserID, &p.Contents)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, postID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByUser removes every post of userID. Zero rows is not an error.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
		return translate(err)
	}
	return nil
}
