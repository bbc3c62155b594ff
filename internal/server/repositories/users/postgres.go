package users

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

// SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

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
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return common.ErrDuplicateName
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (user_name, password_hash)
		 VALUES ($1, $2)
		 RETURNING user_id
		 `

	created := *user
	if err := r.db.QueryRowContext(ctx, query, user.UserName, user.PasswordHash).Scan(&created.ID); err != nil {
		return nil, translate(err)
	}
	return &created, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT user_id, user_name, password_hash FROM users
		 ORDER BY user_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.PasswordHash); err != nil {
			return nil, translate(err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT user_id, user_name, password_hash FROM users
		 WHERE user_name = $1
		 `

	u := &models.User{}
	if err := r.db.QueryRowContext(ctx, query, userName).Scan(&u.ID, &u.UserName, &u.PasswordHash); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Update replaces name and hash of the user with user.ID.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET user_name = $1, password_hash = $2
		 WHERE user_id = $3
		 RETURNING user_id, user_name, password_hash
		 `

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, user.UserName, user.PasswordHash, user.ID).
		Scan(&u.ID, &u.UserName, &u.PasswordHash)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
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
