package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

const userColumns = `id, email, name, created_at, updated_at`

type SQLUserRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLUser(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db, now: utcNow}
}

func (r *SQLUserRepository) GetOrCreate(ctx context.Context, id, email string) (model.User, error) {
	query := `
		INSERT INTO users (id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, id, email, r.now())
	return scanUser(row)
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanUser(row)
}

func scanUser(row scannable) (model.User, error) {
	var u model.User
	var createdAt, updatedAt timestamp
	err := row.Scan(&u.ID, &u.Email, &u.Name, &createdAt, &updatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return u, nil
}

var _ UserRepository = (*SQLUserRepository)(nil)
