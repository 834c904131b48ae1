package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"account-service/internal/domain"
	"account-service/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	profile_picture TEXT NOT NULL DEFAULT 'default',
	register_date DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, display_name, password_hash, profile_picture, register_date)
VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.DisplayName,
		user.PasswordHash,
		user.ProfilePicture,
		user.RegisterDate,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert user: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, display_name, password_hash, profile_picture, register_date
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, display_name, password_hash, profile_picture, register_date
FROM users
WHERE display_name = ?`,
		displayName,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, display_name, password_hash, profile_picture, register_date
FROM users
WHERE username = ? AND password_hash = ?`,
		username,
		passwordHash,
	)
	return scanUser(row)
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.PasswordHash,
		&user.ProfilePicture,
		&user.RegisterDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
