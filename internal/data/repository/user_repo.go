package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-api/internal/data/entity"
	"review-api/pkg/apperr"
	"review-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, prev *time.Time, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, first_name, last_name, bio, role,
		       is_superuser, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, bio, role,
		                   is_superuser, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsSuperuser,
		user.LastLogin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isConstraintError(err) {
			ur.log.Warn("User violates constraint",
				zap.Error(err),
				zap.String("username", user.Username),
			)
		} else {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("email", user.Email),
				zap.String("username", user.Username),
			)
		}
		return translate(fmt.Sprintf("create user %s", user.Username), err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("by", column),
			zap.Any("value", value),
		)
		return nil, fmt.Errorf("find user by %s %v: %w", column, value, err)
	}

	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email", email)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username", username)
}

// FindAll lists users by username, optionally narrowed by a case-insensitive
// username substring.
func (ur *userRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE $1
		ORDER BY username
		LIMIT $2 OFFSET $3
	`

	rows, err := ur.db.Query(ctx, query, containsPattern(search), limit, offset)
	if err != nil {
		ur.log.Error("Failed to find all users",
			zap.Error(err),
			zap.String("search", search),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (ur *userRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE username ILIKE $1`

	var count int64
	if err := ur.db.QueryRow(ctx, query, containsPattern(search)).Scan(&count); err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, first_name = $4, last_name = $5,
		    bio = $6, role = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.UpdatedAt,
	)

	if err != nil {
		if !isConstraintError(err) {
			ur.log.Error("Failed to update user",
				zap.Error(err),
				zap.String("user_id", user.ID.String()),
			)
		}
		return translate(fmt.Sprintf("update user %s", user.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("update user", "user not found")
	}

	return nil
}

// UpdateLastLogin stamps last_login only if it still equals prev, so two
// exchanges racing on the same confirmation code cannot both win.
func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, prev *time.Time, at time.Time) (bool, error) {
	query := `
		UPDATE users SET last_login = $3
		WHERE id = $1 AND last_login IS NOT DISTINCT FROM $2
	`

	result, err := ur.db.Exec(ctx, query, id, prev, at)
	if err != nil {
		ur.log.Error("Failed to update last login",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return false, fmt.Errorf("update last login %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// Delete removes the user; reviews and comments go with it.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("delete user", "user not found")
	}

	ur.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
