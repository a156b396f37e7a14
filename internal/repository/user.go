package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"jahayeon_backend/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (user_id, email, password, oauth_provider, full_name, nickname, level, coins, num_events, num_parties, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		u.UserID,
		u.Email,
		u.Password,
		u.OAuthProvider,
		u.FullName,
		u.Nickname,
		u.Level,
		u.Coins,
		u.NumEvents,
		u.NumParties,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

const userColumns = `user_id, email, password, oauth_provider, full_name, nickname, level, coins, num_events, num_parties, created_at`

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// GetByProvider retrieves a user by id scoped to an oauth provider
func (r *userRepository) GetByProvider(ctx context.Context, userID, provider string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND oauth_provider = $2`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by provider: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) UpdateNickname(ctx context.Context, userID, nickname string) error {
	query := `UPDATE users SET nickname = $2 WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, nickname)
	if err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) AwardEventCompletion(ctx context.Context, userID string) error {
	query := `UPDATE users SET level = level + 5, num_events = num_events + 1 WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to award event completion: %w", err)
	}
	return nil
}

func (r *userRepository) AwardPartyCompletion(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `UPDATE users SET level = level + 5, num_parties = num_parties + 1 WHERE user_id = ANY($1)`

	_, err := r.db.ExecContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return fmt.Errorf("failed to award party completion: %w", err)
	}
	return nil
}
