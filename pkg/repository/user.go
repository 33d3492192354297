package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/eventscope/pkg/domain"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	db *sqlx.DB
}

// userSQL represents a user for SQL operations
type userSQL struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	IsPartner bool      `db:"is_partner"`
	Credits   int       `db:"credits"`
	CreatedAt time.Time `db:"created_at"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, is_partner, credits) VALUES (:name, :email, :is_partner, :credits)`
	result, err := r.db.NamedExecContext(ctx, query, &userSQL{
		Name:      user.Name,
		Email:     user.Email,
		IsPartner: user.IsPartner,
		Credits:   user.Credits,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u userSQL
	err := r.db.GetContext(ctx, &u, "SELECT id, name, email, is_partner, credits, created_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsPartner: u.IsPartner,
		Credits:   u.Credits,
		CreatedAt: u.CreatedAt,
	}, nil
}

// SetPartner changes the elevated status of a user
func (r *UserRepository) SetPartner(ctx context.Context, id int64, partner bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET is_partner = ? WHERE id = ?", partner, id)
	if err != nil {
		return fmt.Errorf("set partner: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("user %d", id))
}

// expectAffected turns a zero-rows update into ErrNotFound
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
