package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// SQL queries for user operations.
const (
	sqlInsertUser = `
		INSERT INTO users (id, creation_date) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	sqlSelectUserByID = `SELECT id, creation_date FROM users WHERE id = $1`
	sqlExistsUser     = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
)

// userRow represents a user row in the database.
type userRow struct {
	ID           string    `db:"id"`
	CreationDate time.Time `db:"creation_date"`
}

// UserRepository implements the identity.UserRepository interface for PostgreSQL.
type UserRepository struct {
	db sqlExecer
}

// NewUserRepository creates a new UserRepository with the given database connection.
func NewUserRepository(db sqlExecer) *UserRepository {
	return &UserRepository{db: db}
}

// NextID generates the next available UserID.
func (r *UserRepository) NextID() identity.UserID {
	return identity.NewUserID()
}

// FindByID retrieves a user by their unique ID.
func (r *UserRepository) FindByID(ctx context.Context, id identity.UserID) (*identity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, sqlSelectUserByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return rowToUser(row)
}

// Save persists a user to the repository. The ownership scope carries no
// mutable fields once created, so Save only ever inserts.
func (r *UserRepository) Save(ctx context.Context, user *identity.User) error {
	if _, err := r.db.ExecContext(ctx, sqlInsertUser, user.ID().String(), user.CreatedAt()); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ExistsByID reports whether a user with the given ID exists.
func (r *UserRepository) ExistsByID(ctx context.Context, id identity.UserID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsUser, id.String()); err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return exists, nil
}

// rowToUser converts a database row to a domain User entity.
func rowToUser(row userRow) (*identity.User, error) {
	id, err := identity.ParseUserID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return identity.ReconstructUser(id, row.CreationDate), nil
}
