package identity

import "context"

// UserRepository defines the interface for persisting and retrieving the
// minimal User ownership scope.
type UserRepository interface {
	// NextID generates the next available UserID.
	NextID() UserID

	// FindByID retrieves a user by their unique ID.
	// Returns shared.ErrNotFound if the user does not exist.
	FindByID(ctx context.Context, id UserID) (*User, error)

	// Save persists a user to the repository. If the user already exists,
	// it is updated; otherwise, it is created.
	Save(ctx context.Context, user *User) error

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id UserID) (bool, error)
}
