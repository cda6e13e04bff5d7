package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
)

// UserRepository resolves acting users. It is consumed by the
// authentication middleware before any core operation runs; the core
// itself never checks credentials.
type UserRepository interface {
	// Get retrieves a user by identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByAccessToken resolves the user owning the given bearer token.
	// Returns an ObjectNotFoundError for unknown tokens.
	GetByAccessToken(ctx context.Context, token string) (*user.User, error)
}
