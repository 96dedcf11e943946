package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for users.
type Repository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
