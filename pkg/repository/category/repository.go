package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for categories.
type Repository interface {
	Create(ctx context.Context, c *category.Category) error
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*category.Category, error)
	Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
