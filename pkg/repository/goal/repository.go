package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/goal"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for savings goals.
type Repository interface {
	Create(ctx context.Context, g *goal.Goal) error
	Get(ctx context.Context, id uuid.UUID) (*goal.Goal, error)
	// ListByUser lists a user's goals, open goals before completed ones.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
	Update(ctx context.Context, id uuid.UUID, update dto.GoalUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
