// Package goal provides business logic for savings goals. Goal completion
// is derived: a goal is completed exactly when its current amount has
// reached its target, and the stored flag is recomputed on every save.
package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/goal"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
)

// Service provides business logic for goal operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new goal Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries the fields of a new goal.
type CreateInput struct {
	UserID        uuid.UUID
	Title         string
	Description   *string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	Color         string
}

// UpdateInput carries the editable fields of an existing goal. Nil fields
// are left untouched.
type UpdateInput struct {
	Title         *string
	Description   *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	Color         *string
}

// Create registers a new goal.
func (s *Service) Create(ctx context.Context, input CreateInput) (g *goal.Goal, err error) {
	logger := s.logger.With("user_id", input.UserID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		start := input.StartDate
		if start.IsZero() {
			start = time.Now()
		}
		g, err = goal.New(input.UserID, input.Title, input.Description,
			input.TargetAmount, input.CurrentAmount, start, input.EndDate, input.Color)
		if err != nil {
			return err
		}
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		return goals.Create(ctx, g)
	})
	if err != nil {
		g = nil
		logger.Error("create goal failed", "error", err)
		return
	}
	logger.Info("goal created", "goal_id", g.ID, "target", g.TargetAmount.String())
	return
}

// Get retrieves a single goal owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (g *goal.Goal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, id)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return goal.ErrGoalNotFound
		}
		return nil
	})
	if err != nil {
		g = nil
	}
	return
}

// List lists the user's goals, open goals first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*goal.Goal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		list, err = goals.ListByUser(ctx, userID)
		return err
	})
	return
}

// Update edits a goal and recomputes its completion from the resulting
// amounts. A caller cannot set completion directly.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (g *goal.Goal, err error) {
	logger := s.logger.With("user_id", userID, "goal_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, id)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return goal.ErrGoalNotFound
		}
		if input.Title != nil && *input.Title == "" {
			return goal.ErrTitleRequired
		}

		target := g.TargetAmount
		if input.TargetAmount != nil {
			target = *input.TargetAmount
		}
		current := g.CurrentAmount
		if input.CurrentAmount != nil {
			current = *input.CurrentAmount
		}
		if !target.IsPositive() {
			return goal.ErrTargetMustBePositive
		}
		if current.IsNegative() {
			return goal.ErrCurrentAmountNegative
		}
		completed := current.GreaterThanOrEqual(target)

		if err = goals.Update(ctx, id, dto.GoalUpdate{
			Title:         input.Title,
			Description:   input.Description,
			TargetAmount:  input.TargetAmount,
			CurrentAmount: input.CurrentAmount,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			Color:         input.Color,
			Completed:     &completed,
		}); err != nil {
			return err
		}
		g, err = goals.Get(ctx, id)
		return err
	})
	if err != nil {
		g = nil
		logger.Error("update goal failed", "error", err)
		return
	}
	logger.Info("goal updated", "completed", g.Completed())
	return
}

// AddContribution increases the goal's saved amount. A negative amount takes
// a withdrawal back out; the saved amount never goes below zero.
func (s *Service) AddContribution(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (g *goal.Goal, err error) {
	logger := s.logger.With("user_id", userID, "goal_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err = goals.Get(ctx, id)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return goal.ErrGoalNotFound
		}
		current := g.CurrentAmount.Add(amount)
		if current.IsNegative() {
			current = decimal.Zero
		}
		completed := current.GreaterThanOrEqual(g.TargetAmount)
		if err = goals.Update(ctx, id, dto.GoalUpdate{
			CurrentAmount: &current,
			Completed:     &completed,
		}); err != nil {
			return err
		}
		g, err = goals.Get(ctx, id)
		return err
	})
	if err != nil {
		g = nil
		logger.Error("goal contribution failed", "error", err)
		return
	}
	logger.Info("goal contribution recorded", "amount", amount.String(), "completed", g.Completed())
	return
}

// Delete removes a goal.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("user_id", userID, "goal_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err := goals.Get(ctx, id)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return goal.ErrGoalNotFound
		}
		return goals.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("delete goal failed", "error", err)
		return err
	}
	logger.Info("goal deleted")
	return nil
}
