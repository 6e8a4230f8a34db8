package ports

import (
	"context"
	"dropoff-route-planner/internal/domain"
)

// Holds PlanningResults between the planning and selection requests of one session.
// Implementations return domain.ErrPlanNotFound for unknown or expired ids.
type PlanStore interface {
	Save(ctx context.Context, result *domain.PlanningResult) error
	Get(ctx context.Context, id string) (*domain.PlanningResult, error)
	Delete(ctx context.Context, id string) error
}
