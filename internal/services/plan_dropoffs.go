package services

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/metrics"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Planner enumerates every visiting order of a request and computes a schedule for each.
type Planner struct {
	Builder *ScheduleBuilder
	// Maximum schedules computed at once; bounds load on the routing provider.
	Concurrency int
	// Overall deadline for one run; zero means none. Candidates still pending
	// when it fires are marked failed with FailureTimeout.
	Timeout time.Duration

	now   func() time.Time
	newID func() string
}

func NewPlanner(builder *ScheduleBuilder, concurrency int, timeout time.Duration) *Planner {
	return &Planner{
		Builder:     builder,
		Concurrency: concurrency,
		Timeout:     timeout,
	}
}

// Plan produces a PlanningResult with exactly one entry per permutation of the
// request's destinations (one entry when there are none). Per-candidate failures
// are recorded on their entries and never abort the run.
func (p *Planner) Plan(ctx context.Context, req *domain.PlanningRequest) (*domain.PlanningResult, error) {
	if req == nil {
		return nil, errors.New("plan dropoffs: request must be non-nil")
	}
	if p.Builder == nil {
		return nil, errors.New("plan dropoffs: schedule builder must be non-nil")
	}

	logger := zerolog.Ctx(ctx)
	metrics.PlanRuns.Inc()

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	// Indexes are fixed here, before any concurrent work starts.
	candidates := EnumerateCandidates(req)
	entries := make([]domain.Entry, len(candidates))

	limit := p.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, c := range candidates {
		g.Go(func() error {
			schedule := p.Builder.Build(ctx, req, c)
			entries[i] = domain.Entry{Candidate: c, Schedule: schedule}

			metrics.Candidates.WithLabelValues(string(schedule.Status), string(schedule.Failure)).Inc()
			if schedule.Failed() {
				logger.Warn().
					Int("candidate", c.Index).
					Str("route", c.Label).
					Str("failure", string(schedule.Failure)).
					Str("reason", schedule.Reason).
					Msg("candidate schedule failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.PlanningResult{
		ID:        p.id(),
		Request:   *req,
		CreatedAt: p.clock(),
		Entries:   entries,
	}

	logger.Info().
		Str("plan_id", result.ID).
		Int("destinations", len(req.Destinations)).
		Int("candidates", result.Len()).
		Int("failed", result.Failed()).
		Msg("planning run complete")

	return result, nil
}

func (p *Planner) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now().UTC()
}

func (p *Planner) id() string {
	if p.newID != nil {
		return p.newID()
	}
	return uuid.NewString()
}
