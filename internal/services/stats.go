package services

import (
	"context"
	"time"

	"github.com/openshelf/openshelf/types"
)

// StatsRepository defines the dashboard summary queries.
type StatsRepository interface {
	AdminStats(ctx context.Context, now time.Time) (types.AdminStats, error)
	UserStats(ctx context.Context, patronID int, now time.Time) (types.UserStats, error)
}

// StatsService encapsulates the dashboard summaries.
type StatsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Admin(ctx context.Context) (types.AdminStats, error) {
	return s.repo.AdminStats(ctx, time.Now())
}

func (s *StatsService) User(ctx context.Context, patronID int) (types.UserStats, error) {
	return s.repo.UserStats(ctx, patronID, time.Now())
}
