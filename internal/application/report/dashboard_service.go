package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/report"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/cache"
)

// statsCacheTTL bounds staleness of the dashboard roll-up when an
// invalidation is missed.
const statsCacheTTL = 5 * time.Minute

// DashboardService computes the portfolio-wide dashboard roll-up. A failed
// fetch degrades to zero stats instead of surfacing an error.
type DashboardService struct {
	residentRepo  portfolio.ResidentRepository
	repaymentRepo portfolio.RepaymentRepository
	queryCache    cache.QueryCache
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	residentRepo portfolio.ResidentRepository,
	repaymentRepo portfolio.RepaymentRepository,
	queryCache cache.QueryCache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		residentRepo:  residentRepo,
		repaymentRepo: repaymentRepo,
		queryCache:    queryCache,
		logger:        logger,
	}
}

// Stats returns the dashboard roll-up, read through the query cache.
// It never returns an error: any repository fault is logged and reported
// as zero stats so the dashboard always renders.
func (s *DashboardService) Stats(ctx context.Context) report.DashboardStats {
	if s.queryCache != nil {
		if data, ok, err := s.queryCache.Get(ctx, cache.KeyDashboardStats); err == nil && ok {
			var stats report.DashboardStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return stats
			}
		}
	}

	residents, err := s.residentRepo.FindAll(ctx, allResidentsFilter())
	if err != nil {
		s.logger.Warn("Dashboard resident fetch failed, degrading to zero stats", zap.Error(err))
		return report.ZeroStats()
	}
	repayments, err := s.repaymentRepo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("Dashboard repayment fetch failed, degrading to zero stats", zap.Error(err))
		return report.ZeroStats()
	}

	stats := report.ComputeDashboardStats(residents, repayments, time.Now())

	if s.queryCache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.queryCache.Set(ctx, cache.KeyDashboardStats, data, statsCacheTTL); err != nil {
				s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats
}

// allResidentsFilter disables pagination so the roll-up sees the whole
// portfolio.
func allResidentsFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Page = 1
	filter.PageSize = 0
	return filter
}
