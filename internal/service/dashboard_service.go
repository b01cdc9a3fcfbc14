package service

import (
	"context"
	"math"
	"time"

	"github.com/fwtracker/backend/internal/repository"
)

const recentItemLimit = 10

// DashboardResponse is the aggregate read the dashboard renders.
// Nothing here mutates state.
type DashboardResponse struct {
	TotalLists     int64                   `json:"total_lists"`
	TotalItems     int64                   `json:"total_items"`
	CompletedItems int64                   `json:"completed_items"`
	OverdueItems   int64                   `json:"overdue_items"`
	HighPriority   int64                   `json:"high_priority"`
	FrameworkUsage map[string]int64        `json:"framework_usage"`
	RecentItems    []repository.RecentItem `json:"recent_items"`
	CompletionRate float64                 `json:"completion_rate"`
}

// DashboardService serves owner-scoped aggregate counters.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uint) (*DashboardResponse, error)
}

type dashboardService struct {
	stats repository.StatsRepository
	// now is injectable so overdue boundaries are testable
	now func() time.Time
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(stats repository.StatsRepository) DashboardService {
	return &dashboardService{stats: stats, now: time.Now}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID uint) (*DashboardResponse, error) {
	totalLists, err := s.stats.TotalLists(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalItems, err := s.stats.TotalItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.stats.CompletedItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.now().Format("2006-01-02")
	overdue, err := s.stats.OverdueItems(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	highPriority, err := s.stats.OpenHighPriorityItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage, err := s.stats.FrameworkUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	usageMap := make(map[string]int64, len(usage))
	for _, row := range usage {
		usageMap[row.FrameworkKey] = row.Count
	}
	recent, err := s.stats.RecentItems(ctx, userID, recentItemLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []repository.RecentItem{}
	}

	rate := 0.0
	if totalItems > 0 {
		rate = math.Round(float64(completed)/float64(totalItems)*1000) / 10
	}
	return &DashboardResponse{
		TotalLists:     totalLists,
		TotalItems:     totalItems,
		CompletedItems: completed,
		OverdueItems:   overdue,
		HighPriority:   highPriority,
		FrameworkUsage: usageMap,
		RecentItems:    recent,
		CompletionRate: rate,
	}, nil
}
