package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"bsn-backend/internal/dto"
	"bsn-backend/internal/scope"
	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/types"
)

// Default daily revenue target for the weekly chart until targets become a
// per-branch setting.
const dailySalesTarget = 50000

// BranchDashboardService joins employees, stock and sales for one branch.
// Same aggregation pattern as the fleet engine, sales-side.
type BranchDashboardService struct {
	store  store.RecordStore
	scope  scope.Policy
	logger *zap.Logger
	now    func() time.Time
}

func NewBranchDashboardService(recordStore store.RecordStore, policy scope.Policy, logger *zap.Logger) *BranchDashboardService {
	return &BranchDashboardService{store: recordStore, scope: policy, logger: logger, now: time.Now}
}

func (s *BranchDashboardService) Dashboard(ctx context.Context, identity types.Identity, branchID string) (*dto.BranchDashboardDTO, error) {
	// A branch-bound caller asking for another branch would otherwise get the
	// branch record with silently empty joins; fail loudly instead.
	if identity.BranchBound() && branchID != identity.BranchID {
		return nil, fmt.Errorf("%w: branch %s", apperrors.ErrScopeViolation, branchID)
	}

	branch, err := s.store.FindByID(ctx, tables.Branches.String(), branchID)
	if err != nil {
		return nil, err
	}

	var (
		wg        sync.WaitGroup
		employees []map[string]interface{}
		stock     []map[string]interface{}
		sales     []map[string]interface{}
	)

	fetch := func(table tables.Table, dst *[]map[string]interface{}) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			filter := s.scope.ScopeFilter(identity, table, "")
			records, err := s.store.Find(ctx, table.String(), filter, nil)
			if err != nil {
				s.logger.Warn("dashboard fetch failed, continuing with empty set",
					zap.String("table", table.String()), zap.Error(err))
				return
			}
			out := make([]map[string]interface{}, 0, len(records))
			for i := range records {
				if scope.MatchesBranch(records[i].Fields["branch_id"], branchID) {
					out = append(out, records[i].Flatten())
				}
			}
			*dst = out
		}()
	}

	fetch(tables.Employees, &employees)
	fetch(tables.Stock, &stock)
	fetch(tables.Sales, &sales)
	wg.Wait()

	now := s.now()
	today := now.Format("2006-01-02")
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	var recentSales, todaySales []map[string]interface{}
	for _, sale := range sales {
		saleDate := strField(sale, "sale_date")
		if strings.HasPrefix(saleDate, today) {
			todaySales = append(todaySales, sale)
		}
		if d := dateField(sale, "sale_date"); d != nil && !d.Before(thirtyDaysAgo) {
			recentSales = append(recentSales, sale)
		}
	}

	var lowStock []map[string]interface{}
	for _, item := range stock {
		if numField(item, "quantity_available") <= numField(item, "reorder_level") {
			lowStock = append(lowStock, item)
		}
	}

	summary := dto.DashboardSummaryDTO{
		TotalEmployees:  len(employees),
		TotalStock:      len(stock),
		LowStockAlerts:  len(lowStock),
		TodayRevenue:    sumField(todaySales, "total_amount"),
		TotalRevenue:    sumField(recentSales, "total_amount"),
		TodaySalesCount: len(todaySales),
	}

	return &dto.BranchDashboardDTO{
		Branch:        branch.Flatten(),
		Summary:       summary,
		Employees:     employees,
		Stock:         stock,
		Sales:         lastN(recentSales, 10),
		LowStockItems: lowStock,
		WeeklyData:    s.weeklySeries(recentSales, now),
	}, nil
}

// weeklySeries builds the trailing 7-day revenue chart, oldest day first.
func (s *BranchDashboardService) weeklySeries(sales []map[string]interface{}, now time.Time) []dto.DashboardDayDTO {
	series := make([]dto.DashboardDayDTO, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStr := day.Format("2006-01-02")

		var total float64
		for _, sale := range sales {
			if strings.HasPrefix(strField(sale, "sale_date"), dayStr) {
				total += numField(sale, "total_amount")
			}
		}
		series = append(series, dto.DashboardDayDTO{
			Name:   day.Format("Mon"),
			Sales:  total,
			Target: dailySalesTarget,
		})
	}
	return series
}

func sumField(records []map[string]interface{}, key string) float64 {
	var total float64
	for _, r := range records {
		total += numField(r, key)
	}
	return total
}

// lastN returns the newest n records, newest first, assuming input is in
// store order (oldest first).
func lastN(records []map[string]interface{}, n int) []map[string]interface{} {
	if len(records) > n {
		records = records[len(records)-n:]
	}
	out := make([]map[string]interface{}, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
	}
	return out
}
