package dto

// DashboardSummaryDTO is the headline block of the branch dashboard.
type DashboardSummaryDTO struct {
	TotalEmployees  int     `json:"totalEmployees"`
	TotalStock      int     `json:"totalStock"`
	LowStockAlerts  int     `json:"lowStockAlerts"`
	TodayRevenue    float64 `json:"todayRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TodaySalesCount int     `json:"todaySalesCount"`
}

// DashboardDayDTO is one point of the 7-day revenue series.
type DashboardDayDTO struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Target float64 `json:"target"`
}

// BranchDashboardDTO joins employees, stock and sales for one branch.
type BranchDashboardDTO struct {
	Branch        map[string]interface{}   `json:"branch"`
	Summary       DashboardSummaryDTO      `json:"summary"`
	Employees     []map[string]interface{} `json:"employees"`
	Stock         []map[string]interface{} `json:"stock"`
	Sales         []map[string]interface{} `json:"sales"`
	LowStockItems []map[string]interface{} `json:"lowStockItems"`
	WeeklyData    []DashboardDayDTO        `json:"weeklyData"`
}
