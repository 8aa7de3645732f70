package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bsn-backend/internal/dto"
	"bsn-backend/internal/services"
	"bsn-backend/pkg/utils"
)

type ReportController struct {
	fleetService *services.FleetService
	logger       *zap.Logger
}

func NewReportController(fleetService *services.FleetService, logger *zap.Logger) *ReportController {
	return &ReportController{fleetService: fleetService, logger: logger}
}

// FleetReport returns the fleet performance report, either as JSON or as an
// XLSX workbook when ?format=xlsx is requested.
func (c *ReportController) FleetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("fleet report requested", zap.String("format", format))

	data, err := c.fleetService.FleetStatistics(reqCtx, identity)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "fleet report generated", http.StatusOK)
}

var fleetReportHeaders = []string{
	"Plate Number", "Model", "Status", "Trips", "Revenue", "Fuel Cost",
	"Profit", "Distance (km)", "Maintenance Cost", "Last Trip", "Last Maintenance",
}

func performanceRow(entry map[string]interface{}) []interface{} {
	get := func(key string) interface{} {
		if v, ok := entry[key]; ok && v != nil {
			return v
		}
		return ""
	}
	return []interface{}{
		get("plate_number"), get("model"), get("status"),
		get("tripCount"), get("totalRevenue"), get("totalFuelCost"),
		get("totalProfit"), get("totalDistance"), get("maintenanceCost"),
		get("lastTripDate"), get("lastMaintenanceDate"),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data *dto.FleetDataDTO) error {
	f := excelize.NewFile()
	sheet := "Fleet Report"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &fleetReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, entry := range data.VehiclePerformance {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := performanceRow(entry)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "E", "I", 16)
	f.SetColWidth(sheet, "J", "K", 20)

	summaryRow := len(data.VehiclePerformance) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	summary := []interface{}{
		"TOTAL", "", "", data.Stats.TotalTrips, data.Stats.TotalRevenue, data.Stats.TotalFuelCost,
		data.Stats.TotalProfit, data.Stats.TotalDistance, data.Stats.MaintenanceCost,
	}
	f.SetSheetRow(sheet, cell, &summary)

	fileName := fmt.Sprintf("fleet_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
