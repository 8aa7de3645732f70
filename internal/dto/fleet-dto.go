package dto

// FleetStatsDTO holds the fleet-level scalars reduced over the trip and
// maintenance sets.
type FleetStatsDTO struct {
	TotalVehicles    int     `json:"totalVehicles"`
	ActiveVehicles   int     `json:"activeVehicles"`
	TotalTrips       int     `json:"totalTrips"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalFuelCost    float64 `json:"totalFuelCost"`
	TotalProfit      float64 `json:"totalProfit"`
	TotalDistance    float64 `json:"totalDistance"`
	MaintenanceCost  float64 `json:"maintenanceCost"`
	AvgProfitPerTrip float64 `json:"avgProfitPerTrip"`
}

// FleetDataDTO is the full aggregation result: base record sets, computed
// scalars and the ranked per-vehicle breakdown. Never persisted; recomputed on
// every request.
type FleetDataDTO struct {
	Vehicles           []map[string]interface{} `json:"vehicles"`
	Trips              []map[string]interface{} `json:"trips"`
	Maintenance        []map[string]interface{} `json:"maintenance"`
	Expenses           []map[string]interface{} `json:"expenses"`
	Stats              FleetStatsDTO            `json:"stats"`
	VehiclePerformance []map[string]interface{} `json:"vehiclePerformance"`
}
