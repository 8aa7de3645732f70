package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"bsn-backend/internal/dto"
	"bsn-backend/internal/scope"
	"bsn-backend/internal/store"
	"bsn-backend/internal/tables"
	"bsn-backend/pkg/types"
)

// FleetService is the cross-entity aggregation engine: it joins vehicles,
// trips, maintenance and expenses at request time and reduces them into
// operational statistics. The backing store offers no native joins, so the
// joins happen here, in memory, per request.
type FleetService struct {
	store  store.RecordStore
	scope  scope.Policy
	logger *zap.Logger
}

func NewFleetService(recordStore store.RecordStore, policy scope.Policy, logger *zap.Logger) *FleetService {
	return &FleetService{store: recordStore, scope: policy, logger: logger}
}

// FleetStatistics fetches the four record sets concurrently — each one scoped
// through the access policy and each falling back to an empty set on error,
// since partial statistics beat a dead dashboard — then folds them.
func (s *FleetService) FleetStatistics(ctx context.Context, identity types.Identity) (*dto.FleetDataDTO, error) {
	var (
		wg          sync.WaitGroup
		vehicles    []map[string]interface{}
		trips       []map[string]interface{}
		maintenance []map[string]interface{}
		expenses    []map[string]interface{}
	)

	fetch := func(table tables.Table, dst *[]map[string]interface{}) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			filter := s.scope.ScopeFilter(identity, table, "")
			records, err := s.store.Find(ctx, table.String(), filter, nil)
			if err != nil {
				s.logger.Warn("fleet fetch failed, continuing with empty set",
					zap.String("table", table.String()), zap.Error(err))
				return
			}
			out := make([]map[string]interface{}, 0, len(records))
			for i := range records {
				out = append(out, records[i].Flatten())
			}
			*dst = out
		}()
	}

	fetch(tables.Vehicles, &vehicles)
	fetch(tables.Trips, &trips)
	fetch(tables.VehicleMaintenance, &maintenance)
	fetch(tables.Expenses, &expenses)
	wg.Wait()

	stats := computeFleetStats(vehicles, trips, maintenance)
	performance := computeVehiclePerformance(vehicles, trips, maintenance)

	// Presentation order only; the scalars above are already final.
	sortByDateDesc(trips, "trip_date")
	sortByDateDesc(maintenance, "maintenance_date")
	sortByDateDesc(expenses, "expense_date")

	return &dto.FleetDataDTO{
		Vehicles:           vehicles,
		Trips:              trips,
		Maintenance:        maintenance,
		Expenses:           expenses,
		Stats:              stats,
		VehiclePerformance: performance,
	}, nil
}

func computeFleetStats(vehicles, trips, maintenance []map[string]interface{}) dto.FleetStatsDTO {
	stats := dto.FleetStatsDTO{
		TotalVehicles: len(vehicles),
		TotalTrips:    len(trips),
	}

	for _, v := range vehicles {
		status := strField(v, "status")
		if status == "active" || status == "" {
			stats.ActiveVehicles++
		}
	}
	for _, t := range trips {
		stats.TotalRevenue += numField(t, "amount_charged")
		stats.TotalFuelCost += numField(t, "fuel_cost")
		stats.TotalDistance += numField(t, "distance_km")
	}
	for _, m := range maintenance {
		stats.MaintenanceCost += numField(m, "cost")
	}

	stats.TotalProfit = stats.TotalRevenue - stats.TotalFuelCost
	if len(trips) > 0 {
		stats.AvgProfitPerTrip = stats.TotalProfit / float64(len(trips))
	}
	return stats
}

// computeVehiclePerformance groups trips and maintenance by plate number and
// reduces each group. The plate is the natural key shared across the tables.
func computeVehiclePerformance(vehicles, trips, maintenance []map[string]interface{}) []map[string]interface{} {
	performance := make([]map[string]interface{}, 0, len(vehicles))

	for _, vehicle := range vehicles {
		plate := strField(vehicle, "plate_number")

		entry := make(map[string]interface{}, len(vehicle)+7)
		for k, v := range vehicle {
			entry[k] = v
		}

		var revenue, fuel, distance, maintCost float64
		tripCount := 0
		var lastTrip, lastMaint *time.Time

		for _, t := range trips {
			if strField(t, "vehicle_plate_number") != plate {
				continue
			}
			tripCount++
			revenue += numField(t, "amount_charged")
			fuel += numField(t, "fuel_cost")
			distance += numField(t, "distance_km")
			lastTrip = maxDate(lastTrip, dateField(t, "trip_date"))
		}
		for _, m := range maintenance {
			if strField(m, "vehicle_plate_number") != plate {
				continue
			}
			maintCost += numField(m, "cost")
			lastMaint = maxDate(lastMaint, dateField(m, "maintenance_date"))
		}

		entry["tripCount"] = tripCount
		entry["totalRevenue"] = revenue
		entry["totalFuelCost"] = fuel
		entry["totalProfit"] = revenue - fuel
		entry["totalDistance"] = distance
		entry["maintenanceCost"] = maintCost
		entry["lastTripDate"] = formatDate(lastTrip)
		entry["lastMaintenanceDate"] = formatDate(lastMaint)
		performance = append(performance, entry)
	}
	return performance
}

// numField coerces a field to float64, treating missing or non-numeric values
// as 0. Dashboards degrade gracefully on partially populated records; this is
// a deliberate product decision for aggregation and must not be reused for
// ledger-grade computations without confirming it.
func numField(record map[string]interface{}, key string) float64 {
	switch v := record[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

func strField(record map[string]interface{}, key string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return ""
}

// dateField parses either full RFC 3339 timestamps or bare YYYY-MM-DD dates,
// the two shapes the store serves.
func dateField(record map[string]interface{}, key string) *time.Time {
	raw := strField(record, key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func maxDate(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		return candidate
	}
	return current
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func sortByDateDesc(records []map[string]interface{}, key string) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := dateField(records[i], key), dateField(records[j], key)
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}
