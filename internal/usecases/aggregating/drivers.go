package aggregating

import (
	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

// DriverPerformance agrega o desempenho por motorista somando as etapas
// de coleta e entrega: volumes, taxa de conclusão, distância percorrida
// e remuneração por distância
func (s *Service) DriverPerformance(appointments []*domain.Appointment) (result []*domain.DriverStats) {
	defer recoverAggregation("driver-performance")

	statsByDriver := make(map[string]*domain.DriverStats)
	order := make([]string, 0)

	getDriver := func(driverID string) *domain.DriverStats {
		stats, ok := statsByDriver[driverID]
		if !ok {
			stats = &domain.DriverStats{ID: driverID}
			statsByDriver[driverID] = stats
			order = append(order, driverID)
		}
		return stats
	}

	for _, appointment := range appointments {
		if appointment.Pickup != nil && appointment.Pickup.Driver != "" {
			stats := getDriver(appointment.Pickup.Driver)
			stats.TotalPickups++

			switch appointment.Pickup.Status {
			case domain.StatusCompleted:
				stats.CompletedPickups++
			case domain.StatusCancelledBySeller:
				stats.CancelledServices++
			}

			stats.TotalDistance += float64(appointment.Pickup.Distance)
			stats.TotalPay += float64(appointment.Pickup.BasePay)
		}

		if appointment.Dropoff != nil && appointment.Dropoff.Driver != "" {
			stats := getDriver(appointment.Dropoff.Driver)
			stats.TotalDropoffs++

			switch appointment.Dropoff.Status {
			case domain.StatusCompleted:
				stats.CompletedDropoffs++
			case domain.StatusCancelledBySeller:
				stats.CancelledServices++
			}

			stats.TotalDistance += float64(appointment.Dropoff.Distance)
			stats.TotalPay += float64(appointment.Dropoff.BasePay)
		}
	}

	result = make([]*domain.DriverStats, 0, len(order))
	for _, driverID := range order {
		stats := statsByDriver[driverID]

		stats.TotalServices = stats.TotalPickups + stats.TotalDropoffs
		stats.CompletedServices = stats.CompletedPickups + stats.CompletedDropoffs
		if stats.TotalServices > 0 {
			stats.CompletionRate = float64(stats.CompletedServices) / float64(stats.TotalServices)
			stats.AvgDistancePerService = stats.TotalDistance / float64(stats.TotalServices)
		}
		if stats.TotalDistance > 0 {
			stats.AvgPayPerDistance = stats.TotalPay / stats.TotalDistance
		}

		result = append(result, stats)
	}
	return result
}
