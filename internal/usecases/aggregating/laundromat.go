package aggregating

import (
	"sort"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

type laundromatAccumulator struct {
	stats              *domain.LaundromatStats
	customers          map[string]struct{}
	returningCustomers map[string]struct{}
	turnaroundDays     []float64
	orderWeights       []float64
}

// AllLaundromatStatistics calcula as estatísticas completas por lavanderia,
// sem o recorte de exibição. O sinal de cliente recorrente é last-writer-wins
// por cliente (a última lavanderia vista substitui a anterior), então clientes
// que alternam entre lavanderias são subcontados, aproximação herdada do
// dashboard, mantida de propósito.
func (s *Service) AllLaundromatStatistics(appointments []*domain.Appointment) (result []*domain.LaundromatStats) {
	defer recoverAggregation("laundromat-statistics")

	accumulators := make(map[string]*laundromatAccumulator)
	order := make([]string, 0)
	lastLaundromatByCustomer := make(map[string]string)

	for _, appointment := range appointments {
		if appointment.CustomerID == "" || appointment.Cleaning == nil || appointment.Cleaning.Cleaner == "" {
			continue
		}

		customerID := appointment.CustomerID
		cleanerID := appointment.Cleaning.Cleaner

		acc, ok := accumulators[cleanerID]
		if !ok {
			acc = &laundromatAccumulator{
				stats:              &domain.LaundromatStats{ID: cleanerID, Name: cleanerID},
				customers:          map[string]struct{}{},
				returningCustomers: map[string]struct{}{},
			}
			accumulators[cleanerID] = acc
			order = append(order, cleanerID)
		}

		acc.stats.Orders++
		acc.stats.Revenue += appointment.ResolveRevenue()
		acc.customers[customerID] = struct{}{}

		if lastLaundromatByCustomer[customerID] == cleanerID {
			acc.returningCustomers[customerID] = struct{}{}
		} else {
			lastLaundromatByCustomer[customerID] = cleanerID
		}

		pickupDate, pickupOK := appointment.PickupDate()
		dropDate, dropOK := appointment.DropDate()
		if pickupOK && dropOK && dropDate.After(pickupDate) {
			acc.turnaroundDays = append(acc.turnaroundDays, dropDate.Sub(pickupDate).Hours()/24)
		}

		if weight, ok := appointment.WashFoldWeight(); ok {
			acc.orderWeights = append(acc.orderWeights, weight)
		}
	}

	result = make([]*domain.LaundromatStats, 0, len(order))
	for _, cleanerID := range order {
		acc := accumulators[cleanerID]
		stats := acc.stats

		if stats.Orders > 0 {
			stats.AverageOrderValue = stats.Revenue / float64(stats.Orders)
		}
		stats.AverageTurnaroundDays = average(acc.turnaroundDays)
		stats.AverageOrderWeight = average(acc.orderWeights)
		stats.CustomerCount = len(acc.customers)
		stats.ReturningCustomerCount = len(acc.returningCustomers)
		if stats.CustomerCount > 0 {
			stats.RetentionRate = float64(stats.ReturningCustomerCount) / float64(stats.CustomerCount)
		}

		result = append(result, stats)
	}
	return result
}

// LaundromatStatistics aplica o recorte de exibição sobre as estatísticas
// completas: mínimo de pedidos e limite de linhas, ordenadas por volume
func (s *Service) LaundromatStatistics(appointments []*domain.Appointment, selection domain.LaundromatSelection) []*domain.LaundromatStats {
	all := s.AllLaundromatStatistics(appointments)

	selected := make([]*domain.LaundromatStats, 0, len(all))
	for _, stats := range all {
		if stats.Orders >= selection.MinOrders {
			selected = append(selected, stats)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Orders > selected[j].Orders
	})

	if selection.Limit > 0 && len(selected) > selection.Limit {
		selected = selected[:selection.Limit]
	}
	return selected
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
