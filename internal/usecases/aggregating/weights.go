package aggregating

import (
	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

// WeightDistribution conta os pedidos por faixa fixa de peso (kg).
// Só entram registros com washFoldWeight válido.
func (s *Service) WeightDistribution(appointments []*domain.Appointment) (result []*domain.WeightBucket) {
	defer recoverAggregation("weight-distribution")

	buckets := []*domain.WeightBucket{
		{Range: "0-5kg"},
		{Range: "6-10kg"},
		{Range: "11-15kg"},
		{Range: "16-20kg"},
		{Range: "21-30kg"},
		{Range: "31kg+"},
	}

	for _, appointment := range appointments {
		weight, ok := appointment.WashFoldWeight()
		if !ok {
			continue
		}

		switch {
		case weight <= 5:
			buckets[0].Count++
		case weight <= 10:
			buckets[1].Count++
		case weight <= 15:
			buckets[2].Count++
		case weight <= 20:
			buckets[3].Count++
		case weight <= 30:
			buckets[4].Count++
		default:
			buckets[5].Count++
		}
	}

	return buckets
}
