// Package aggregating calcula as visões agregadas do dashboard a partir
// do conjunto de agendamentos em memória. Cada agregador é uma função pura
// do conjunto filtrado: nenhum deles propaga erro para fora. Em caso de
// pânico interno o agregador loga e devolve um resultado vazio/zerado.
package aggregating

import (
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/sirupsen/logrus"
)

type Service struct {
	cities domain.CityTable
	now    func() time.Time
}

// NewService cria o serviço de agregação. O relógio é injetável para que
// as regras de "mês corrente" sejam testáveis com datas fixas.
func NewService(cities domain.CityTable, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{cities: cities, now: now}
}

// recoverAggregation loga um pânico interno de agregador sem propagá-lo
func recoverAggregation(aggregator string) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"aggregator": aggregator,
			"panic":      r,
		}).Error("Erro inesperado durante a agregação, devolvendo resultado vazio")
	}
}

// isCurrentMonth verifica se a data cai no mês corrente do calendário
func (s *Service) isCurrentMonth(date time.Time) bool {
	now := s.now()
	return date.Month() == now.Month() && date.Year() == now.Year()
}

// FilterValid descarta registros incompletos, cancelados pelo vendedor e
// pickups do mês corrente (o mês em andamento é considerado incompleto e
// enganoso para as visões do dashboard)
func (s *Service) FilterValid(appointments []*domain.Appointment) []*domain.Appointment {
	defer recoverAggregation("filter-valid")

	valid := make([]*domain.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment == nil ||
			appointment.CityID == "" ||
			appointment.CustomerType == "" ||
			appointment.Pickup == nil ||
			appointment.Cleaning == nil {
			continue
		}
		if appointment.Status == domain.StatusCancelledBySeller {
			continue
		}
		if pickupDate, ok := appointment.PickupDate(); ok && s.isCurrentMonth(pickupDate) {
			continue
		}
		valid = append(valid, appointment)
	}
	return valid
}

// FilterByCity restringe o conjunto a uma cidade; a pseudo-cidade "all"
// (ou vazio) significa sem filtro
func (s *Service) FilterByCity(appointments []*domain.Appointment, cityID string) []*domain.Appointment {
	if cityID == "" || cityID == domain.AllCities {
		return appointments
	}

	filtered := make([]*domain.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.NormalizeCityID(s.cities) == cityID {
			filtered = append(filtered, appointment)
		}
	}
	return filtered
}

// CityStatistics agrega pedidos, receita, clientes e lavanderias únicas
// por cidade normalizada. Cidades sem pedidos aparecem zeradas.
func (s *Service) CityStatistics(appointments []*domain.Appointment) (result []*domain.CityStats) {
	defer recoverAggregation("city-statistics")

	statsByCity := make(map[string]*domain.CityStats)
	customersByCity := make(map[string]map[string]struct{})
	laundromatsByCity := make(map[string]map[string]struct{})

	for _, city := range s.cities.Cities() {
		statsByCity[city.ID] = &domain.CityStats{
			ID:            city.ID,
			Name:          city.Name,
			CustomerTypes: map[string]int{},
		}
		customersByCity[city.ID] = map[string]struct{}{}
		laundromatsByCity[city.ID] = map[string]struct{}{}
	}

	for _, appointment := range appointments {
		cityID := appointment.NormalizeCityID(s.cities)
		stats, ok := statsByCity[cityID]
		if !ok {
			continue
		}

		stats.Orders++
		stats.Revenue += appointment.ResolveRevenue()

		if appointment.CustomerID != "" {
			customersByCity[cityID][appointment.CustomerID] = struct{}{}
		}
		if appointment.Cleaning != nil && appointment.Cleaning.Cleaner != "" {
			laundromatsByCity[cityID][appointment.Cleaning.Cleaner] = struct{}{}
		}
		if appointment.CustomerType != "" {
			stats.CustomerTypes[appointment.CustomerType]++
		}
	}

	result = make([]*domain.CityStats, 0, len(statsByCity))
	for _, city := range s.cities.Cities() {
		stats := statsByCity[city.ID]
		stats.Customers = len(customersByCity[city.ID])
		stats.Laundromats = len(laundromatsByCity[city.ID])
		if stats.Orders > 0 {
			stats.AvgOrderValue = stats.Revenue / float64(stats.Orders)
		}
		result = append(result, stats)
	}
	return result
}

// CustomerTypeDistribution monta o histograma de tipos de cliente;
// registros sem tipo caem no balde "Unknown"
func (s *Service) CustomerTypeDistribution(appointments []*domain.Appointment) (result []domain.CustomerTypeCount) {
	defer recoverAggregation("customer-type-distribution")

	counts := make(map[string]int)
	order := make([]string, 0)

	for _, appointment := range appointments {
		customerType := appointment.CustomerType
		if customerType == "" {
			customerType = domain.CustomerTypeUnknown
		}
		if _, seen := counts[customerType]; !seen {
			order = append(order, customerType)
		}
		counts[customerType]++
	}

	result = make([]domain.CustomerTypeCount, 0, len(order))
	for _, name := range order {
		result = append(result, domain.CustomerTypeCount{Name: name, Value: counts[name]})
	}
	return result
}
