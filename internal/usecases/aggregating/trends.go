package aggregating

import (
	"sort"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/utils"
)

// DefaultMonthsToShow é a janela padrão das séries mensais
const DefaultMonthsToShow = 12

// MonthlyOrdersTrend monta a série de pedidos por mês dos últimos N meses,
// com a contagem aberta por cidade para gráficos multi-série. O mês corrente
// do calendário fica fora da série: está incompleto e distorce a tendência.
func (s *Service) MonthlyOrdersTrend(appointments []*domain.Appointment, monthsToShow int) (result []*domain.MonthlyTrendPoint) {
	defer recoverAggregation("monthly-orders-trend")

	if monthsToShow <= 0 {
		monthsToShow = DefaultMonthsToShow
	}

	buckets := s.initMonthlyBuckets(monthsToShow)

	for _, appointment := range appointments {
		serviceDate, ok := appointment.ResolveServiceDate()
		if !ok || s.isCurrentMonth(serviceDate) {
			continue
		}

		point, ok := buckets[utils.MonthKey(serviceDate)]
		if !ok {
			continue
		}

		point.Total++
		cityID := appointment.NormalizeCityID(s.cities)
		if cityName, ok := s.cities.Name(cityID); ok {
			point.ByCity[cityName]++
		}
	}

	return sortedMonthly(buckets)
}

// AvgOrderValueTrend monta a série mensal de ticket médio. Só entram no
// denominador os agendamentos com receita resolvida positiva; meses sem
// pedido ficam com valor 0 em vez de NaN.
func (s *Service) AvgOrderValueTrend(appointments []*domain.Appointment, monthsToShow int) (result []*domain.AvgOrderValuePoint) {
	defer recoverAggregation("avg-order-value-trend")

	if monthsToShow <= 0 {
		monthsToShow = DefaultMonthsToShow
	}

	type bucket struct {
		orderCount   int
		totalRevenue float64
	}

	months := s.initMonthlyBuckets(monthsToShow)
	totals := make(map[string]*bucket, len(months))
	for key := range months {
		totals[key] = &bucket{}
	}

	for _, appointment := range appointments {
		serviceDate, ok := appointment.ResolveServiceDate()
		if !ok || s.isCurrentMonth(serviceDate) {
			continue
		}

		b, ok := totals[utils.MonthKey(serviceDate)]
		if !ok {
			continue
		}

		if revenue := appointment.ResolveRevenue(); revenue > 0 {
			b.orderCount++
			b.totalRevenue += revenue
		}
	}

	result = make([]*domain.AvgOrderValuePoint, 0, len(months))
	for key, point := range months {
		b := totals[key]
		value := 0.0
		if b.orderCount > 0 {
			value = b.totalRevenue / float64(b.orderCount)
		}
		result = append(result, &domain.AvgOrderValuePoint{
			Month: point.Month,
			Name:  point.Name,
			Value: utils.RoundWithTwoDecimalPlace(value),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// SeasonalTrends soma pedidos e receita por trimestre fixo do calendário.
// Os trimestres não são qualificados por ano: todos os janeiros-marços dos
// dados caem no mesmo Q1, como leitura de desempenho histórico do trimestre.
func (s *Service) SeasonalTrends(appointments []*domain.Appointment) (result []*domain.SeasonalTrend) {
	defer recoverAggregation("seasonal-trends")

	quarters := []*domain.SeasonalTrend{
		{Quarter: "Q1", Name: "Q1 (Jan-Mar)"},
		{Quarter: "Q2", Name: "Q2 (Apr-Jun)"},
		{Quarter: "Q3", Name: "Q3 (Jul-Sep)"},
		{Quarter: "Q4", Name: "Q4 (Oct-Dec)"},
	}

	for _, appointment := range appointments {
		serviceDate, ok := appointment.ResolveServiceDate()
		if !ok {
			continue
		}

		quarter := quarters[(int(serviceDate.Month())-1)/3]
		quarter.Orders++
		quarter.Revenue += appointment.ResolveRevenue()
	}

	return quarters
}

// initMonthlyBuckets cria os baldes vazios da janela mensal, já pulando o
// mês corrente
func (s *Service) initMonthlyBuckets(monthsToShow int) map[string]*domain.MonthlyTrendPoint {
	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make(map[string]*domain.MonthlyTrendPoint, monthsToShow)
	for i := 0; i < monthsToShow; i++ {
		monthDate := firstOfMonth.AddDate(0, -i, 0)
		if monthDate.Month() == now.Month() && monthDate.Year() == now.Year() {
			continue
		}

		byCity := make(map[string]int)
		for _, city := range s.cities.Cities() {
			byCity[city.Name] = 0
		}

		buckets[utils.MonthKey(monthDate)] = &domain.MonthlyTrendPoint{
			Month:  utils.MonthKey(monthDate),
			Name:   utils.MonthName(monthDate),
			ByCity: byCity,
		}
	}
	return buckets
}

func sortedMonthly(buckets map[string]*domain.MonthlyTrendPoint) []*domain.MonthlyTrendPoint {
	points := make([]*domain.MonthlyTrendPoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
