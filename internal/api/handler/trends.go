package handler

import (
	"net/http"

	"github.com/onestop/laundry-dashboard-api/internal/usecases/aggregating"
	"github.com/onestop/laundry-dashboard-api/pkg/apiErrors"
)

// GetMonthlyTrend retorna a série mensal de pedidos, com a janela em meses
// parametrizável pelo query param months
func GetMonthlyTrend(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		months, err := intQueryParam(r, "months", aggregating.DefaultMonthsToShow)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro months inválido", nil)
			return
		}

		writeJSON(w, r, services.Aggregator.MonthlyOrdersTrend(appointments, months))
	}
}

// GetAvgOrderValueTrend retorna a série mensal de ticket médio
func GetAvgOrderValueTrend(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		months, err := intQueryParam(r, "months", aggregating.DefaultMonthsToShow)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro months inválido", nil)
			return
		}

		writeJSON(w, r, services.Aggregator.AvgOrderValueTrend(appointments, months))
	}
}

// GetSeasonalTrends retorna pedidos e receita por trimestre fixo do calendário
func GetSeasonalTrends(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.SeasonalTrends(appointments))
	}
}
