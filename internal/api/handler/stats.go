package handler

import (
	"net/http"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/apiErrors"
	"github.com/onestop/laundry-dashboard-api/pkg/log"
)

// GetCityStats retorna a visão agregada por cidade
func GetCityStats(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		stats := services.Aggregator.CityStatistics(appointments)

		log.ForContext(r.Context()).WithField("cities", len(stats)).Debug("Estatísticas por cidade calculadas")
		writeJSON(w, r, stats)
	}
}

// GetLaundromatStats retorna a tabela de lavanderias com o recorte de
// exibição parametrizável por min_orders e limit
func GetLaundromatStats(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		selection := domain.DefaultLaundromatSelection()

		minOrders, err := intQueryParam(r, "min_orders", selection.MinOrders)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro min_orders inválido", nil)
			return
		}
		limit, err := intQueryParam(r, "limit", selection.Limit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
			return
		}

		selection.MinOrders = minOrders
		selection.Limit = limit

		writeJSON(w, r, services.Aggregator.LaundromatStatistics(appointments, selection))
	}
}

// GetCustomerTypes retorna o histograma de tipos de cliente
func GetCustomerTypes(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.CustomerTypeDistribution(appointments))
	}
}

// GetDriverStats retorna o desempenho por motorista
func GetDriverStats(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.DriverPerformance(appointments))
	}
}

// GetWeightDistribution retorna a distribuição de pedidos por faixa de peso
func GetWeightDistribution(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.WeightDistribution(appointments))
	}
}
