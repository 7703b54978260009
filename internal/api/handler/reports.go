package handler

import (
	"net/http"
)

// GetAggregatedReport monta o relatório completo (mesmo formato do
// aggregated_data.json publicado) sobre o snapshot corrente
func GetAggregatedReport(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments := services.Store.Appointments()
		writeJSON(w, r, services.Reporter.BuildAggregatedData(appointments))
	}
}

// GetRevenueReport monta o relatório reduzido de receita (mesmo formato do
// revenue_data.json publicado) sobre o snapshot corrente
func GetRevenueReport(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments := services.Store.Appointments()
		aggregated := services.Reporter.BuildAggregatedData(appointments)
		writeJSON(w, r, services.Reporter.BuildRevenueData(aggregated))
	}
}
