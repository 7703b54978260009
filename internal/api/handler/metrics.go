package handler

import (
	"net/http"
)

// GetRetentionMetrics retorna as métricas globais de retenção de clientes
func GetRetentionMetrics(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.RetentionMetrics(appointments))
	}
}

// GetCustomerLaundromatFlow retorna os pares cliente-lavanderia com volume,
// para o diagrama de fluxo do dashboard
func GetCustomerLaundromatFlow(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, ok := services.appointmentsForRequest(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, services.Aggregator.CustomerLaundromatFlow(appointments))
	}
}
