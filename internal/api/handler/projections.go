package handler

import (
	"net/http"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/apiErrors"
	"github.com/onestop/laundry-dashboard-api/pkg/log"
)

// GetProjections retorna a série semanal combinada (histórico interpolado +
// projeção futura) para uma cidade. A projeção é calculada sobre a série
// mensal do conjunto completo, não sobre o conjunto já filtrado por cidade,
// porque o motor precisa da quebra por cidade dos totais mensais.
func GetProjections(services DashboardServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cityID := r.URL.Query().Get("city")
		if cityID == "" {
			cityID = domain.AllCities
		}
		if !services.Cities.Has(cityID) {
			apiErrors.WriteError(w, apiErrors.ErrUnknownCity, "Cidade desconhecida", map[string]string{"city": cityID})
			return
		}

		weeks, err := intQueryParam(r, "weeks", 0)
		if err != nil || weeks < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro weeks inválido", nil)
			return
		}

		valid := services.Aggregator.FilterValid(services.Store.Appointments())
		monthly := services.Aggregator.MonthlyOrdersTrend(valid, 0)

		result := services.Projector.Project(monthly, cityID, weeks)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"city":       cityID,
			"historical": len(result.Historical),
			"projected":  len(result.Projected),
		}).Debug("Projeção calculada")

		writeJSON(w, r, result)
	}
}
