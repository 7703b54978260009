package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/onestop/laundry-dashboard-api/infrastructure/dataset"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/aggregating"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/projecting"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/reporting"
	"github.com/onestop/laundry-dashboard-api/pkg/apiErrors"
	"github.com/onestop/laundry-dashboard-api/pkg/log"
)

// DashboardServices reúne as dependências dos handlers do dashboard
type DashboardServices struct {
	Store      *dataset.Store
	Aggregator *aggregating.Service
	Projector  *projecting.Service
	Reporter   *reporting.Service
	Cities     domain.CityTable
}

// appointmentsForRequest resolve o conjunto de agendamentos da requisição:
// snapshot corrente, filtrado para registros válidos e pela cidade do query
// param opcional. Cidade desconhecida é erro de validação.
func (s DashboardServices) appointmentsForRequest(w http.ResponseWriter, r *http.Request) ([]*domain.Appointment, bool) {
	cityID := r.URL.Query().Get("city")
	if cityID != "" && !s.Cities.Has(cityID) {
		apiErrors.WriteError(w, apiErrors.ErrUnknownCity, "Cidade desconhecida", map[string]string{"city": cityID})
		return nil, false
	}

	valid := s.Aggregator.FilterValid(s.Store.Appointments())
	return s.Aggregator.FilterByCity(valid, cityID), true
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta JSON")
	}
}

// intQueryParam lê um query param inteiro opcional; vazio vira o padrão
func intQueryParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
