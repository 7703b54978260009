// Package dataset fornece as origens do conjunto de agendamentos e o
// snapshot em memória servido para as agregações. A cadeia de origens é
// backend HTTP, arquivo local e amostra sintética, nessa ordem: o dashboard
// prefere dados possivelmente desatualizados a nenhum dado.
package dataset

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fetcher é uma origem de agendamentos
type Fetcher interface {
	Fetch(ctx context.Context) ([]*domain.Appointment, error)
	Name() string
}

type BackendFetcher struct {
	httpClient *http.Client
	backendURL string
}

// NewBackendFetcher cria a origem HTTP apontando para o backend de
// agendamentos configurado
func NewBackendFetcher(cfg config.Dataset) *BackendFetcher {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BackendFetcher{
		httpClient: &http.Client{Timeout: timeout},
		backendURL: cfg.BackendURL,
	}
}

func (f *BackendFetcher) Name() string { return "backend" }

func (f *BackendFetcher) Fetch(ctx context.Context) ([]*domain.Appointment, error) {
	if f.backendURL == "" {
		return nil, errors.New("nenhuma URL de backend configurada")
	}

	endpoint, err := url.Parse(f.backendURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL do backend")
	}

	// Parâmetro anti-cache, o CDN na frente do backend guarda respostas velhas
	query := endpoint.Query()
	query.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar agendamentos do backend")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("backend respondeu com status %s", resp.Status)
	}

	var appointments []*domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointments); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta do backend")
	}

	return appointments, nil
}
