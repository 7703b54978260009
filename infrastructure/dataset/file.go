package dataset

import (
	"context"
	"os"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/pkg/errors"
)

// FileFetcher lê o conjunto de agendamentos de um arquivo JSON local,
// normalmente o appointments.json exportado junto com o deploy
type FileFetcher struct {
	path string
}

func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) Fetch(_ context.Context) ([]*domain.Appointment, error) {
	if f.path == "" {
		return nil, errors.New("nenhum arquivo de agendamentos configurado")
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo %s", f.path)
	}

	var appointments []*domain.Appointment
	if err := json.Unmarshal(raw, &appointments); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar o arquivo %s", f.path)
	}

	return appointments, nil
}
