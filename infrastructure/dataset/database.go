package dataset

import (
	"context"

	"github.com/pkg/errors"

	"github.com/onestop/laundry-dashboard-api/infrastructure/repository"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

// DatabaseFetcher lê agendamentos persistidos pelo uploader no PostgreSQL.
// É a fonte preferida quando o banco está habilitado na configuração.
type DatabaseFetcher struct {
	repo repository.AppointmentRepository
}

func NewDatabaseFetcher(repo repository.AppointmentRepository) *DatabaseFetcher {
	return &DatabaseFetcher{repo: repo}
}

func (f *DatabaseFetcher) Name() string {
	return "database"
}

func (f *DatabaseFetcher) Fetch(_ context.Context) ([]*domain.Appointment, error) {
	appointments, err := f.repo.ListAppointments()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar agendamentos do banco")
	}

	return appointments, nil
}
