package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Store guarda o snapshot corrente de agendamentos. As agregações leem o
// snapshot inteiro sob RLock; um Refresh mais novo substitui o snapshot
// anterior por completo, nunca o altera no lugar.
type Store struct {
	sources []Fetcher

	mu           sync.RWMutex
	appointments []*domain.Appointment
	source       string
	refreshedAt  time.Time
}

// NewStore cria o store com as origens em ordem de preferência
func NewStore(sources ...Fetcher) *Store {
	return &Store{sources: sources}
}

// Refresh tenta as origens em ordem e instala o primeiro resultado não vazio.
// Falhas são logadas e a próxima origem é tentada; quando todas falham, o
// snapshot anterior permanece. Retorna o nome da origem usada.
func (s *Store) Refresh(ctx context.Context) string {
	for _, source := range s.sources {
		appointments, err := source.Fetch(ctx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"source": source.Name(),
				"error":  err.Error(),
			}).Warn("Origem de agendamentos falhou, tentando a próxima")
			continue
		}
		if len(appointments) == 0 {
			logrus.WithField("source", source.Name()).Warn("Origem de agendamentos vazia, tentando a próxima")
			continue
		}

		s.mu.Lock()
		s.appointments = appointments
		s.source = source.Name()
		s.refreshedAt = time.Now().UTC()
		s.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"source": source.Name(),
			"count":  len(appointments),
		}).Info("Snapshot de agendamentos atualizado")
		return source.Name()
	}

	logrus.Error("Todas as origens de agendamentos falharam, mantendo o snapshot anterior")

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Appointments retorna o snapshot corrente. A fatia retornada é
// compartilhada e não deve ser alterada pelos chamadores.
func (s *Store) Appointments() []*domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments
}

// Status retorna a origem e o momento do último refresh bem sucedido
func (s *Store) Status() (source string, refreshedAt time.Time, count int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.refreshedAt, len(s.appointments)
}
