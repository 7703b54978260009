package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/onestop/laundry-dashboard-api/internal/config"
)

// Refresher é o alvo do refresh periódico (o store de agendamentos)
type Refresher interface {
	Refresh(ctx context.Context) string
}

// DatasetSyncConfig representa a configuração do agendador de refresh do dataset
type DatasetSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetSyncService gerencia o agendamento e execução do refresh periódico
// do snapshot de agendamentos
type DatasetSyncService struct {
	scheduler           *gocron.Scheduler
	config              DatasetSyncConfig
	store               Refresher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSource      string
}

// NewDatasetSyncService cria uma nova instância do serviço de refresh do dataset
func NewDatasetSyncService(store Refresher, appConfig *config.Config) *DatasetSyncService {
	syncConfig := DatasetSyncConfig{
		CronSchedule: appConfig.DatasetSync.CronSchedule,
		SyncEnabled:  appConfig.DatasetSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de refresh do dataset carregada")

	return &DatasetSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		store:       store,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *DatasetSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Refresh periódico do dataset desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de refresh do dataset")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDataset(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar refresh do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de refresh do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDataset executa um refresh do snapshot, ignorando chamadas concorrentes
func (s *DatasetSyncService) syncDataset(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Refresh do dataset já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando refresh do snapshot de agendamentos")

	source := s.store.Refresh(ctx)
	s.lastSyncSource = source

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"source":   source,
	}).Info("Refresh do dataset concluído")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente um refresh do dataset
func (s *DatasetSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Refresh do dataset já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando refresh manual do dataset")
	go s.syncDataset(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DatasetSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_source":       s.lastSyncSource,
	}
}
