package main

import (
	"context"
	"math/rand"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onestop/laundry-dashboard-api/infrastructure/database/postgres"
	"github.com/onestop/laundry-dashboard-api/infrastructure/dataset"
	"github.com/onestop/laundry-dashboard-api/infrastructure/repository"
	"github.com/onestop/laundry-dashboard-api/internal/api"
	"github.com/onestop/laundry-dashboard-api/internal/api/handler"
	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/internal/scheduler"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/aggregating"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/projecting"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cities := domain.DefaultCities()

	// Monta as fontes de dados em ordem de preferência: banco (quando
	// habilitado), backend HTTP, arquivo local e amostra sintética
	sources := make([]dataset.Fetcher, 0, 4)

	if cfg.Dataset.UseDatabase {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		appointmentRepo := repository.NewAppointmentRepository(pgConn)
		sources = append(sources, dataset.NewDatabaseFetcher(appointmentRepo))
	}

	if cfg.Dataset.BackendURL != "" {
		sources = append(sources, dataset.NewBackendFetcher(cfg.Dataset))
	}

	if cfg.Dataset.FilePath != "" {
		sources = append(sources, dataset.NewFileFetcher(cfg.Dataset.FilePath))
	}

	sources = append(sources, dataset.NewSampleGenerator(cities, cfg.Dataset.SampleSize))

	store := dataset.NewStore(sources...)

	source := store.Refresh(ctx)
	logrus.Infof("Dataset inicial carregado a partir de: %s", source)

	aggregator := aggregating.NewService(cities, time.Now)
	projector := projecting.NewService(
		cfg.Projection,
		cities,
		time.Now,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	reporter := reporting.NewService(cities)

	// Inicializa o agendador de refresh periódico do dataset
	datasetSyncService := scheduler.NewDatasetSyncService(store, cfg)

	if err := datasetSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de refresh do dataset")
	} else {
		logrus.Info("Agendador de refresh do dataset iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		handler.DashboardServices{
			Store:      store,
			Aggregator: aggregator,
			Projector:  projector,
			Reporter:   reporter,
			Cities:     cities,
		},
		datasetSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
