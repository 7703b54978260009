package main

import (
	"context"
	"flag"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/onestop/laundry-dashboard-api/infrastructure/database/postgres"
	"github.com/onestop/laundry-dashboard-api/infrastructure/repository"
	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	batchSize = 100
	// Pausa entre batches para não saturar o banco compartilhado
	batchDelay = 1 * time.Second
)

// uploader lê o export de agendamentos e persiste no PostgreSQL em lotes.
// Erros de lote são registrados e o envio continua com o próximo lote.
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	sourcePath := flag.String("source", cfg.Reports.SourceFile, "arquivo JSON de agendamentos")
	flag.Parse()

	raw, err := os.ReadFile(*sourcePath)
	if err != nil {
		logrus.WithError(err).Fatalf("Erro ao ler o arquivo de origem: %s", *sourcePath)
	}

	var appointments []*domain.Appointment
	if err := json.Unmarshal(raw, &appointments); err != nil {
		logrus.WithError(err).Fatalf("Erro ao interpretar o arquivo de origem: %s", *sourcePath)
	}

	logrus.Infof("Carregados %d agendamentos de %s", len(appointments), *sourcePath)

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	appointmentRepo := repository.NewAppointmentRepository(conn)

	uploaded := 0
	failedBatches := 0

	for start := 0; start < len(appointments); start += batchSize {
		end := start + batchSize
		if end > len(appointments) {
			end = len(appointments)
		}

		batch := appointments[start:end]
		batchNumber := start/batchSize + 1

		inserted, err := appointmentRepo.SaveBatch(batch)
		if err != nil {
			// Continua com o próximo lote: um lote ruim não
			// invalida o restante do export
			logrus.WithError(err).Errorf("Erro no lote %d (%d registros)", batchNumber, len(batch))
			failedBatches++
		} else {
			uploaded += inserted
			logrus.Infof("Lote %d enviado: %d registros (%d/%d)", batchNumber, inserted, end, len(appointments))
		}

		if end < len(appointments) {
			time.Sleep(batchDelay)
		}
	}

	logrus.Infof("Upload concluído: %d registros enviados, %d lotes com erro", uploaded, failedBatches)

	if total, err := appointmentRepo.CountAppointments(); err != nil {
		logrus.WithError(err).Warn("Não foi possível contar os registros persistidos")
	} else {
		logrus.Infof("Total de agendamentos no banco: %d", total)
	}

	if failedBatches > 0 {
		os.Exit(1)
	}
}
