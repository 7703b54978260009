package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/internal/usecases/reporting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// preparedata transforma o export bruto de agendamentos nos artefatos
// estáticos do dashboard: aggregated_data.json e revenue_data.json
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
	outputDir := flag.String("output", cfg.Reports.OutputDir, "diretório de saída dos artefatos")
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

	reporter := reporting.NewService(domain.DefaultCities())

	aggregated := reporter.BuildAggregatedData(appointments)
	revenue := reporter.BuildRevenueData(aggregated)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logrus.WithError(err).Fatalf("Erro ao criar o diretório de saída: %s", *outputDir)
	}

	writeArtifact(filepath.Join(*outputDir, "aggregated_data.json"), aggregated)
	writeArtifact(filepath.Join(*outputDir, "revenue_data.json"), revenue)

	logrus.Infof(
		"Artefatos gerados: %d agendamentos, receita total %.2f, %d cidades",
		aggregated.TotalAppointments,
		aggregated.TotalRevenue,
		len(aggregated.Cities),
	)
}

func writeArtifact(path string, payload interface{}) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatalf("Erro ao serializar %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.WithError(err).Fatalf("Erro ao gravar %s", path)
	}

	logrus.Infof("Gravado %s (%d bytes)", path, len(data))
}
