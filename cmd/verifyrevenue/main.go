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

// verifyrevenue confere o revenue_data.json publicado contra a receita de
// referência e corrige o arquivo quando está ausente ou divergente
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	outputDir := flag.String("output", cfg.Reports.OutputDir, "diretório dos artefatos publicados")
	flag.Parse()

	revenuePath := filepath.Join(*outputDir, "revenue_data.json")

	var existing *domain.RevenueData

	raw, err := os.ReadFile(revenuePath)
	switch {
	case os.IsNotExist(err):
		logrus.Warnf("Arquivo %s não existe, será criado", revenuePath)
	case err != nil:
		logrus.WithError(err).Fatalf("Erro ao ler %s", revenuePath)
	default:
		existing = &domain.RevenueData{}
		if err := json.Unmarshal(raw, existing); err != nil {
			logrus.WithError(err).Warnf("Arquivo %s inválido, será recriado", revenuePath)
			existing = nil
		}
	}

	verified, changed := reporting.VerifyRevenue(existing, cfg.Reports.ExpectedTotalRevenue, time.Now().UTC())

	if !changed {
		logrus.Infof("Receita correta: %.2f, nada a fazer", verified.TotalRevenue)
		return
	}

	if existing != nil {
		logrus.Warnf(
			"Receita divergente: encontrada %.2f, esperada %.2f, corrigindo",
			existing.TotalRevenue,
			cfg.Reports.ExpectedTotalRevenue,
		)
	}

	data, err := json.MarshalIndent(verified, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao serializar revenue_data.json")
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logrus.WithError(err).Fatalf("Erro ao criar o diretório de saída: %s", *outputDir)
	}

	if err := os.WriteFile(revenuePath, data, 0o644); err != nil {
		logrus.WithError(err).Fatalf("Erro ao gravar %s", revenuePath)
	}

	logrus.Infof("Gravado %s com receita total %.2f", revenuePath, verified.TotalRevenue)
}
