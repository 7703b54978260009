package main

import (
	"flag"
	"fmt"
	"math"
	"net/url"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const revenueTolerance = 0.01

// checkdeploy baixa o revenue_data.json publicado e confere se o deploy
// serve a receita de referência. Sai com código 1 em divergência ou
// indisponibilidade, para uso em pipelines
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	deployedURL := flag.String("url", cfg.Reports.DeployedRevenueURL, "URL do revenue_data.json publicado")
	flag.Parse()

	deployed, err := fetchDeployedRevenue(*deployedURL)
	if err != nil {
		logrus.WithError(err).Errorf("Deploy inacessível: %s", *deployedURL)
		os.Exit(1)
	}

	logrus.Infof("Receita publicada: %.2f", deployed.TotalRevenue)
	for _, city := range deployed.Cities {
		logrus.Infof("  %s: %.2f (%.1f%%)", city.Name, city.Revenue, city.Percentage)
	}

	diff := math.Abs(deployed.TotalRevenue - cfg.Reports.ExpectedTotalRevenue)
	if diff > revenueTolerance {
		logrus.Errorf(
			"Deploy divergente: publicada %.2f, esperada %.2f",
			deployed.TotalRevenue,
			cfg.Reports.ExpectedTotalRevenue,
		)
		os.Exit(1)
	}

	logrus.Info("Deploy verificado: receita publicada confere com a referência")
}

func fetchDeployedRevenue(rawURL string) (*domain.RevenueData, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("URL inválida: %w", err)
	}

	// Cache-bust para não validar uma versão antiga servida por CDN
	query := parsed.Query()
	query.Set("t", fmt.Sprintf("%d", time.Now().UnixMilli()))
	parsed.RawQuery = query.Encode()

	body, err := utils.MakeRequest(parsed.String())
	if err != nil {
		return nil, err
	}

	deployed := &domain.RevenueData{}
	if err := json.Unmarshal(body, deployed); err != nil {
		return nil, fmt.Errorf("revenue_data.json publicado inválido: %w", err)
	}

	logrus.Debugf("Payload publicado:\n%s", utils.PrettyJson(body))

	return deployed, nil
}
