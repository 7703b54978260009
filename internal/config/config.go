package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Dataset     Dataset     `mapstructure:",squash"`
	DatasetSync DatasetSync `mapstructure:",squash"`
	Reports     Reports     `mapstructure:",squash"`
	Projection  Projection  `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Dataset configura a origem dos agendamentos: backend HTTP preferido,
// arquivo local como alternativa e amostra sintética como último recurso
type Dataset struct {
	BackendURL            string `mapstructure:"dataset_backend_url"`
	FilePath              string `mapstructure:"dataset_file_path"`
	RequestTimeoutSeconds int    `mapstructure:"dataset_request_timeout_seconds"`
	SampleSize            int    `mapstructure:"dataset_sample_size"`
	UseDatabase           bool   `mapstructure:"dataset_use_database"`
}

type DatasetSync struct {
	CronSchedule string `mapstructure:"dataset_sync_cron"`
	Enabled      bool   `mapstructure:"dataset_sync_enabled"`
}

// Reports configura os artefatos JSON gerados pelos scripts de linha de comando
type Reports struct {
	SourceFile           string  `mapstructure:"reports_source_file"`
	OutputDir            string  `mapstructure:"reports_output_dir"`
	ExpectedTotalRevenue float64 `mapstructure:"reports_expected_total_revenue"`
	DeployedRevenueURL   string  `mapstructure:"reports_deployed_revenue_url"`
}

// CityParams são as constantes heurísticas de projeção de uma cidade.
// São dados de configuração injetados no motor de projeção, não estado
// global do processo.
type CityParams struct {
	Name               string
	Population         int
	YearlyGrowthFactor float64
	OperationalSince   time.Time
	MarketMaturity     float64
	MinWeeklyOrders    float64
}

// Projection reúne as tabelas de constantes do motor de projeção
type Projection struct {
	WeeksAhead         int
	CutoffDate         time.Time
	Cities             map[string]CityParams
	AllCities          CityParams
	WeeklySeasonality  map[int]float64        // semana do mês (0-4)
	MonthlySeasonality map[time.Month]float64 // mês do ano
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/laundry")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DATASET_BACKEND_URL", "")
	viper.SetDefault("DATASET_FILE_PATH", "appointments.json")
	viper.SetDefault("DATASET_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DATASET_SAMPLE_SIZE", 50)
	viper.SetDefault("DATASET_USE_DATABASE", false)

	// Defaults para o refresh periódico do dataset
	viper.SetDefault("DATASET_SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("DATASET_SYNC_ENABLED", false)

	viper.SetDefault("REPORTS_SOURCE_FILE", "appointments.json")
	viper.SetDefault("REPORTS_OUTPUT_DIR", "public")
	viper.SetDefault("REPORTS_EXPECTED_TOTAL_REVENUE", 310395.84)
	viper.SetDefault("REPORTS_DEPLOYED_REVENUE_URL", "https://geomindai.com/1stop/dashboard/revenue_data.json")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Projection = DefaultProjection()

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// DefaultProjection retorna as constantes de projeção calibradas por cidade.
// Os fatores de crescimento e os pisos semanais vêm da calibração de negócio
// do dashboard; ajustar aqui quando a operação de uma cidade mudar de patamar.
func DefaultProjection() Projection {
	return Projection{
		WeeksAhead: 52,
		CutoffDate: time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC),
		Cities: map[string]CityParams{
			"LYGRRATQ7EGG2": {
				Name:               "London",
				Population:         400000,
				YearlyGrowthFactor: 1.35,
				OperationalSince:   time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC),
				MarketMaturity:     0.15,
				MinWeeklyOrders:    80,
			},
			"L4NE8GPX89J3A": {
				Name:               "Ottawa",
				Population:         1050000,
				YearlyGrowthFactor: 1.28,
				OperationalSince:   time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
				MarketMaturity:     0.35,
				MinWeeklyOrders:    35,
			},
			"LDK6Z980JTKXY": {
				Name:               "Kitchener-Waterloo",
				Population:         575000,
				YearlyGrowthFactor: 1.32,
				OperationalSince:   time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
				MarketMaturity:     0.30,
				MinWeeklyOrders:    40,
			},
			"LXMC6DWVJ5N7W": {
				Name:               "Hamilton",
				Population:         570000,
				YearlyGrowthFactor: 1.25,
				OperationalSince:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
				MarketMaturity:     0.35,
				MinWeeklyOrders:    30,
			},
			"LG0VGFKQ25XED": {
				Name:               "Calgary",
				Population:         1300000,
				YearlyGrowthFactor: 1.40,
				OperationalSince:   time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC),
				MarketMaturity:     0.20,
				MinWeeklyOrders:    25,
			},
		},
		AllCities: CityParams{
			Name:               "All Cities",
			YearlyGrowthFactor: 1.28,
			MarketMaturity:     0.25,
			MinWeeklyOrders:    85,
		},
		WeeklySeasonality: map[int]float64{
			0: 0.98,
			1: 1.00,
			2: 1.05,
			3: 1.08,
			4: 0.95, // quinta semana, quando o mês tem
		},
		MonthlySeasonality: map[time.Month]float64{
			time.January:   0.95,
			time.February:  0.98,
			time.March:     1.02,
			time.April:     1.05,
			time.May:       1.08,
			time.June:      1.12,
			time.July:      1.10,
			time.August:    1.05,
			time.September: 1.10,
			time.October:   1.05,
			time.November:  1.00,
			time.December:  0.98,
		},
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
