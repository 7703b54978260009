// Package projecting converte as séries mensais históricas em séries
// semanais (histórico interpolado + projeção futura) usando as constantes
// heurísticas de crescimento e sazonalidade configuradas por cidade.
// É uma previsão heurística, não um modelo estatístico: sem intervalos de
// confiança e sem back-testing.
package projecting

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Valores usados quando uma cidade não tem parâmetros configurados
const (
	defaultGrowthFactor    = 1.28
	defaultMarketMaturity  = 0.25
	defaultMinWeeklyOrders = 20.0
)

// weeksPerMonth é a média de semanas por mês usada nas conversões
const weeksPerMonth = 4.3

type Service struct {
	cfg    config.Projection
	cities domain.CityTable
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService cria o motor de projeção. O relógio e o gerador de números
// aleatórios são injetáveis para que os testes fixem data e semente.
func NewService(cfg config.Projection, cities domain.CityTable, now func() time.Time, rng *rand.Rand) *Service {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{cfg: cfg, cities: cities, now: now, rng: rng}
}

type monthPoint struct {
	date   time.Time
	name   string
	orders float64
}

// Project gera a série semanal combinada (histórico interpolado + projeção)
// para uma cidade, com as métricas de resumo. Todo ponto projetado sai com
// Projected=true e nunca abaixo do piso semanal configurado para a cidade.
func (s *Service) Project(monthly []*domain.MonthlyTrendPoint, cityID string, weeks int) *domain.ProjectionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if weeks <= 0 {
		weeks = s.cfg.WeeksAhead
	}

	cityName := s.cityName(cityID)
	empty := &domain.ProjectionResult{
		Combined:   []domain.TrendPoint{},
		Historical: []domain.TrendPoint{},
		Projected:  []domain.TrendPoint{},
		Metrics:    domain.ProjectionMetrics{CityName: cityName},
	}

	history := s.preprocessHistory(monthly, cityID)
	if len(history) == 0 {
		return empty
	}

	// Meses depois do corte ficam fora do cálculo: são meses incompletos
	// que distorceriam a linha de base
	filtered := make([]monthPoint, 0, len(history))
	for _, month := range history {
		if !month.date.After(s.cfg.CutoffDate) {
			filtered = append(filtered, month)
		}
	}

	lastPoint := history[len(history)-1]
	if len(filtered) > 0 {
		lastPoint = filtered[len(filtered)-1]
	}

	params := s.cityParams(cityID)

	baseWeeklyOrders := math.Max(lastPoint.orders/weeksPerMonth, params.MinWeeklyOrders)

	// Linha de base de crescimento: média dos meses até o corte quando há
	// histórico suficiente, senão o último ponto
	baselineForGrowth := baseWeeklyOrders
	if len(filtered) >= 3 {
		var sum float64
		for _, month := range filtered {
			sum += month.orders
		}
		avg := sum / float64(len(filtered))
		baselineForGrowth = math.Max(avg/weeksPerMonth, params.MinWeeklyOrders)
	}

	// Crescimento anual convertido em fator semanal composto, amortecido
	// pela maturidade do mercado
	weeklyGrowthFactor := math.Pow(params.YearlyGrowthFactor, 1.0/52.0)
	maturityFactor := 1 - params.MarketMaturity*0.15
	adjustedWeeklyGrowth := weeklyGrowthFactor * maturityFactor

	projectionStart := s.now()
	currentOrders := baseWeeklyOrders

	projected := make([]domain.TrendPoint, 0, weeks)
	for i := 0; i < weeks; i++ {
		weekDate := projectionStart.AddDate(0, 0, 7*i)
		weekOfMonth := weekDate.Day() / 7

		currentOrders *= adjustedWeeklyGrowth
		currentOrders *= s.weeklyFactor(weekOfMonth) * s.monthlyFactor(weekDate.Month())

		// Variação aleatória de ±1.5% para a curva não sair perfeitamente lisa
		currentOrders *= 1 + (s.rng.Float64()*0.03 - 0.015)

		currentOrders = math.Max(currentOrders, params.MinWeeklyOrders)

		projected = append(projected, domain.TrendPoint{
			Name:      utils.ShortDate(weekDate),
			FullName:  utils.FullDate(weekDate),
			Orders:    int(math.Round(currentOrders)),
			Month:     utils.MonthKey(weekDate),
			Week:      utils.WeekKey(weekDate),
			Projected: true,
		})
	}

	historical := s.weeklyHistoricalPoints(history)

	var totalProjectedOrders float64
	for _, week := range projected {
		totalProjectedOrders += float64(week.Orders)
	}
	avgWeeklyOrders := totalProjectedOrders / float64(len(projected))

	combined := make([]domain.TrendPoint, 0, len(historical)+len(projected))
	combined = append(combined, historical...)
	combined = append(combined, projected...)
	sort.SliceStable(combined, func(i, j int) bool { return combined[i].Week < combined[j].Week })

	return &domain.ProjectionResult{
		Combined:   combined,
		Historical: historical,
		Projected:  projected,
		Metrics: domain.ProjectionMetrics{
			TotalAnnualOrders:      int(math.Round(totalProjectedOrders / weeksPerMonth * 12)),
			AverageMonthlyOrders:   int(math.Round(avgWeeklyOrders * weeksPerMonth)),
			AverageWeeklyOrders:    int(math.Round(avgWeeklyOrders)),
			ProjectedGrowthPercent: (avgWeeklyOrders/baselineForGrowth - 1) * 100,
			CityName:               cityName,
		},
	}
}

// preprocessHistory extrai a série de pedidos da cidade a partir dos meses
// agregados; para "all" usa o total. Meses sem pedido ficam de fora.
func (s *Service) preprocessHistory(monthly []*domain.MonthlyTrendPoint, cityID string) []monthPoint {
	cityName := s.cityName(cityID)

	history := make([]monthPoint, 0, len(monthly))
	for _, month := range monthly {
		if month == nil {
			continue
		}

		monthDate, err := time.Parse("2006-01", month.Month)
		if err != nil {
			logrus.WithField("month", month.Month).Warn("Mês com chave inválida ignorado na projeção")
			continue
		}

		var orders float64
		if cityID == domain.AllCities || cityID == "" {
			orders = float64(month.Total)
		} else {
			orders = float64(month.ByCity[cityName])
		}
		if orders <= 0 {
			continue
		}

		history = append(history, monthPoint{
			// Meio do mês como âncora da série mensal
			date:   monthDate.AddDate(0, 0, 14),
			name:   month.Name,
			orders: orders,
		})
	}
	return history
}

// weeklyHistoricalPoints interpola cada mês em 4-5 pontos semanais. É um
// passo de suavização para adensar o gráfico, não uma agregação real:
// interpolação linear entre meses vizinhos, padrão semanal e um ruído de
// ±2% por ponto.
func (s *Service) weeklyHistoricalPoints(history []monthPoint) []domain.TrendPoint {
	if len(history) < 2 {
		points := make([]domain.TrendPoint, 0, len(history))
		for _, month := range history {
			points = append(points, domain.TrendPoint{
				Name:      month.name,
				FullName:  utils.FullDate(month.date),
				Orders:    int(math.Round(month.orders)),
				Month:     utils.MonthKey(month.date),
				Week:      utils.WeekKey(month.date),
				Projected: false,
			})
		}
		return points
	}

	weekly := make([]domain.TrendPoint, 0, len(history)*5)
	for i, month := range history {
		firstOfMonth := time.Date(month.date.Year(), month.date.Month(), 1, 0, 0, 0, 0, time.UTC)
		daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()
		weeksInMonth := (daysInMonth + 6) / 7

		nextMonthOrders := month.orders
		if i < len(history)-1 {
			nextMonthOrders = history[i+1].orders
		}

		for week := 0; week < weeksInMonth; week++ {
			weekDay := week*7 + 1
			if weekDay > daysInMonth {
				weekDay = daysInMonth
			}
			weekDate := time.Date(month.date.Year(), month.date.Month(), weekDay, 0, 0, 0, 0, time.UTC)

			position := float64(week) / float64(weeksInMonth)

			var weekOrders float64
			if i < len(history)-1 {
				weekOrders = month.orders*(1-position) + nextMonthOrders*position
			} else {
				// Último mês: tendência suave em vez de interpolação
				weekOrders = month.orders * (1 + (position-0.5)*0.1)
			}

			weekOrders *= s.weeklyFactor(week)
			weekOrders *= 1 + (s.rng.Float64()*0.04 - 0.02)

			weekly = append(weekly, domain.TrendPoint{
				Name:      utils.ShortDate(weekDate),
				FullName:  utils.FullDate(weekDate),
				Orders:    int(math.Round(weekOrders / float64(weeksInMonth))),
				Month:     utils.MonthKey(weekDate),
				Week:      utils.WeekKey(weekDate),
				Projected: false,
			})
		}
	}
	return weekly
}

func (s *Service) cityParams(cityID string) config.CityParams {
	if cityID == domain.AllCities || cityID == "" {
		return s.cfg.AllCities
	}
	if params, ok := s.cfg.Cities[cityID]; ok {
		return params
	}
	return config.CityParams{
		YearlyGrowthFactor: defaultGrowthFactor,
		MarketMaturity:     defaultMarketMaturity,
		MinWeeklyOrders:    defaultMinWeeklyOrders,
	}
}

func (s *Service) cityName(cityID string) string {
	if name, ok := s.cities.Name(cityID); ok {
		return name
	}
	return "Unknown"
}

func (s *Service) weeklyFactor(weekOfMonth int) float64 {
	if factor, ok := s.cfg.WeeklySeasonality[weekOfMonth]; ok {
		return factor
	}
	return 1
}

func (s *Service) monthlyFactor(month time.Month) float64 {
	if factor, ok := s.cfg.MonthlySeasonality[month]; ok {
		return factor
	}
	return 1
}
