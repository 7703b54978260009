package domain

// TrendPoint é um ponto semanal da série combinada de pedidos.
// Pontos gerados pela projeção carregam sempre Projected=true e nunca
// devem ser confundidos com observações históricas.
type TrendPoint struct {
	Name      string `json:"name"`     // ex: "Jan 2"
	FullName  string `json:"fullname"` // ex: "Jan 2, 2025"
	Orders    int    `json:"orders"`
	Month     string `json:"month"` // yyyy-MM
	Week      string `json:"week"`  // yyyy-MM-dd
	Projected bool   `json:"projected"`
}

// ProjectionMetrics resume a projeção para os cards do dashboard
type ProjectionMetrics struct {
	TotalAnnualOrders      int     `json:"total_annual_orders"`
	AverageMonthlyOrders   int     `json:"average_monthly_orders"`
	AverageWeeklyOrders    int     `json:"average_weekly_orders"`
	ProjectedGrowthPercent float64 `json:"projected_growth_percent"`
	CityName               string  `json:"city_name"`
}

// ProjectionResult combina a série histórica semanal interpolada com a
// série projetada, mais as métricas derivadas
type ProjectionResult struct {
	Combined   []TrendPoint      `json:"combined"`
	Historical []TrendPoint      `json:"historical"`
	Projected  []TrendPoint      `json:"projected"`
	Metrics    ProjectionMetrics `json:"metrics"`
}
