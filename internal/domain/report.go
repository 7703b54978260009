package domain

// CityRevenue é a fatia por cidade dos relatórios agregados
type CityRevenue struct {
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders,omitempty"`
	Percentage float64 `json:"percentage"`
}

// MonthlyRevenuePoint é um mês da série de pedidos/receita dos relatórios
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"` // yyyy-MM
	Name    string  `json:"name"`  // ex: "January 2024"
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// AggregatedData é o artefato completo gerado pelo preparo de dados
// (aggregated_data.json): totais, quebra por cidade com percentuais,
// histograma de tipos de cliente e série mensal
type AggregatedData struct {
	TotalAppointments int                     `json:"total_appointments"`
	TotalRevenue      float64                 `json:"total_revenue"`
	Cities            map[string]*CityRevenue `json:"cities"`
	CustomerTypes     map[string]int          `json:"customer_types"`
	MonthlyTrends     []MonthlyRevenuePoint   `json:"monthly_trends"`
}

// RevenueData é o artefato reduzido (revenue_data.json): receita total
// mais receita/percentual por cidade. Os campos de auditoria são
// preenchidos pelo script de verificação quando ele cria ou corrige o arquivo
type RevenueData struct {
	TotalRevenue float64                 `json:"total_revenue"`
	Cities       map[string]*CityRevenue `json:"cities"`
	GeneratedAt  string                  `json:"generated_at,omitempty"`
	GeneratedBy  string                  `json:"generated_by,omitempty"`
	CorrectedAt  string                  `json:"corrected_at,omitempty"`
	CorrectedBy  string                  `json:"corrected_by,omitempty"`
}
