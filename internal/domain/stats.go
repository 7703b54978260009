package domain

// Status das etapas de serviço vindos do sistema de origem
const (
	StatusCompleted         = "COMPLETED"
	StatusCancelledBySeller = "CANCELLED_BY_SELLER"
)

// CustomerTypeUnknown é o balde para registros sem tipo de cliente
const CustomerTypeUnknown = "Unknown"

// CityStats é a visão agregada por cidade
type CityStats struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Orders        int            `json:"orders"`
	Revenue       float64        `json:"revenue"`
	AvgOrderValue float64        `json:"avg_order_value"`
	Customers     int            `json:"customers"`
	Laundromats   int            `json:"laundromats"`
	CustomerTypes map[string]int `json:"customer_types"`
}

// LaundromatStats é a visão agregada por lavanderia (cleaning.cleaner)
type LaundromatStats struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Orders                 int     `json:"orders"`
	Revenue                float64 `json:"revenue"`
	AverageOrderValue      float64 `json:"average_order_value"`
	AverageTurnaroundDays  float64 `json:"average_turnaround_days"`
	AverageOrderWeight     float64 `json:"average_order_weight"`
	CustomerCount          int     `json:"customer_count"`
	ReturningCustomerCount int     `json:"returning_customer_count"`
	RetentionRate          float64 `json:"retention_rate"`
}

// LaundromatSelection parametriza o recorte de exibição da tabela de lavanderias.
// Os padrões (mínimo de 5 pedidos, top 3 por volume) vêm do dashboard original;
// o recorte é separado do cálculo para poder ser ajustado por requisição.
type LaundromatSelection struct {
	MinOrders int
	Limit     int
}

// DefaultLaundromatSelection retorna o recorte padrão da tabela
func DefaultLaundromatSelection() LaundromatSelection {
	return LaundromatSelection{MinOrders: 5, Limit: 3}
}

// CustomerTypeCount é uma fatia do histograma de tipos de cliente
type CustomerTypeCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthlyTrendPoint é um mês da série de pedidos, com contagem por cidade
type MonthlyTrendPoint struct {
	Month  string         `json:"month"` // yyyy-MM
	Name   string         `json:"name"`  // ex: "Jan 2024"
	Total  int            `json:"total"`
	ByCity map[string]int `json:"by_city"` // nome de exibição -> pedidos
}

// AvgOrderValuePoint é um mês da série de ticket médio
type AvgOrderValuePoint struct {
	Month string  `json:"month"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RetentionMetrics são as métricas globais de retenção de clientes.
// Cliente "recorrente" aqui é quem tem 2 ou mais pedidos no histórico,
// sem janela de tempo.
type RetentionMetrics struct {
	TotalCustomers              int     `json:"total_customers"`
	ReturningCustomers          int     `json:"returning_customers"`
	RetentionRate               float64 `json:"retention_rate"`
	AverageOrdersPerCustomer    float64 `json:"average_orders_per_customer"`
	AverageCustomerLifetimeDays float64 `json:"average_customer_lifetime_days"`
}

// DriverStats é a visão de desempenho por motorista
type DriverStats struct {
	ID                    string  `json:"id"`
	TotalPickups          int     `json:"total_pickups"`
	TotalDropoffs         int     `json:"total_dropoffs"`
	TotalServices         int     `json:"total_services"`
	CompletedPickups      int     `json:"completed_pickups"`
	CompletedDropoffs     int     `json:"completed_dropoffs"`
	CompletedServices     int     `json:"completed_services"`
	CancelledServices     int     `json:"cancelled_services"`
	CompletionRate        float64 `json:"completion_rate"`
	TotalDistance         float64 `json:"total_distance"`
	AvgDistancePerService float64 `json:"avg_distance_per_service"`
	TotalPay              float64 `json:"total_pay"`
	AvgPayPerDistance     float64 `json:"avg_pay_per_distance"`
}

// SeasonalTrend é um trimestre fixo do calendário, somado entre todos os
// anos presentes nos dados (os trimestres não são qualificados por ano)
type SeasonalTrend struct {
	Quarter string  `json:"quarter"` // Q1..Q4
	Name    string  `json:"name"`    // ex: "Q1 (Jan-Mar)"
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// WeightBucket é um balde fixo da distribuição de peso dos pedidos
type WeightBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// FlowLink é um par cliente-lavanderia com volume, para diagramas de fluxo
type FlowLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}
