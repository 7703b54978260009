package aggregating

import (
	"testing"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.November, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService() *Service {
	return NewService(domain.DefaultCities(), fixedNow)
}

func makeAppointment(customerID string, invoiceTotal float64, pickupDate string) *domain.Appointment {
	return &domain.Appointment{
		CustomerID:   customerID,
		CustomerType: "Residential",
		CityID:       "LYGRRATQ7EGG2",
		InvoiceTotal: domain.FlexFloat(invoiceTotal),
		Pickup:       &domain.ServiceLeg{ServiceDate: pickupDate},
		Cleaning:     &domain.Cleaning{Cleaner: "laundromat-1"},
	}
}

func TestFilterValid(t *testing.T) {
	service := newTestService()

	valid := makeAppointment("c1", 50, "2024-09-10")
	cancelled := makeAppointment("c2", 50, "2024-09-10")
	cancelled.Status = domain.StatusCancelledBySeller
	currentMonth := makeAppointment("c3", 50, "2024-11-02")
	semCidade := makeAppointment("c4", 50, "2024-09-10")
	semCidade.CityID = ""
	semTipo := makeAppointment("c5", 50, "2024-09-10")
	semTipo.CustomerType = ""
	semPickup := makeAppointment("c6", 50, "2024-09-10")
	semPickup.Pickup = nil
	semCleaning := makeAppointment("c7", 50, "2024-09-10")
	semCleaning.Cleaning = nil

	result := service.FilterValid([]*domain.Appointment{
		valid, cancelled, currentMonth, semCidade, semTipo, semPickup, semCleaning, nil,
	})

	require.Len(t, result, 1)
	assert.Same(t, valid, result[0])
}

func TestFilterByCity(t *testing.T) {
	service := newTestService()

	london := makeAppointment("c1", 50, "2024-09-10")
	ottawa := makeAppointment("c2", 30, "2024-09-11")
	ottawa.CityID = "L4NE8GPX89J3A"

	appointments := []*domain.Appointment{london, ottawa}

	assert.Len(t, service.FilterByCity(appointments, "LYGRRATQ7EGG2"), 1)
	assert.Len(t, service.FilterByCity(appointments, "L4NE8GPX89J3A"), 1)
	assert.Len(t, service.FilterByCity(appointments, domain.AllCities), 2)
	assert.Len(t, service.FilterByCity(appointments, ""), 2)
}

func TestCityStatistics(t *testing.T) {
	service := newTestService()

	// Dois pedidos do mesmo cliente em London, 50 + 30 de receita
	first := makeAppointment("cust-1", 50, "2024-09-10")
	second := makeAppointment("cust-1", 30, "2024-10-12")
	second.Cleaning.Cleaner = "laundromat-2"

	result := service.CityStatistics([]*domain.Appointment{first, second})

	require.Len(t, result, 5)

	byID := make(map[string]*domain.CityStats)
	for _, stats := range result {
		byID[stats.ID] = stats
	}

	london := byID["LYGRRATQ7EGG2"]
	require.NotNil(t, london)
	assert.Equal(t, "London", london.Name)
	assert.Equal(t, 2, london.Orders)
	assert.InDelta(t, 80.0, london.Revenue, 0.001)
	assert.InDelta(t, 40.0, london.AvgOrderValue, 0.001)
	assert.Equal(t, 1, london.Customers)
	assert.Equal(t, 2, london.Laundromats)
	assert.Equal(t, 2, london.CustomerTypes["Residential"])

	// Cidades sem pedido aparecem zeradas
	calgary := byID["LG0VGFKQ25XED"]
	require.NotNil(t, calgary)
	assert.Zero(t, calgary.Orders)
	assert.Zero(t, calgary.Revenue)
}

func TestCityStatisticsNormalizaCidadePeloNome(t *testing.T) {
	service := newTestService()

	appointment := makeAppointment("cust-1", 25, "2024-09-10")
	appointment.CityID = ""
	appointment.CityName = "ottawa"

	result := service.CityStatistics([]*domain.Appointment{appointment})

	for _, stats := range result {
		if stats.ID == "L4NE8GPX89J3A" {
			assert.Equal(t, 1, stats.Orders)
			return
		}
	}
	t.Fatal("Ottawa não encontrada no resultado")
}

func TestCustomerTypeDistribution(t *testing.T) {
	service := newTestService()

	residential := makeAppointment("c1", 50, "2024-09-10")
	commercial := makeAppointment("c2", 80, "2024-09-11")
	commercial.CustomerType = "Commercial"
	semTipo := makeAppointment("c3", 20, "2024-09-12")
	semTipo.CustomerType = ""

	result := service.CustomerTypeDistribution([]*domain.Appointment{residential, commercial, semTipo, residential})

	require.Len(t, result, 3)
	assert.Equal(t, domain.CustomerTypeCount{Name: "Residential", Value: 2}, result[0])
	assert.Equal(t, domain.CustomerTypeCount{Name: "Commercial", Value: 1}, result[1])
	assert.Equal(t, domain.CustomerTypeCount{Name: domain.CustomerTypeUnknown, Value: 1}, result[2])
}

func TestLaundromatStatistics(t *testing.T) {
	service := newTestService()

	appointments := make([]*domain.Appointment, 0)

	// laundromat-1: 6 pedidos de 3 clientes, cliente repetido
	for i := 0; i < 6; i++ {
		customer := []string{"c1", "c1", "c2", "c2", "c3", "c3"}[i]
		a := makeAppointment(customer, 40, "2024-09-10")
		a.Cleaning.OrderDetails = &domain.OrderDetails{WashFoldWeight: 10}
		a.Drop = &domain.ServiceLeg{ServiceDate: "2024-09-12"}
		appointments = append(appointments, a)
	}

	// laundromat-2: abaixo do mínimo de pedidos
	below := makeAppointment("c9", 100, "2024-09-10")
	below.Cleaning.Cleaner = "laundromat-2"
	appointments = append(appointments, below)

	result := service.LaundromatStatistics(appointments, domain.DefaultLaundromatSelection())

	require.Len(t, result, 1)
	stats := result[0]
	assert.Equal(t, "laundromat-1", stats.ID)
	assert.Equal(t, 6, stats.Orders)
	assert.InDelta(t, 240.0, stats.Revenue, 0.001)
	assert.InDelta(t, 40.0, stats.AverageOrderValue, 0.001)
	assert.InDelta(t, 2.0, stats.AverageTurnaroundDays, 0.001)
	assert.InDelta(t, 10.0, stats.AverageOrderWeight, 0.001)
	assert.Equal(t, 3, stats.CustomerCount)
	// Cada cliente repete a mesma lavanderia uma vez
	assert.Equal(t, 3, stats.ReturningCustomerCount)
	assert.InDelta(t, 1.0, stats.RetentionRate, 0.001)
}

func TestLaundromatStatisticsRecorte(t *testing.T) {
	service := newTestService()

	appointments := make([]*domain.Appointment, 0)
	for i, cleaner := range []string{"l1", "l2", "l3", "l4"} {
		for j := 0; j <= i; j++ {
			a := makeAppointment("c1", 10, "2024-09-10")
			a.Cleaning.Cleaner = cleaner
			appointments = append(appointments, a)
		}
	}

	result := service.LaundromatStatistics(appointments, domain.LaundromatSelection{MinOrders: 2, Limit: 2})

	require.Len(t, result, 2)
	assert.Equal(t, "l4", result[0].ID)
	assert.Equal(t, 4, result[0].Orders)
	assert.Equal(t, "l3", result[1].ID)
}

func TestLaundromatRecorrenteAlternandoLavanderias(t *testing.T) {
	service := newTestService()

	// Cliente alterna l1 -> l2 -> l1: nenhuma visita consecutiva repete a
	// lavanderia anterior, então ninguém conta como recorrente
	a1 := makeAppointment("c1", 10, "2024-09-01")
	a1.Cleaning.Cleaner = "l1"
	a2 := makeAppointment("c1", 10, "2024-09-05")
	a2.Cleaning.Cleaner = "l2"
	a3 := makeAppointment("c1", 10, "2024-09-09")
	a3.Cleaning.Cleaner = "l1"

	result := service.AllLaundromatStatistics([]*domain.Appointment{a1, a2, a3})

	require.Len(t, result, 2)
	for _, stats := range result {
		assert.Zero(t, stats.ReturningCustomerCount, "lavanderia %s", stats.ID)
	}
}

func TestMonthlyOrdersTrend(t *testing.T) {
	service := newTestService()

	september := makeAppointment("c1", 50, "2024-09-10")
	october := makeAppointment("c2", 30, "2024-10-05")
	october.CityID = "L4NE8GPX89J3A"
	currentMonth := makeAppointment("c3", 20, "2024-11-03")
	tooOld := makeAppointment("c4", 20, "2022-01-03")

	result := service.MonthlyOrdersTrend([]*domain.Appointment{september, october, currentMonth, tooOld}, 12)

	// Janela de 12 meses menos o mês corrente
	require.Len(t, result, 11)

	byMonth := make(map[string]*domain.MonthlyTrendPoint)
	for _, point := range result {
		byMonth[point.Month] = point
	}

	_, hasCurrent := byMonth["2024-11"]
	assert.False(t, hasCurrent)

	require.Contains(t, byMonth, "2024-09")
	assert.Equal(t, 1, byMonth["2024-09"].Total)
	assert.Equal(t, 1, byMonth["2024-09"].ByCity["London"])
	assert.Equal(t, 0, byMonth["2024-09"].ByCity["Ottawa"])

	require.Contains(t, byMonth, "2024-10")
	assert.Equal(t, 1, byMonth["2024-10"].ByCity["Ottawa"])

	// Série ordenada cronologicamente
	for i := 1; i < len(result); i++ {
		assert.Less(t, result[i-1].Month, result[i].Month)
	}
}

func TestAvgOrderValueTrend(t *testing.T) {
	service := newTestService()

	paid := makeAppointment("c1", 50, "2024-09-10")
	alsoPaid := makeAppointment("c2", 25, "2024-09-20")
	// Receita zero fica fora do denominador
	free := makeAppointment("c3", 0, "2024-09-25")
	free.Cleaning.Rate = 0

	result := service.AvgOrderValueTrend([]*domain.Appointment{paid, alsoPaid, free}, 12)

	require.Len(t, result, 11)

	for _, point := range result {
		if point.Month == "2024-09" {
			assert.InDelta(t, 37.5, point.Value, 0.001)
			return
		}
	}
	t.Fatal("mês 2024-09 não encontrado na série")
}

func TestSeasonalTrends(t *testing.T) {
	service := newTestService()

	// Dois anos diferentes caem no mesmo trimestre fixo
	jan2023 := makeAppointment("c1", 10, "2023-01-10")
	feb2024 := makeAppointment("c2", 20, "2024-02-10")
	jul2024 := makeAppointment("c3", 30, "2024-07-10")

	result := service.SeasonalTrends([]*domain.Appointment{jan2023, feb2024, jul2024})

	require.Len(t, result, 4)
	assert.Equal(t, "Q1", result[0].Quarter)
	assert.Equal(t, 2, result[0].Orders)
	assert.InDelta(t, 30.0, result[0].Revenue, 0.001)
	assert.Zero(t, result[1].Orders)
	assert.Equal(t, 1, result[2].Orders)
	assert.Zero(t, result[3].Orders)
}

func TestRetentionMetrics(t *testing.T) {
	service := newTestService()

	// Um único cliente com dois pedidos separados por 30 dias
	first := makeAppointment("cust-1", 50, "2024-08-01")
	second := makeAppointment("cust-1", 30, "2024-08-31")

	result := service.RetentionMetrics([]*domain.Appointment{first, second})

	require.NotNil(t, result)
	assert.Equal(t, 1, result.TotalCustomers)
	assert.Equal(t, 1, result.ReturningCustomers)
	assert.InDelta(t, 1.0, result.RetentionRate, 0.001)
	assert.InDelta(t, 2.0, result.AverageOrdersPerCustomer, 0.001)
	assert.InDelta(t, 30.0, result.AverageCustomerLifetimeDays, 0.001)
}

func TestRetentionMetricsSemClientes(t *testing.T) {
	service := newTestService()

	semCliente := makeAppointment("", 50, "2024-08-01")

	result := service.RetentionMetrics([]*domain.Appointment{semCliente})

	require.NotNil(t, result)
	assert.Zero(t, result.TotalCustomers)
	assert.Zero(t, result.RetentionRate)
}

func TestRetentionMetricsDataInvalidaContaPedido(t *testing.T) {
	service := newTestService()

	valid := makeAppointment("cust-1", 50, "2024-08-01")
	invalidDate := makeAppointment("cust-1", 30, "data-invalida")

	result := service.RetentionMetrics([]*domain.Appointment{valid, invalidDate})

	// O pedido com data inválida conta no volume mas não no tempo de vida
	assert.Equal(t, 1, result.TotalCustomers)
	assert.Equal(t, 1, result.ReturningCustomers)
	assert.InDelta(t, 2.0, result.AverageOrdersPerCustomer, 0.001)
	assert.Zero(t, result.AverageCustomerLifetimeDays)
}

func TestCustomerLaundromatFlow(t *testing.T) {
	service := newTestService()

	appointments := make([]*domain.Appointment, 0)
	for i := 0; i < 3; i++ {
		appointments = append(appointments, makeAppointment("customer-aaaa", 10, "2024-09-01"))
	}
	other := makeAppointment("customer-bbbb", 10, "2024-09-01")
	other.Cleaning.Cleaner = "laundromat-2"
	appointments = append(appointments, other)

	result := service.CustomerLaundromatFlow(appointments)

	require.Len(t, result, 2)
	assert.Equal(t, domain.FlowLink{Source: "customer...", Target: "laundrom...", Value: 3}, result[0])
	assert.Equal(t, 1, result[1].Value)
}

func TestDriverPerformance(t *testing.T) {
	service := newTestService()

	a := &domain.Appointment{
		Pickup: &domain.ServiceLeg{
			Driver:   "driver-1",
			Status:   domain.StatusCompleted,
			Distance: 10,
			BasePay:  20,
		},
		Dropoff: &domain.ServiceLeg{
			Driver:   "driver-1",
			Status:   domain.StatusCancelledBySeller,
			Distance: 5,
			BasePay:  10,
		},
	}
	b := &domain.Appointment{
		Pickup: &domain.ServiceLeg{
			Driver:   "driver-2",
			Status:   domain.StatusCompleted,
			Distance: 8,
			BasePay:  16,
		},
	}

	result := service.DriverPerformance([]*domain.Appointment{a, b})

	require.Len(t, result, 2)

	first := result[0]
	assert.Equal(t, "driver-1", first.ID)
	assert.Equal(t, 1, first.TotalPickups)
	assert.Equal(t, 1, first.TotalDropoffs)
	assert.Equal(t, 2, first.TotalServices)
	assert.Equal(t, 1, first.CompletedServices)
	assert.Equal(t, 1, first.CancelledServices)
	assert.InDelta(t, 0.5, first.CompletionRate, 0.001)
	assert.InDelta(t, 15.0, first.TotalDistance, 0.001)
	assert.InDelta(t, 7.5, first.AvgDistancePerService, 0.001)
	assert.InDelta(t, 2.0, first.AvgPayPerDistance, 0.001)

	second := result[1]
	assert.Equal(t, "driver-2", second.ID)
	assert.InDelta(t, 1.0, second.CompletionRate, 0.001)
}

func TestWeightDistribution(t *testing.T) {
	service := newTestService()

	weights := []float64{3, 5, 7, 12, 18, 25, 40}
	appointments := make([]*domain.Appointment, 0, len(weights)+1)
	for _, w := range weights {
		a := makeAppointment("c1", 10, "2024-09-01")
		a.Cleaning.OrderDetails = &domain.OrderDetails{WashFoldWeight: domain.FlexFloat(w)}
		appointments = append(appointments, a)
	}
	// Sem peso informado, fica fora da distribuição
	appointments = append(appointments, makeAppointment("c2", 10, "2024-09-01"))

	result := service.WeightDistribution(appointments)

	require.Len(t, result, 6)
	assert.Equal(t, "0-5kg", result[0].Range)
	assert.Equal(t, 2, result[0].Count)
	assert.Equal(t, 1, result[1].Count)
	assert.Equal(t, 1, result[2].Count)
	assert.Equal(t, 1, result[3].Count)
	assert.Equal(t, 1, result[4].Count)
	assert.Equal(t, "31kg+", result[5].Range)
	assert.Equal(t, 1, result[5].Count)
}
