package reporting

import (
	"testing"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRevenue(t *testing.T) {
	tests := []struct {
		name        string
		appointment *domain.Appointment
		expected    float64
	}{
		{
			name: "usa invoice.total quando presente, mesmo com invoiceTotal maior",
			appointment: &domain.Appointment{
				InvoiceTotal: 80,
				Invoice:      &domain.Invoice{Total: 50},
			},
			expected: 50,
		},
		{
			name:        "cai para invoiceTotal quando invoice.total ausente",
			appointment: &domain.Appointment{InvoiceTotal: 80},
			expected:    80,
		},
		{
			name: "soma as tarifas das etapas como último recurso",
			appointment: &domain.Appointment{
				Pickup:   &domain.ServiceLeg{Rate: 10},
				Dropoff:  &domain.ServiceLeg{Rate: 15},
				Cleaning: &domain.Cleaning{Rate: 20},
			},
			expected: 45,
		},
		{
			name:        "sem nenhum campo de receita retorna zero",
			appointment: &domain.Appointment{},
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SimpleRevenue(tt.appointment), 0.001)
		})
	}
}

func TestBuildAggregatedData(t *testing.T) {
	service := NewService(domain.DefaultCities())

	appointments := []*domain.Appointment{
		{
			CityID:       "LYGRRATQ7EGG2",
			CustomerType: "Residential",
			InvoiceTotal: 100,
			Pickup:       &domain.ServiceLeg{ServiceDate: "2024-03-10"},
		},
		{
			CityID:       "LYGRRATQ7EGG2",
			CustomerType: "Commercial",
			InvoiceTotal: 50,
			Pickup:       &domain.ServiceLeg{ServiceDate: "2024-03-20"},
		},
		{
			CityID:       "L4NE8GPX89J3A",
			InvoiceTotal: 50,
			Pickup:       &domain.ServiceLeg{ServiceDate: "2024-04-05"},
		},
		// Sem cidade: entra nos totais mas não na quebra por cidade
		{InvoiceTotal: 10, CreatedAt: "2024-04-08T10:00:00Z"},
		nil,
	}

	data := service.BuildAggregatedData(appointments)

	assert.Equal(t, 5, data.TotalAppointments)
	assert.InDelta(t, 210.0, data.TotalRevenue, 0.001)

	require.Contains(t, data.Cities, "LYGRRATQ7EGG2")
	london := data.Cities["LYGRRATQ7EGG2"]
	assert.Equal(t, "London", london.Name)
	assert.Equal(t, 2, london.Orders)
	assert.InDelta(t, 150.0, london.Revenue, 0.001)
	assert.InDelta(t, 150.0/210.0*100, london.Percentage, 0.001)

	assert.Equal(t, 1, data.CustomerTypes["Residential"])
	assert.Equal(t, 1, data.CustomerTypes["Commercial"])
	assert.Equal(t, 2, data.CustomerTypes[domain.CustomerTypeUnknown])

	require.Len(t, data.MonthlyTrends, 2)
	assert.Equal(t, "2024-03", data.MonthlyTrends[0].Month)
	assert.Equal(t, "March 2024", data.MonthlyTrends[0].Name)
	assert.Equal(t, 2, data.MonthlyTrends[0].Orders)
	assert.InDelta(t, 150.0, data.MonthlyTrends[0].Revenue, 0.001)
	assert.Equal(t, "2024-04", data.MonthlyTrends[1].Month)
	assert.Equal(t, 2, data.MonthlyTrends[1].Orders)
}

func TestBuildAggregatedDataCidadeDesconhecida(t *testing.T) {
	service := NewService(domain.DefaultCities())

	data := service.BuildAggregatedData([]*domain.Appointment{
		{CityID: "XXXXXX", InvoiceTotal: 10},
	})

	require.Contains(t, data.Cities, "XXXXXX")
	assert.Equal(t, "Unknown", data.Cities["XXXXXX"].Name)
}

func TestBuildRevenueData(t *testing.T) {
	service := NewService(domain.DefaultCities())

	aggregated := &domain.AggregatedData{
		TotalRevenue: 200,
		Cities: map[string]*domain.CityRevenue{
			"LYGRRATQ7EGG2": {Name: "London", Revenue: 200, Orders: 4, Percentage: 100},
		},
	}

	revenue := service.BuildRevenueData(aggregated)

	assert.InDelta(t, 200.0, revenue.TotalRevenue, 0.001)
	require.Contains(t, revenue.Cities, "LYGRRATQ7EGG2")
	// A contagem de pedidos fica fora do artefato reduzido
	assert.Zero(t, revenue.Cities["LYGRRATQ7EGG2"].Orders)
	assert.InDelta(t, 100.0, revenue.Cities["LYGRRATQ7EGG2"].Percentage, 0.001)
}

func TestVerifyRevenueArquivoCorreto(t *testing.T) {
	existing := &domain.RevenueData{TotalRevenue: 310395.84}

	result, changed := VerifyRevenue(existing, 310395.84, time.Now())

	assert.False(t, changed)
	assert.Same(t, existing, result)
}

func TestVerifyRevenueArquivoAusente(t *testing.T) {
	now := time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)

	result, changed := VerifyRevenue(nil, 310395.84, now)

	require.True(t, changed)
	assert.InDelta(t, 310395.84, result.TotalRevenue, 0.001)
	assert.Equal(t, "2024-11-01T12:00:00Z", result.GeneratedAt)
	assert.Equal(t, VerifierName, result.GeneratedBy)
	assert.Empty(t, result.CorrectedAt)
	assert.Len(t, result.Cities, 5)
}

func TestVerifyRevenueTotalDivergente(t *testing.T) {
	now := time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)
	existing := &domain.RevenueData{
		TotalRevenue: 999.99,
		GeneratedAt:  "2024-10-01T00:00:00Z",
		GeneratedBy:  "pipeline",
	}

	result, changed := VerifyRevenue(existing, 310395.84, now)

	require.True(t, changed)
	assert.InDelta(t, 310395.84, result.TotalRevenue, 0.001)
	assert.Equal(t, "2024-11-01T12:00:00Z", result.CorrectedAt)
	assert.Equal(t, VerifierName, result.CorrectedBy)
	// Os carimbos de geração originais são preservados
	assert.Equal(t, "2024-10-01T00:00:00Z", result.GeneratedAt)
	assert.Equal(t, "pipeline", result.GeneratedBy)
	assert.InDelta(t, 158429.89, result.Cities["LYGRRATQ7EGG2"].Revenue, 0.001)
}
