package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_ResolveRevenue(t *testing.T) {
	tests := []struct {
		name        string
		appointment *Appointment
		expected    float64
	}{
		{
			name: "Ambos os campos de fatura presentes - usa o maior, nunca a soma",
			appointment: &Appointment{
				InvoiceTotal: 50,
				Invoice:      &Invoice{Total: 80},
			},
			expected: 80,
		},
		{
			name: "Campo legado maior que o novo - usa o legado",
			appointment: &Appointment{
				InvoiceTotal: 120,
				Invoice:      &Invoice{Total: 80},
			},
			expected: 120,
		},
		{
			name:        "Apenas invoiceTotal legado",
			appointment: &Appointment{InvoiceTotal: 50},
			expected:    50,
		},
		{
			name:        "Apenas invoice.total novo",
			appointment: &Appointment{Invoice: &Invoice{Total: 30}},
			expected:    30,
		},
		{
			name: "Sem fatura - soma as tarifas das etapas presentes",
			appointment: &Appointment{
				Pickup:   &ServiceLeg{Rate: 10},
				Delivery: &ServiceLeg{Rate: 15},
				Cleaning: &Cleaning{Rate: 20},
			},
			expected: 45,
		},
		{
			name:        "Registro vazio - zero",
			appointment: &Appointment{},
			expected:    0,
		},
		{
			name: "Valores negativos são ignorados",
			appointment: &Appointment{
				InvoiceTotal: -10,
				Pickup:       &ServiceLeg{Rate: -5},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appointment.ResolveRevenue()
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestAppointment_ResolveRevenue_StringAmounts(t *testing.T) {
	// Os dados de origem misturam números e strings numéricas
	raw := `{"invoiceTotal": "50.00", "invoice": {"total": 80}}`

	var appointment Appointment
	require.NoError(t, json.Unmarshal([]byte(raw), &appointment))

	assert.Equal(t, 80.0, appointment.ResolveRevenue())
}

func TestAppointment_ResolveRevenue_InvalidAmounts(t *testing.T) {
	raw := `{"invoiceTotal": "not-a-number", "pickup": {"rate": "abc"}}`

	var appointment Appointment
	require.NoError(t, json.Unmarshal([]byte(raw), &appointment))

	assert.Equal(t, 0.0, appointment.ResolveRevenue())
}

func TestAppointment_NormalizeCityID(t *testing.T) {
	cities := DefaultCities()

	tests := []struct {
		name        string
		appointment *Appointment
		expected    string
	}{
		{
			name:        "cityId direto é prioridade",
			appointment: &Appointment{CityID: "L4NE8GPX89J3A"},
			expected:    "L4NE8GPX89J3A",
		},
		{
			name:        "city_id legado como segunda opção",
			appointment: &Appointment{CityIDLegacy: "LXMC6DWVJ5N7W"},
			expected:    "LXMC6DWVJ5N7W",
		},
		{
			name:        "campo city com um ID válido",
			appointment: &Appointment{City: "LG0VGFKQ25XED"},
			expected:    "LG0VGFKQ25XED",
		},
		{
			name:        "nome de exibição sem case no campo city",
			appointment: &Appointment{City: "ottawa"},
			expected:    "L4NE8GPX89J3A",
		},
		{
			name:        "nome de exibição em cityName",
			appointment: &Appointment{CityName: "Kitchener-Waterloo"},
			expected:    "LDK6Z980JTKXY",
		},
		{
			name:        "ID desconhecido cai na cidade padrão",
			appointment: &Appointment{CityID: "XXXXXX"},
			expected:    DefaultCityID,
		},
		{
			name:        "registro sem cidade cai na cidade padrão",
			appointment: &Appointment{},
			expected:    DefaultCityID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appointment.NormalizeCityID(cities))
		})
	}
}

func TestAppointment_ResolveServiceDate(t *testing.T) {
	tests := []struct {
		name        string
		appointment *Appointment
		expected    time.Time
		ok          bool
	}{
		{
			name: "pickup.serviceDate tem prioridade sobre os demais",
			appointment: &Appointment{
				Pickup:      &ServiceLeg{ServiceDate: "2023-05-01"},
				ServiceDate: "2023-06-01",
				CreatedAt:   "2023-07-01",
			},
			expected: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name: "service_date quando pickup não tem data",
			appointment: &Appointment{
				ServiceDate: "2023-06-01",
				CreatedAt:   "2023-07-01",
			},
			expected: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:        "createdAt como última alternativa",
			appointment: &Appointment{CreatedAt: "2023-07-15T10:30:00Z"},
			expected:    time.Date(2023, 7, 15, 10, 30, 0, 0, time.UTC),
			ok:          true,
		},
		{
			name: "data inválida conta como ausente",
			appointment: &Appointment{
				Pickup: &ServiceLeg{ServiceDate: "not-a-date"},
			},
			ok: false,
		},
		{
			name:        "registro sem nenhuma data",
			appointment: &Appointment{},
			ok:          false,
		},
		{
			name: "data inválida no pickup cai para service_date",
			appointment: &Appointment{
				Pickup:      &ServiceLeg{ServiceDate: "garbage"},
				ServiceDate: "2023-08-01",
			},
			expected: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.appointment.ResolveServiceDate()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(got), "esperava %s, veio %s", tt.expected, got)
			}
		})
	}
}

func TestAppointment_WashFoldWeight(t *testing.T) {
	withWeight := &Appointment{
		Cleaning: &Cleaning{OrderDetails: &OrderDetails{WashFoldWeight: 12.5}},
	}
	weight, ok := withWeight.WashFoldWeight()
	assert.True(t, ok)
	assert.Equal(t, 12.5, weight)

	withoutWeight := &Appointment{Cleaning: &Cleaning{}}
	_, ok = withoutWeight.WashFoldWeight()
	assert.False(t, ok)
}

func TestCityTable_Lookups(t *testing.T) {
	cities := DefaultCities()

	name, ok := cities.Name("LYGRRATQ7EGG2")
	assert.True(t, ok)
	assert.Equal(t, "London", name)

	id, ok := cities.IDByName("hamilton")
	assert.True(t, ok)
	assert.Equal(t, "LXMC6DWVJ5N7W", id)

	_, ok = cities.IDByName("Toronto")
	assert.False(t, ok)

	assert.Len(t, cities.Cities(), 5)
	assert.True(t, cities.Has(AllCities))
}
