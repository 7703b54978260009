package domain

import (
	"bytes"
	"strconv"
	"time"
)

// FlexFloat aceita números e strings numéricas no JSON de origem.
// Os dados exportados misturam os dois formatos dependendo da versão
// do sistema que gerou o registro; valores inválidos viram 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = FlexFloat(value)
	return nil
}

// Invoice é o bloco de fatura do formato mais novo dos registros
type Invoice struct {
	Total FlexFloat `json:"total,omitempty"`
}

// ServiceLeg representa uma etapa do serviço (pickup, delivery, drop, dropoff)
type ServiceLeg struct {
	ServiceDate string    `json:"serviceDate,omitempty"`
	Rate        FlexFloat `json:"rate,omitempty"`
	Driver      string    `json:"driver,omitempty"`
	Status      string    `json:"status,omitempty"`
	Distance    FlexFloat `json:"distance,omitempty"`
	BasePay     FlexFloat `json:"basePay,omitempty"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
}

// OrderDetails traz os detalhes do pedido dentro do bloco de limpeza
type OrderDetails struct {
	WashFoldWeight FlexFloat `json:"washFoldWeight,omitempty"`
}

// Cleaning é o bloco da lavanderia responsável pelo pedido
type Cleaning struct {
	Cleaner      string        `json:"cleaner,omitempty"`
	Rate         FlexFloat     `json:"rate,omitempty"`
	OrderDetails *OrderDetails `json:"orderDetails,omitempty"`
}

// Appointment é o registro atômico de um pedido de coleta/lavagem/entrega.
// Nenhum campo é garantido: os dados vêm de múltiplas versões do sistema
// de origem, com grafias diferentes para cidade, data e receita.
type Appointment struct {
	AppointmentID string `json:"appointmentId,omitempty"`
	CustomerID    string `json:"customerId,omitempty"`
	CustomerType  string `json:"customerType,omitempty"`
	Status        string `json:"status,omitempty"`

	// Identificadores de cidade em três grafias legadas
	CityID       string `json:"cityId,omitempty"`
	CityIDLegacy string `json:"city_id,omitempty"`
	City         string `json:"city,omitempty"`
	CityName     string `json:"cityName,omitempty"`

	// Campos de receita possivelmente redundantes entre si
	InvoiceTotal FlexFloat `json:"invoiceTotal,omitempty"`
	Invoice      *Invoice  `json:"invoice,omitempty"`

	Pickup   *ServiceLeg `json:"pickup,omitempty"`
	Delivery *ServiceLeg `json:"delivery,omitempty"`
	Drop     *ServiceLeg `json:"drop,omitempty"`
	Dropoff  *ServiceLeg `json:"dropoff,omitempty"`
	Cleaning *Cleaning   `json:"cleaning,omitempty"`

	// Datas alternativas quando pickup.serviceDate não existe
	ServiceDate string `json:"service_date,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`

	LaundromatID   string `json:"laundromat_id,omitempty"`
	LaundromatName string `json:"laundromat_name,omitempty"`
}

// ResolveRevenue extrai o valor canônico de receita de um agendamento.
// Quando invoiceTotal (legado) e invoice.total (novo) existem ao mesmo tempo,
// usa o maior dos dois para evitar dupla contagem entre caminhos de ingestão
// distintos; a soma dos dois seria contagem duplicada. Como última alternativa
// soma as tarifas das etapas presentes. Nunca retorna NaN nem valor negativo.
func (a *Appointment) ResolveRevenue() float64 {
	invoiceTotal := float64(a.InvoiceTotal)

	var invoiceDotTotal float64
	if a.Invoice != nil {
		invoiceDotTotal = float64(a.Invoice.Total)
	}

	var otherRevenue float64
	if a.Pickup != nil {
		otherRevenue += float64(a.Pickup.Rate)
	}
	if a.Delivery != nil {
		otherRevenue += float64(a.Delivery.Rate)
	}
	if a.Cleaning != nil {
		otherRevenue += float64(a.Cleaning.Rate)
	}

	switch {
	case invoiceTotal > 0 && invoiceDotTotal > 0:
		if invoiceTotal > invoiceDotTotal {
			return invoiceTotal
		}
		return invoiceDotTotal
	case invoiceDotTotal > 0:
		return invoiceDotTotal
	case invoiceTotal > 0:
		return invoiceTotal
	case otherRevenue > 0:
		return otherRevenue
	default:
		return 0
	}
}

// NormalizeCityID resolve o identificador de cidade entre as grafias legadas.
// Tenta cityId, city_id e city como IDs diretos; depois tenta casar city e
// cityName contra os nomes de exibição da tabela. Sem correspondência, cai
// na cidade padrão (London), fallback documentado, não é erro.
func (a *Appointment) NormalizeCityID(cities CityTable) string {
	for _, candidate := range []string{a.CityID, a.CityIDLegacy, a.City} {
		if candidate != "" && candidate != AllCities && cities.Has(candidate) {
			return candidate
		}
	}

	for _, name := range []string{a.City, a.CityName} {
		if name == "" {
			continue
		}
		if id, ok := cities.IDByName(name); ok && id != AllCities {
			return id
		}
	}

	return DefaultCityID
}

// ResolveServiceDate resolve a data de serviço na ordem de prioridade
// pickup.serviceDate > service_date > createdAt. Datas inválidas contam
// como ausentes: o registro sai das visões por data mas continua nas demais.
func (a *Appointment) ResolveServiceDate() (time.Time, bool) {
	var candidates []string
	if a.Pickup != nil && a.Pickup.ServiceDate != "" {
		candidates = append(candidates, a.Pickup.ServiceDate)
	}
	if a.ServiceDate != "" {
		candidates = append(candidates, a.ServiceDate)
	}
	if a.CreatedAt != "" {
		candidates = append(candidates, a.CreatedAt)
	}

	for _, raw := range candidates {
		if parsed, ok := ParseFlexibleDate(raw); ok {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// PickupDate retorna apenas a data de pickup, quando presente e válida
func (a *Appointment) PickupDate() (time.Time, bool) {
	if a.Pickup == nil || a.Pickup.ServiceDate == "" {
		return time.Time{}, false
	}
	return ParseFlexibleDate(a.Pickup.ServiceDate)
}

// DropDate retorna a data de entrega (drop), quando presente e válida
func (a *Appointment) DropDate() (time.Time, bool) {
	if a.Drop == nil || a.Drop.ServiceDate == "" {
		return time.Time{}, false
	}
	return ParseFlexibleDate(a.Drop.ServiceDate)
}

// WashFoldWeight retorna o peso do pedido em kg, quando informado
func (a *Appointment) WashFoldWeight() (float64, bool) {
	if a.Cleaning == nil || a.Cleaning.OrderDetails == nil {
		return 0, false
	}
	weight := float64(a.Cleaning.OrderDetails.WashFoldWeight)
	if weight <= 0 {
		return 0, false
	}
	return weight, true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexibleDate aceita os formatos de data encontrados nos dados de origem
func ParseFlexibleDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
