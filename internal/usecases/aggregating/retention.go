package aggregating

import (
	"sort"
	"time"

	"github.com/onestop/laundry-dashboard-api/internal/domain"
)

// RetentionMetrics calcula as métricas globais de retenção. "Recorrente"
// é o cliente com 2 ou mais pedidos no histórico inteiro, sem janela de
// tempo. O tempo de vida médio considera apenas clientes recorrentes com
// datas válidas e intervalo positivo entre primeiro e último pedido.
func (s *Service) RetentionMetrics(appointments []*domain.Appointment) (result *domain.RetentionMetrics) {
	result = &domain.RetentionMetrics{}
	defer recoverAggregation("retention-metrics")

	ordersByCustomer := make(map[string]int)
	firstOrderDate := make(map[string]time.Time)
	lastOrderDate := make(map[string]time.Time)

	for _, appointment := range appointments {
		customerID := appointment.CustomerID
		if customerID == "" {
			continue
		}

		ordersByCustomer[customerID]++

		// Falha de data exclui o registro apenas do cálculo de tempo de vida
		orderDate, ok := appointment.ResolveServiceDate()
		if !ok {
			continue
		}

		if first, seen := firstOrderDate[customerID]; !seen || orderDate.Before(first) {
			firstOrderDate[customerID] = orderDate
		}
		if last, seen := lastOrderDate[customerID]; !seen || orderDate.After(last) {
			lastOrderDate[customerID] = orderDate
		}
	}

	result.TotalCustomers = len(ordersByCustomer)

	var totalOrders int
	for _, count := range ordersByCustomer {
		totalOrders += count
		if count > 1 {
			result.ReturningCustomers++
		}
	}

	if result.TotalCustomers > 0 {
		result.RetentionRate = float64(result.ReturningCustomers) / float64(result.TotalCustomers)
		result.AverageOrdersPerCustomer = float64(totalOrders) / float64(result.TotalCustomers)
	}

	var totalLifetimeDays float64
	var customersWithLifetime int
	for customerID, count := range ordersByCustomer {
		if count <= 1 {
			continue
		}
		first, okFirst := firstOrderDate[customerID]
		last, okLast := lastOrderDate[customerID]
		if !okFirst || !okLast {
			continue
		}
		days := last.Sub(first).Hours() / 24
		if days > 0 {
			totalLifetimeDays += days
			customersWithLifetime++
		}
	}
	if customersWithLifetime > 0 {
		result.AverageCustomerLifetimeDays = totalLifetimeDays / float64(customersWithLifetime)
	}

	return result
}

// customerFlowLimit limita a quantidade de fluxos exibidos no diagrama
const customerFlowLimit = 20

// CustomerLaundromatFlow gera os pares cliente-lavanderia com volume de
// pedidos, limitados aos mais significativos, para diagramas de fluxo
func (s *Service) CustomerLaundromatFlow(appointments []*domain.Appointment) (result []domain.FlowLink) {
	defer recoverAggregation("customer-laundromat-flow")

	type pair struct {
		customer   string
		laundromat string
	}

	counts := make(map[pair]int)
	order := make([]pair, 0)

	for _, appointment := range appointments {
		if appointment.CustomerID == "" || appointment.Cleaning == nil || appointment.Cleaning.Cleaner == "" {
			continue
		}

		key := pair{customer: appointment.CustomerID, laundromat: appointment.Cleaning.Cleaner}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result = make([]domain.FlowLink, 0, len(order))
	for _, key := range order {
		result = append(result, domain.FlowLink{
			Source: truncateID(key.customer),
			Target: truncateID(key.laundromat),
			Value:  counts[key],
		})
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Value > result[j].Value })
	if len(result) > customerFlowLimit {
		result = result[:customerFlowLimit]
	}
	return result
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id + "..."
	}
	return id[:8] + "..."
}
