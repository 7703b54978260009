package dataset

import (
	"context"
	"time"

	"github.com/jaswdr/faker"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/onestop/laundry-dashboard-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DefaultSampleSize é o tamanho da amostra sintética de último recurso
const DefaultSampleSize = 50

// SampleGenerator produz um conjunto sintético de agendamentos com o mesmo
// formato dos registros reais. É a origem de último recurso: o dashboard
// renderiza dados de demonstração em vez de uma tela vazia.
type SampleGenerator struct {
	cities domain.CityTable
	size   int
	fake   faker.Faker
}

func NewSampleGenerator(cities domain.CityTable, size int) *SampleGenerator {
	if size <= 0 {
		size = DefaultSampleSize
	}
	return &SampleGenerator{cities: cities, size: size, fake: faker.New()}
}

func (g *SampleGenerator) Name() string { return "sample" }

// Fetch nunca falha: a amostra é gerada localmente. Clientes, motoristas e
// lavanderias vêm de pools pequenos, para que as visões de retenção e
// desempenho tenham repetição e não fiquem todas com contagem 1.
func (g *SampleGenerator) Fetch(_ context.Context) ([]*domain.Appointment, error) {
	cities := g.cities.Cities()
	now := time.Now().UTC()
	yearAgo := now.AddDate(-1, 0, 0)

	customers := g.samplePool("cust", 20)
	drivers := g.samplePool("drv", 6)
	laundromats := g.samplePool("laundry", 5)

	appointments := make([]*domain.Appointment, 0, g.size)
	for i := 0; i < g.size; i++ {
		city := cities[g.fake.IntBetween(0, len(cities)-1)]

		customerType := "Residential"
		if g.fake.IntBetween(0, 9) < 3 {
			customerType = "Commercial"
		}

		pickupDate := g.fake.Time().TimeBetween(yearAgo, now)
		dropDate := pickupDate.AddDate(0, 0, g.fake.IntBetween(1, 4))

		appointments = append(appointments, &domain.Appointment{
			AppointmentID: g.sampleID("apt"),
			CustomerID:    g.pick(customers),
			CustomerType:  customerType,
			CityID:        city.ID,
			InvoiceTotal:  domain.FlexFloat(g.fake.Float64(2, 20, 150)),
			Pickup: &domain.ServiceLeg{
				ServiceDate: pickupDate.Format("2006-01-02"),
				Driver:      g.pick(drivers),
				Status:      domain.StatusCompleted,
				Distance:    domain.FlexFloat(g.fake.Float64(1, 2, 25)),
				BasePay:     domain.FlexFloat(g.fake.Float64(2, 5, 20)),
			},
			Drop: &domain.ServiceLeg{
				ServiceDate: dropDate.Format("2006-01-02"),
			},
			Dropoff: &domain.ServiceLeg{
				Driver:   g.pick(drivers),
				Status:   domain.StatusCompleted,
				Distance: domain.FlexFloat(g.fake.Float64(1, 2, 25)),
				BasePay:  domain.FlexFloat(g.fake.Float64(2, 5, 20)),
			},
			Cleaning: &domain.Cleaning{
				Cleaner: g.pick(laundromats),
				Rate:    domain.FlexFloat(g.fake.Float64(2, 10, 60)),
				OrderDetails: &domain.OrderDetails{
					WashFoldWeight: domain.FlexFloat(g.fake.Float64(1, 2, 35)),
				},
			},
		})
	}

	return appointments, nil
}

func (g *SampleGenerator) samplePool(prefix string, size int) []string {
	pool := make([]string, 0, size)
	for i := 0; i < size; i++ {
		pool = append(pool, g.sampleID(prefix))
	}
	return pool
}

func (g *SampleGenerator) pick(pool []string) string {
	return pool[g.fake.IntBetween(0, len(pool)-1)]
}

func (g *SampleGenerator) sampleID(prefix string) string {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.Warn("Erro ao gerar ID da amostra, usando fallback:", err)
		return prefix + "-" + g.fake.RandomStringWithLength(6)
	}
	return prefix + "-" + id
}
