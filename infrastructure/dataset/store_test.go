package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onestop/laundry-dashboard-api/infrastructure/dataset"
	"github.com/onestop/laundry-dashboard-api/infrastructure/dataset/mocks"
	"github.com/onestop/laundry-dashboard-api/internal/config"
	"github.com/onestop/laundry-dashboard-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBackendFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("t"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"appointmentId":"a1","cityId":"LYGRRATQ7EGG2","invoiceTotal":"42.50"}]`))
	}))
	defer server.Close()

	fetcher := dataset.NewBackendFetcher(config.Dataset{
		BackendURL:            server.URL,
		RequestTimeoutSeconds: 5,
	})

	appointments, err := fetcher.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "a1", appointments[0].AppointmentID)
	// Receita como string numérica é aceita
	assert.InDelta(t, 42.50, float64(appointments[0].InvoiceTotal), 0.001)
}

func TestBackendFetcherErroHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := dataset.NewBackendFetcher(config.Dataset{
		BackendURL:            server.URL,
		RequestTimeoutSeconds: 5,
	})

	_, err := fetcher.Fetch(context.Background())
	assert.Error(t, err)
}

func TestBackendFetcherSemURL(t *testing.T) {
	fetcher := dataset.NewBackendFetcher(config.Dataset{})

	_, err := fetcher.Fetch(context.Background())
	assert.Error(t, err)
}

func TestStoreRefreshUsaPrimeiraOrigem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expected := []*domain.Appointment{{AppointmentID: "a1"}}

	primary := mocks.NewMockFetcher(ctrl)
	primary.EXPECT().Fetch(gomock.Any()).Return(expected, nil)
	primary.EXPECT().Name().Return("backend").AnyTimes()

	secondary := mocks.NewMockFetcher(ctrl)
	secondary.EXPECT().Name().Return("file").AnyTimes()

	store := dataset.NewStore(primary, secondary)

	source := store.Refresh(context.Background())

	assert.Equal(t, "backend", source)
	assert.Equal(t, expected, store.Appointments())
}

func TestStoreRefreshCaiParaProximaOrigem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expected := []*domain.Appointment{{AppointmentID: "a2"}}

	failing := mocks.NewMockFetcher(ctrl)
	failing.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("indisponível"))
	failing.EXPECT().Name().Return("backend").AnyTimes()

	empty := mocks.NewMockFetcher(ctrl)
	empty.EXPECT().Fetch(gomock.Any()).Return([]*domain.Appointment{}, nil)
	empty.EXPECT().Name().Return("file").AnyTimes()

	fallback := mocks.NewMockFetcher(ctrl)
	fallback.EXPECT().Fetch(gomock.Any()).Return(expected, nil)
	fallback.EXPECT().Name().Return("sample").AnyTimes()

	store := dataset.NewStore(failing, empty, fallback)

	source := store.Refresh(context.Background())

	assert.Equal(t, "sample", source)
	assert.Equal(t, expected, store.Appointments())

	usedSource, refreshedAt, count := store.Status()
	assert.Equal(t, "sample", usedSource)
	assert.False(t, refreshedAt.IsZero())
	assert.Equal(t, 1, count)
}

func TestStoreRefreshMantemSnapshotQuandoTudoFalha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expected := []*domain.Appointment{{AppointmentID: "a3"}}

	source := mocks.NewMockFetcher(ctrl)
	source.EXPECT().Fetch(gomock.Any()).Return(expected, nil)
	source.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("indisponível"))
	source.EXPECT().Name().Return("backend").AnyTimes()

	store := dataset.NewStore(source)

	store.Refresh(context.Background())
	store.Refresh(context.Background())

	// O snapshot anterior sobrevive à falha
	assert.Equal(t, expected, store.Appointments())
}

func TestSampleGenerator(t *testing.T) {
	generator := dataset.NewSampleGenerator(domain.DefaultCities(), 30)

	appointments, err := generator.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, appointments, 30)

	cities := domain.DefaultCities()
	for _, appointment := range appointments {
		assert.True(t, cities.Has(appointment.CityID))
		assert.NotEmpty(t, appointment.CustomerID)
		assert.NotEmpty(t, appointment.CustomerType)
		require.NotNil(t, appointment.Pickup)
		_, ok := appointment.PickupDate()
		assert.True(t, ok)
		require.NotNil(t, appointment.Cleaning)
		assert.NotEmpty(t, appointment.Cleaning.Cleaner)
		assert.Positive(t, appointment.ResolveRevenue())
	}
}
