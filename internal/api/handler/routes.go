package handler

import (
	"net/http"

	"github.com/onestop/laundry-dashboard-api/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Stats(services DashboardServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stats/cities",
			Method:  http.MethodGet,
			Handler: GetCityStats(services),
		},
		{
			Path:    "/v1/stats/laundromats",
			Method:  http.MethodGet,
			Handler: GetLaundromatStats(services),
		},
		{
			Path:    "/v1/stats/customer-types",
			Method:  http.MethodGet,
			Handler: GetCustomerTypes(services),
		},
		{
			Path:    "/v1/stats/drivers",
			Method:  http.MethodGet,
			Handler: GetDriverStats(services),
		},
		{
			Path:    "/v1/stats/weights",
			Method:  http.MethodGet,
			Handler: GetWeightDistribution(services),
		},
	}
}

func Trends(services DashboardServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/trends/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthlyTrend(services),
		},
		{
			Path:    "/v1/trends/avg-order-value",
			Method:  http.MethodGet,
			Handler: GetAvgOrderValueTrend(services),
		},
		{
			Path:    "/v1/trends/seasonal",
			Method:  http.MethodGet,
			Handler: GetSeasonalTrends(services),
		},
	}
}

func Metrics(services DashboardServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/retention",
			Method:  http.MethodGet,
			Handler: GetRetentionMetrics(services),
		},
		{
			Path:    "/v1/flows/customer-laundromat",
			Method:  http.MethodGet,
			Handler: GetCustomerLaundromatFlow(services),
		},
	}
}

func Projections(services DashboardServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/projections",
			Method:  http.MethodGet,
			Handler: GetProjections(services),
		},
	}
}

func Reports(services DashboardServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/aggregated",
			Method:  http.MethodGet,
			Handler: GetAggregatedReport(services),
		},
		{
			Path:    "/v1/reports/revenue",
			Method:  http.MethodGet,
			Handler: GetRevenueReport(services),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
