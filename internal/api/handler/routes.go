package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard/internal/presenter"
	"github.com/vfg2006/sales-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard/internal/usecases/notifying"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

type Middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Pages são as telas HTML, comprimidas quando o navegador aceita
func Pages(reporter reporting.Reporter, p *presenter.Presenter, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/",
			Method:      http.MethodGet,
			Handler:     Dashboard(reporter, p, location),
			Middlewares: Middlewares{middleware.Compression()},
		},
		{
			Path:        "/charts",
			Method:      http.MethodGet,
			Handler:     Charts(reporter, p, location),
			Middlewares: Middlewares{middleware.Compression()},
		},
	}
}

func Metrics(reporter reporting.Reporter, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics",
			Method:  http.MethodGet,
			Handler: GetMetrics(reporter, location),
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     GetSales(reporter, location),
			Middlewares: Middlewares{middleware.Compression()},
		},
	}
}

func Authentication(service authenticating.Authenticator, limiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: Middlewares{limiter.Middleware()},
		},
	}
}

func ReportEmail(notifier notifying.Notifier, authenticator authenticating.Authenticator, limiter *middleware.RateLimiter, location *time.Location) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/email",
			Method:  http.MethodPost,
			Handler: SendReportEmail(notifier, location),
			Middlewares: Middlewares{
				limiter.Middleware(),
				middleware.AuthMiddleware(authenticator),
			},
		},
		{
			Path:        "/v1/reports/email/preview",
			Method:      http.MethodGet,
			Handler:     PreviewReportEmail(notifier, location),
			Middlewares: Middlewares{middleware.AuthMiddleware(authenticator)},
		},
	}
}

func CronJobs(services CronJobServices, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/" + CronJobTypeEmailDigest + "/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services, CronJobTypeEmailDigest),
			Middlewares: Middlewares{middleware.AuthMiddleware(authenticator)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: Middlewares{middleware.AuthMiddleware(authenticator)},
		},
	}
}
