package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkoutctrl "github.com/waiyanphyo/shopdesk-backend/api/controllers/checkout"
	"github.com/waiyanphyo/shopdesk-backend/api/controllers/health"
	notificationsctrl "github.com/waiyanphyo/shopdesk-backend/api/controllers/notifications"
	ordersctrl "github.com/waiyanphyo/shopdesk-backend/api/controllers/orders"
	"github.com/waiyanphyo/shopdesk-backend/api/middleware"
	"github.com/waiyanphyo/shopdesk-backend/internal/checkout"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/pkg/auth/session"
	"github.com/waiyanphyo/shopdesk-backend/pkg/config"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db"
	"github.com/waiyanphyo/shopdesk-backend/pkg/enums"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/metrics"
	"github.com/waiyanphyo/shopdesk-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            *db.Client
	Redis         *redis.Client
	Sessions      session.AccessSessionChecker
	Orders        orders.Service
	Checkout      checkout.Service
	Notifications notifications.Service
	Metrics       *metrics.HTTPMetrics
	Registry      *prometheus.Registry
}

type pinger interface {
	Ping(ctx context.Context) error
}

func dbPinger(c *db.Client) pinger {
	if c == nil {
		return nil
	}
	return c
}

func redisPinger(c *redis.Client) pinger {
	if c == nil {
		return nil
	}
	return c
}

// New assembles the service router.
func New(deps Deps) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORS())

	r.Get("/health", health.Check(dbPinger(deps.DB), redisPinger(deps.Redis), logg))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authMW := middleware.Auth(deps.Config.JWT, deps.Sessions, logg)

	r.Route("/orders", func(r chi.Router) {
		r.Use(authMW)

		r.Post("/", checkoutctrl.Create(deps.Checkout, logg))
		r.Get("/", ordersctrl.List(deps.Orders, logg))
		r.Get("/details/{orderId}", ordersctrl.Details(deps.Orders, logg))
		r.Get("/histories/{orderRef}", ordersctrl.Histories(deps.Orders, logg))
		r.Get("/{orderRef}", ordersctrl.Detail(deps.Orders, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireBackoffice(logg))

			r.Put("/accept/{orderId}", ordersctrl.Transition(deps.Orders, logg, enums.OrderStatusAccepted))
			r.Put("/delivery/{orderId}", ordersctrl.Transition(deps.Orders, logg, enums.OrderStatusDelivered))
			r.Put("/done/{orderId}", ordersctrl.Transition(deps.Orders, logg, enums.OrderStatusDone))
			r.Delete("/cancel/{orderId}", ordersctrl.Transition(deps.Orders, logg, enums.OrderStatusCanceled))
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authMW)

		r.Get("/unseen", notificationsctrl.Unseen(deps.Notifications, logg))
		r.Get("/seen", notificationsctrl.Seen(deps.Notifications, logg))
		r.Post("/seen-all", notificationsctrl.MarkAllSeen(deps.Notifications, logg))
		r.Post("/seen/{notificationId}", notificationsctrl.MarkSeen(deps.Notifications, logg))
		r.Get("/{notificationId}", notificationsctrl.Detail(deps.Notifications, logg))
	})

	return r
}
