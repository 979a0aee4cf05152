package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mayaserrano/framelight-backend/api/controllers"
	"github.com/mayaserrano/framelight-backend/api/middleware"
	"github.com/mayaserrano/framelight-backend/internal/giftcards"
	"github.com/mayaserrano/framelight-backend/internal/pinauth"
	"github.com/mayaserrano/framelight-backend/internal/sharelinks"
	"github.com/mayaserrano/framelight-backend/internal/shoots"
	"github.com/mayaserrano/framelight-backend/pkg/auth/session"
	"github.com/mayaserrano/framelight-backend/pkg/config"
	"github.com/mayaserrano/framelight-backend/pkg/db"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	sessionChecker session.Checker,
	pinAuthService pinauth.Service,
	shootService shoots.Service,
	shareLinkService sharelinks.Service,
	giftCardService giftcards.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	pinPolicy := middleware.NewAuthRateLimitPolicy(
		"pin",
		cfg.AuthRateLimit.PinWindow,
		cfg.AuthRateLimit.PinIPLimit,
	)

	var redisPinger redis.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/flags", controllers.PublicFlags(cfg))

		r.Route("/shoots/{shootId}", func(r chi.Router) {
			r.Get("/", controllers.PortalShoot(shootService, logg))
			r.Post("/accept-terms", controllers.PortalAcceptTerms(shootService, logg))
		})

		r.Route("/gift-cards", func(r chi.Router) {
			r.Post("/", controllers.GiftCardPurchase(giftCardService, cfg, logg))
			r.Get("/{code}", controllers.GiftCardLookup(giftCardService, cfg, logg))
		})
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(pinPolicy, redisClient, logg)).Post("/pin", controllers.AuthPinVerify(pinAuthService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Session, sessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(pinAuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, sessionChecker, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/shoots", func(r chi.Router) {
			r.Get("/", controllers.ShootList(shootService, logg))
			r.Post("/", controllers.ShootCreate(shootService, logg))

			r.Route("/{shootId}", func(r chi.Router) {
				r.Get("/", controllers.ShootDetail(shootService, logg))
				r.Put("/", controllers.ShootUpdate(shootService, logg))
				r.Patch("/status", controllers.ShootStatusUpdate(shootService, logg))

				r.Route("/share-links", func(r chi.Router) {
					r.Get("/", controllers.ShareLinkList(shareLinkService, logg))
					r.Post("/", controllers.ShareLinkCreate(shareLinkService, logg))
					r.Delete("/{linkId}", controllers.ShareLinkRevoke(shareLinkService, logg))
				})
			})
		})

		r.Route("/gift-cards", func(r chi.Router) {
			r.Post("/{code}/redeem", controllers.GiftCardRedeem(giftCardService, logg))
		})
	})

	return r
}
