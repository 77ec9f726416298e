package components

import (
	"context"
	"time"

	"slot-booking/internal/handler"
	"slot-booking/internal/handler/api"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

const rateLimitJanitorInterval = time.Minute

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		NewMiddlewares,
	),
	fx.Invoke(middleware.RegisterValidators),
	fx.Invoke(handler.NewRouter),
)

func NewMiddlewares(lc fx.Lifecycle, cfg config.Config, logger *middleware.Logger, jwtService *jwt.Service) handler.Middlewares {
	limiter := middleware.NewRateLimiter(cfg.RateLimit)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			limiter.StartJanitor(janitorCtx, rateLimitJanitorInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			stopJanitor()
			return nil
		},
	})

	return handler.Middlewares{
		CORS:        middleware.NewCORSMiddleware(cfg.CORS),
		Logger:      logger,
		Session:     middleware.NewSessionMiddleware(jwtService),
		RateLimiter: limiter,
	}
}
