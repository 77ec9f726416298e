package bootstrap

import (
	"time"

	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) (*jwt.Service, error) {
	d, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, d, clk), nil
}
