package bootstrap

import (
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		clock.NewRealClock,
	),
)
