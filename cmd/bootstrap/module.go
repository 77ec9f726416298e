package bootstrap

import (
	"slot-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	StoreModule,
	IdentityModule,
	NotifyModule,
	components.UseCaseModule,
	components.HandlerModule,
)
