package components

import (
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/ledger"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewSchedule,
		fx.Annotate(
			NewLedger,
			fx.As(new(commands.ReservationLedger)),
			fx.As(new(queries.ReservationLedger)),
		),
		commands.NewReservationCommands,
		commands.NewAuthCommands,
		queries.NewReservationQueries,
	),
)

func NewSchedule(cfg config.Config) slot.Schedule {
	return slot.NewSchedule(slot.BusinessHours{Open: cfg.Ledger.OpenHour, Close: cfg.Ledger.CloseHour})
}

func NewLedger(uow shared.UnitOfWork, reads shared.ReservationReadStore, clk clock.Clock, cfg config.Config) *ledger.Ledger {
	return ledger.New(uow, reads, clk, ledger.Options{
		CacheTTL:     cfg.Ledger.CacheTTL,
		StoreTimeout: cfg.Ledger.StoreTimeout,
	})
}
