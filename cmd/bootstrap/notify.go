package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"slot-booking/internal/infra/notify"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewSender,
		fx.Annotate(
			NewDispatcher,
			fx.As(new(shared.Notifier)),
		),
	),
)

func NewSender(cfg config.Config, logger *slog.Logger, clk clock.Clock) (notify.Sender, error) {
	switch cfg.Notify.Driver {
	case config.NotifyDriverLog, "":
		return notify.NewLogSender(logger), nil
	case config.NotifyDriverKafka:
		return notify.NewKafkaSender(cfg.Notify.KafkaBrokers, cfg.Notify.KafkaTopic, clk)
	case config.NotifyDriverLine:
		client := &http.Client{Timeout: cfg.Notify.Timeout}
		return notify.NewLineSender(client, cfg.Notify.LinePushEndpoint, cfg.Notify.LineChannelToken)
	default:
		return nil, errs.Newf("unknown notify driver %q", cfg.Notify.Driver)
	}
}

// NewDispatcher ties the delivery worker to the app lifecycle; Stop drains
// queued notifications before the sender is closed.
func NewDispatcher(lc fx.Lifecycle, cfg config.Config, sender notify.Sender) *notify.Dispatcher {
	d := notify.NewDispatcher(sender, cfg.Notify.QueueSize, cfg.Notify.Timeout)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}
