package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

type BookInput struct {
	OwnerID       string
	LineUserID    string
	StartDateTime string
	DurationHours int
}

type BookResult struct {
	Slots []slot.ID
}

type ReservationCommands interface {
	Book(ctx context.Context, in BookInput) (*BookResult, error)
}

// ReservationLedger is the write half of the ledger.
type ReservationLedger interface {
	Reserve(ctx context.Context, ownerID string, slots []slot.ID, durationHours int) error
}

type reservationCommandsImpl struct {
	schedule slot.Schedule
	ledger   ReservationLedger
	notifier shared.Notifier
}

func NewReservationCommands(schedule slot.Schedule, ledger ReservationLedger, notifier shared.Notifier) ReservationCommands {
	return &reservationCommandsImpl{
		schedule: schedule,
		ledger:   ledger,
		notifier: notifier,
	}
}

func (r *reservationCommandsImpl) Book(ctx context.Context, in BookInput) (*BookResult, error) {
	if in.OwnerID == "" {
		return nil, errs.Mark(errs.New("ownerId is required"), errs.ErrSlotFormat)
	}

	slots, err := r.schedule.Derive(in.StartDateTime, in.DurationHours)
	if err != nil {
		return nil, err
	}

	if err := r.ledger.Reserve(ctx, in.OwnerID, slots, in.DurationHours); err != nil {
		return nil, err
	}

	if in.LineUserID != "" {
		n := shared.Notification{Recipient: in.LineUserID, Text: confirmationText(slots)}
		if err := r.notifier.Notify(ctx, n); err != nil {
			slog.Warn("reservation notification failed",
				"owner", in.OwnerID,
				"recipient", in.LineUserID,
				"error", errs.Mark(err, errs.ErrNotifyFailed).Error())
		}
	}

	return &BookResult{Slots: slots}, nil
}

// confirmationText renders "Reservation confirmed: 2025-08-04 09:00-11:00".
func confirmationText(slots []slot.ID) string {
	start, err := slots[0].Start(time.UTC)
	if err != nil {
		return fmt.Sprintf("Reservation confirmed: %s", slots[0])
	}
	end := start.Add(time.Duration(len(slots)) * time.Hour)
	return fmt.Sprintf("Reservation confirmed: %s-%s", start.Format("2006-01-02 15:04"), end.Format("15:04"))
}
