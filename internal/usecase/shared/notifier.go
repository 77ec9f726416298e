package shared

import "context"

//go:generate mockgen -source=notifier.go -destination=../../../tests/mock/shared/notifier_mock.go -package=sharedmock

type Notification struct {
	Recipient string
	Text      string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
