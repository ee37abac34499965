package ports

import "context"

//go:generate mockgen -source=notifier.go -destination=../mocks/notifier-mocks.go -package=mocks Notifier

// Message is a plain-text notification.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Notifier hands a message to an outbound transport.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
