package notify

import (
	"context"
	"log/slog"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/ports"
	"github.com/aws-samples/aws-contactus-serverless-website/pkg/requestcontext"
)

// Log writes notifications to a logger instead of sending them. Used for
// local runs without SES access.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "contact notification",
		"request_id", requestcontext.RequestID(ctx),
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
