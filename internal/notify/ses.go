// Package notify delivers contact notifications.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/ports"
)

const charset = "UTF-8"

// SendEmailAPI is the slice of the SES client used here.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SES sends notifications as plain-text email.
type SES struct {
	client SendEmailAPI
}

func NewSES(cfg aws.Config) *SES {
	return &SES{client: ses.NewFromConfig(cfg)}
}

func NewSESWithClient(client SendEmailAPI) *SES {
	return &SES{client: client}
}

// Send issues a single SendEmail call. It does not retry.
func (s *SES) Send(ctx context.Context, msg ports.Message) error {
	if msg.From == "" || len(msg.To) == 0 {
		return errors.New("message needs a sender and at least one recipient")
	}

	ctx, span := otel.Tracer("contactus/notify").Start(ctx, "ses.SendEmail")
	defer span.End()
	span.SetAttributes(attribute.Int("email.recipients", len(msg.To)))

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(msg.From),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charset)},
			},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send email failed")
		return fmt.Errorf("ses send email: %w", err)
	}
	span.SetAttributes(attribute.String("ses.message_id", aws.ToString(out.MessageId)))
	return nil
}
