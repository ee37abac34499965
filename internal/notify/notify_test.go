package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/aws-contactus-serverless-website/internal/contact/ports"
)

type fakeSES struct {
	in    *ses.SendEmailInput
	err   error
	calls int
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.calls++
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("0100018c-example")}, nil
}

var testMessage = ports.Message{
	From:    "noreply@example.com",
	To:      []string{"sales@example.com"},
	Subject: "Contact Us Form Received From: Jane Doe",
	Body:    "Name: Jane Doe\nPhone: 3145120000\nEmail: jane.doe@example.com\nDescription: Need a quote",
}

func TestSESSend(t *testing.T) {
	t.Run("builds a utf-8 text email", func(t *testing.T) {
		fake := &fakeSES{}
		err := NewSESWithClient(fake).Send(context.Background(), testMessage)
		require.NoError(t, err)

		require.NotNil(t, fake.in)
		assert.Equal(t, "noreply@example.com", aws.ToString(fake.in.Source))
		assert.Equal(t, &types.Destination{ToAddresses: []string{"sales@example.com"}}, fake.in.Destination)
		assert.Equal(t, testMessage.Subject, aws.ToString(fake.in.Message.Subject.Data))
		assert.Equal(t, "UTF-8", aws.ToString(fake.in.Message.Subject.Charset))
		assert.Equal(t, testMessage.Body, aws.ToString(fake.in.Message.Body.Text.Data))
		assert.Equal(t, "UTF-8", aws.ToString(fake.in.Message.Body.Text.Charset))
		assert.Nil(t, fake.in.Message.Body.Html)
	})

	t.Run("wraps provider errors and does not retry", func(t *testing.T) {
		providerErr := &types.MessageRejected{Message: aws.String("Email address is not verified.")}
		fake := &fakeSES{err: providerErr}

		err := NewSESWithClient(fake).Send(context.Background(), testMessage)
		require.Error(t, err)
		assert.ErrorIs(t, err, providerErr)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("rejects a message without recipients", func(t *testing.T) {
		fake := &fakeSES{}
		msg := testMessage
		msg.To = nil

		err := NewSESWithClient(fake).Send(context.Background(), msg)
		require.Error(t, err)
		assert.Zero(t, fake.calls)
	})
}

func TestLogSend(t *testing.T) {
	t.Run("writes the message", func(t *testing.T) {
		var buf bytes.Buffer
		n := NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, n.Send(context.Background(), testMessage))
		assert.Contains(t, buf.String(), "Contact Us Form Received From: Jane Doe")
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewLog(slog.New(slog.DiscardHandler)).Send(ctx, testMessage)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
