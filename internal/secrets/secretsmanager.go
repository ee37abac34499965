package secrets

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// GetSecretValueAPI is the slice of the Secrets Manager client used here.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManager reads string secrets from AWS Secrets Manager.
type SecretsManager struct {
	client GetSecretValueAPI
}

// NewSecretsManager builds a lookup from an AWS config.
func NewSecretsManager(cfg aws.Config) *SecretsManager {
	return &SecretsManager{client: secretsmanager.NewFromConfig(cfg)}
}

// NewSecretsManagerWithClient wraps an existing client.
func NewSecretsManagerWithClient(client GetSecretValueAPI) *SecretsManager {
	return &SecretsManager{client: client}
}

// Fetch returns the current SecretString for id. Binary-only and empty
// secrets are reported as unavailable.
func (s *SecretsManager) Fetch(ctx context.Context, id string) (string, error) {
	ctx, span := otel.Tracer("contactus/secrets").Start(ctx, "secretsmanager.GetSecretValue")
	defer span.End()
	span.SetAttributes(attribute.String("aws.secretsmanager.secret_id", id))

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get secret value failed")
		return "", unavailable(id, err)
	}

	value := aws.ToString(out.SecretString)
	if value == "" {
		span.SetStatus(codes.Error, "empty secret string")
		return "", unavailable(id, errors.New("secret has no string value"))
	}
	return value, nil
}
