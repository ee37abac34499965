package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretARN = "arn:aws:secretsmanager:us-east-2:1112223334:secret:x-origin-verify"

type fakeSecretsManager struct {
	out    *secretsmanager.GetSecretValueOutput
	err    error
	calls  int
	lastID string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	f.lastID = aws.ToString(in.SecretId)
	return f.out, f.err
}

func TestSecretsManagerFetch(t *testing.T) {
	t.Run("returns the secret string", func(t *testing.T) {
		fake := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("validsecretvalue")}}
		lookup := NewSecretsManagerWithClient(fake)

		value, err := lookup.Fetch(context.Background(), testSecretARN)
		require.NoError(t, err)
		assert.Equal(t, "validsecretvalue", value)
		assert.Equal(t, testSecretARN, fake.lastID)
	})

	t.Run("every call goes to the store", func(t *testing.T) {
		fake := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("v")}}
		lookup := NewSecretsManagerWithClient(fake)

		for range 3 {
			_, err := lookup.Fetch(context.Background(), testSecretARN)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, fake.calls)
	})

	failures := map[string]*fakeSecretsManager{
		"not found":     {err: &types.ResourceNotFoundException{Message: aws.String("no such secret")}},
		"transport":     {err: errors.New("dial tcp: i/o timeout")},
		"binary only":   {out: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte{0x01}}},
		"empty string":  {out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("")}},
		"access denied": {err: errors.New("AccessDeniedException: not authorized")},
	}
	for name, fake := range failures {
		t.Run(name+" is unavailable", func(t *testing.T) {
			_, err := NewSecretsManagerWithClient(fake).Fetch(context.Background(), testSecretARN)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSecretUnavailable)
		})
	}
}

func TestStaticFetch(t *testing.T) {
	value, err := NewStatic("local-secret").Fetch(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "local-secret", value)

	_, err = NewStatic("").Fetch(context.Background(), "ignored")
	assert.ErrorIs(t, err, ErrSecretUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewStatic("local-secret").Fetch(ctx, "ignored")
	assert.ErrorIs(t, err, ErrSecretUnavailable)
}
