package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used to read secrets.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerStore reads secret strings from AWS Secrets Manager
type SecretsManagerStore struct {
	Client SecretsManagerAPI
	Region string
}

// NewSecretsManagerStore creates a SecretsManagerStore for a given region
func NewSecretsManagerStore(cfg aws.Config) *SecretsManagerStore {
	return &SecretsManagerStore{
		Client: secretsmanager.NewFromConfig(cfg),
		Region: cfg.Region,
	}
}

// GetSecret returns the current SecretString of the secret identified by name or ARN.
func (s *SecretsManagerStore) GetSecret(ctx context.Context, name string) (string, error) {
	output, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("error reading secret %s in region %s: %w", name, s.Region, err)
	}
	return aws.ToString(output.SecretString), nil
}
