package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SecretStore returns the plaintext value stored under name.
type SecretStore interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SSMAPI is the subset of the SSM client used to read parameters.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStore reads SecureString parameters from SSM Parameter Store.
type ParameterStore struct {
	client SSMAPI
}

// NewParameterStore creates a ParameterStore.
func NewParameterStore(client SSMAPI) *ParameterStore {
	return &ParameterStore{client: client}
}

// NewParameterStoreFromConfig creates a ParameterStore backed by a new SSM client.
func NewParameterStoreFromConfig(cfg aws.Config) *ParameterStore {
	return NewParameterStore(ssm.NewFromConfig(cfg))
}

// GetSecret returns the decrypted parameter value.
func (p *ParameterStore) GetSecret(ctx context.Context, name string) (string, error) {
	output, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("reading parameter %s: %w", name, err)
	}
	if output.Parameter == nil {
		return "", nil
	}
	return aws.ToString(output.Parameter.Value), nil
}

// CachedSecretStore memoizes values from another store for a fixed TTL.
type CachedSecretStore struct {
	next  SecretStore
	cache *expirable.LRU[string, string]
}

// NewCachedSecretStore wraps next with a TTL cache.
func NewCachedSecretStore(next SecretStore, ttl time.Duration) *CachedSecretStore {
	return &CachedSecretStore{
		next:  next,
		cache: expirable.NewLRU[string, string](16, nil, ttl),
	}
}

// GetSecret returns a cached value or fetches and caches it. Errors are not cached.
func (c *CachedSecretStore) GetSecret(ctx context.Context, name string) (string, error) {
	if value, ok := c.cache.Get(name); ok {
		return value, nil
	}
	value, err := c.next.GetSecret(ctx, name)
	if err != nil {
		return "", err
	}
	c.cache.Add(name, value)
	return value, nil
}
