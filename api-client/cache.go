package apiclient

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Token metadata never changes for a deployed contract, so entries have no TTL.
type metadataCache struct {
	APIClienter
	cache *lru.Cache[string, TokenMetadata]
}

func WithMetadataCache(next APIClienter, size int) (APIClienter, error) {
	cache, err := lru.New[string, TokenMetadata](size)
	if err != nil {
		return nil, errors.Wrap(err, "failure creating metadata cache")
	}
	return &metadataCache{APIClienter: next, cache: cache}, nil
}

func (c *metadataCache) GetTokenMetadata(ctx context.Context, contract string) (*TokenMetadata, error) {
	key := strings.ToLower(contract)
	if md, ok := c.cache.Get(key); ok {
		return &md, nil
	}
	md, err := c.APIClienter.GetTokenMetadata(ctx, contract)
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, errors.Errorf("empty metadata for %s", contract)
	}
	c.cache.Add(key, *md)
	return md, nil
}
