package cache

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"companyfetch/pkg/client"
	"companyfetch/pkg/decode"
	"companyfetch/pkg/model"
)

// RawFetcher is the part of the executor the caching wrapper needs: the
// undecoded payload for one identifier.
type RawFetcher interface {
	FetchRaw(ctx context.Context, id model.ID) ([]byte, *client.FetchError)
}

// CachingExecutor wraps a raw fetcher with the payload cache. On a hit the
// cached payload is decoded without any network call; on a miss the inner
// fetcher runs and its payload is stored. Cache failures degrade to a
// direct fetch, they never fail the item.
type CachingExecutor struct {
	inner   RawFetcher
	manager *Manager
	bindKey string
	logger  zerolog.Logger
}

// NewCachingExecutor wraps inner with the payload cache.
func NewCachingExecutor(inner RawFetcher, manager *Manager, bindKey string) *CachingExecutor {
	return &CachingExecutor{
		inner:   inner,
		manager: manager,
		bindKey: bindKey,
		logger:  log.With().Str("component", "caching-executor").Logger(),
	}
}

// Execute implements client.Fetcher.
func (c *CachingExecutor) Execute(ctx context.Context, id model.ID) client.Outcome {
	key := Key{BindKey: c.bindKey, Identifier: id.String()}

	entry, err := c.manager.Get(ctx, key)
	if err != nil && err != ErrCacheMiss {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
	}
	if entry != nil {
		c.logger.Debug().Str("key", key.String()).Msg("Cache hit")
		return c.decodeOutcome(id, entry.Payload)
	}

	raw, fetchErr := c.inner.FetchRaw(ctx, id)
	if fetchErr != nil {
		return client.Outcome{ID: id, Err: fetchErr}
	}

	out := c.decodeOutcome(id, raw)
	// Only decodable payloads are worth keeping; a garbage body would just
	// replay the same decode failure until the entry expired.
	if out.Success() {
		if err := c.manager.Set(ctx, key, raw); err != nil {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache set error")
		}
	}
	return out
}

func (c *CachingExecutor) decodeOutcome(id model.ID, raw []byte) client.Outcome {
	record, err := decode.Decode(raw)
	if err != nil {
		return client.Failure(id, client.KindDecode, err.Error(), err)
	}
	return client.Outcome{ID: id, Record: record}
}
