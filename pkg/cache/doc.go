// Package cache provides an optional Redis-backed cache for raw profile
// payloads, keyed by bind key and identifier.
//
// The request executor itself never caches; its contract is exactly one
// network call per invocation. Callers that want caching wrap the executor
// in a CachingExecutor, which consults Redis before delegating and stores
// successful payloads with a fixed TTL afterwards.
package cache
