package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"
)

const (
	keyPrefix     = "gamevault:"
	memoryMaxSize = 256
)

type backend int

const (
	backendMemory backend = iota
	backendValkey
)

// Store caches JSON-encoded read results in Valkey, or in process memory when
// no Valkey URL is configured.
type Store struct {
	backend backend
	client  valkey.Client
	memory  *TTLCache[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
	// generation is bumped by every Delete; Load skips writing results
	// computed before an invalidation.
	generation atomic.Uint64
}

// NewStore connects to url. An empty url selects the in-memory backend.
func NewStore(url string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if url == "" {
		logger.Info("cache_backend_selected", "backend", "memory", "ttl", ttl)
		return NewMemoryStore(ttl), nil
	}

	opt, err := valkey.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	opt.DisableCache = true
	opt.ForceSingleClient = true

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}
	logger.Info("cache_backend_selected", "backend", "valkey", "ttl", ttl)
	return &Store{backend: backendValkey, client: client, ttl: ttl, logger: logger}, nil
}

func NewMemoryStore(ttl time.Duration) *Store {
	return &Store{
		backend: backendMemory,
		memory:  NewTTLCache[[]byte](memoryMaxSize, ttl),
		ttl:     ttl,
		logger:  slog.Default(),
	}
}

func (s *Store) Backend() string {
	if s.backend == backendValkey {
		return "valkey"
	}
	return "memory"
}

// Get decodes the cached value for key into dst and reports whether it was found.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	switch s.backend {
	case backendValkey:
		b, err := s.client.Do(ctx, s.client.B().Get().Key(keyPrefix+key).Build()).AsBytes()
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("cache get %s: %w", key, err)
		}
		raw = b
	default:
		b, ok := s.memory.Get(key)
		if !ok {
			return false, nil
		}
		raw = b
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	switch s.backend {
	case backendValkey:
		cmd := s.client.B().Set().Key(keyPrefix + key).Value(string(raw)).Ex(s.ttl).Build()
		if err := s.client.Do(ctx, cmd).Error(); err != nil {
			return fmt.Errorf("cache set %s: %w", key, err)
		}
	default:
		s.memory.Set(key, raw)
	}
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	s.generation.Add(1)
	switch s.backend {
	case backendValkey:
		full := make([]string, len(keys))
		for i, k := range keys {
			full[i] = keyPrefix + k
		}
		if err := s.client.Do(ctx, s.client.B().Del().Key(full...).Build()).Error(); err != nil {
			return fmt.Errorf("cache delete: %w", err)
		}
	default:
		s.memory.Delete(keys...)
	}
	return nil
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.backend != backendValkey {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("cache ping: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s == nil || s.backend != backendValkey || s.client == nil {
		return
	}
	s.client.Close()
}

// Load returns the cached value for key, calling load and caching its result
// on a miss. A result is not cached when a Delete ran while it was loading.
// Cache failures are logged and fall through to load.
func Load[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	var gen uint64
	if s != nil {
		gen = s.generation.Load()
		found, err := s.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("cache_read_failed", "key", key, "err", err)
		} else if found {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if s != nil {
		if s.generation.Load() != gen {
			return value, nil
		}
		if err := s.Set(ctx, key, value); err != nil {
			s.logger.Warn("cache_write_failed", "key", key, "err", err)
			return value, nil
		}
		// an invalidation that raced the write wins
		if s.generation.Load() != gen {
			if err := s.Delete(ctx, key); err != nil {
				s.logger.Warn("cache_invalidate_failed", "key", key, "err", err)
			}
		}
	}
	return value, nil
}
