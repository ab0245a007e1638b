package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "probmodels:experiment:"

// Store implements ports.ExperimentRepository using Redis.
// Experiments are stored as JSON definitions; an index sorted set tracks names.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored experiments.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// indexKey sits beside the experiment keyspace: with the default prefix it is
// "probmodels:experiments:index", which no s.key(name) can produce.
func (s *Store) indexKey() string {
	return strings.TrimSuffix(s.prefix, ":") + "s:index"
}

// reserved reports whether name would map onto the index key. Only prefixes
// without a trailing ':' can collide.
func (s *Store) reserved(name string) bool {
	return s.key(name) == s.indexKey()
}

// Save writes the experiment definition to Redis.
func (s *Store) Save(ctx context.Context, name string, exp *domain.Experiment) error {
	if exp == nil {
		return fmt.Errorf("%w: experiment %q is nil", domain.ErrInvalidInput, name)
	}
	data, err := json.Marshal(dto.FromExperiment(name, "", exp))
	if err != nil {
		return fmt.Errorf("failed to marshal experiment: %w", err)
	}
	return s.SaveDefinition(ctx, name, data)
}

// SaveDefinition stores an already serialized definition.
func (s *Store) SaveDefinition(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("%w: experiment missing name", domain.ErrInvalidInput)
	}
	if s.reserved(name) {
		return fmt.Errorf("%w: name %q is reserved for the index", domain.ErrInvalidInput, name)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// 2. Add to Index (ZSET). Score = expiry time, far future without TTL.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Definition loads the stored definition without building it.
func (s *Store) Definition(ctx context.Context, name string) (dto.Definition, error) {
	if s.reserved(name) {
		return dto.Definition{}, fmt.Errorf("%w: %s", domain.ErrExperimentNotFound, name)
	}
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return dto.Definition{}, fmt.Errorf("%w: %s", domain.ErrExperimentNotFound, name)
		}
		return dto.Definition{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	def, err := dto.ParseJSON(val)
	if err != nil {
		return dto.Definition{}, fmt.Errorf("experiment %q: %w", name, err)
	}
	return def, nil
}

// Describe implements ports.Describer.
func (s *Store) Describe(ctx context.Context, name string) (string, error) {
	def, err := s.Definition(ctx, name)
	if err != nil {
		return "", err
	}
	return def.Description, nil
}

// Get loads and validates the experiment.
func (s *Store) Get(ctx context.Context, name string) (*domain.Experiment, error) {
	def, err := s.Definition(ctx, name)
	if err != nil {
		return nil, err
	}
	exp, err := def.Experiment()
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", name, err)
	}
	return exp, nil
}

// Delete removes the experiment.
func (s *Store) Delete(ctx context.Context, name string) error {
	if s.reserved(name) {
		return nil
	}
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored names in sorted order, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired experiments: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
