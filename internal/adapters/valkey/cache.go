package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// opTimeout bounds every storage call; fiber.Storage methods carry no context.
const opTimeout = 2 * time.Second

// Storage implements fiber.Storage on Valkey (Redis-compatible). It backs
// the rate limiter so limits hold across API replicas.
type Storage struct {
	client valkey.Client
	prefix string
}

// New creates a new Valkey storage client. Keys are namespaced by prefix.
func New(addr, prefix string) (*Storage, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Storage{client: client, prefix: prefix}, nil
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

// Get retrieves a value by key. A missing key yields nil, nil.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	b, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set stores a value. A zero exp keeps the key until deleted.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var cmd valkey.Completed
	if exp > 0 {
		cmd = s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(val)).Px(exp).Build()
	} else {
		cmd = s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(val)).Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Delete removes a key.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error()
}

// Reset removes every key under the storage prefix.
func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cursor uint64
	for {
		entry, err := s.client.Do(ctx,
			s.client.B().Scan().Cursor(cursor).Match(s.prefix+"*").Count(100).Build(),
		).AsScanEntry()
		if err != nil {
			return err
		}
		if len(entry.Elements) > 0 {
			if err := s.client.Do(ctx, s.client.B().Del().Key(entry.Elements...).Build()).Error(); err != nil {
				return err
			}
		}
		if entry.Cursor == 0 {
			return nil
		}
		cursor = entry.Cursor
	}
}

// Ping checks that Valkey answers.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (s *Storage) Close() error {
	s.client.Close()
	return nil
}
