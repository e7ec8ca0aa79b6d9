package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aretw0/rewind/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "rewind:"
	defaultMaxLen = 10000
	dataField     = "data"
)

// Journal implements ports.Journal on top of a Redis stream.
// Entries are stored as JSON under a single field; the stream is trimmed
// approximately to MaxLen on every append.
type Journal struct {
	client *backend.Client
	prefix string
	maxLen int64
}

type Option func(*Journal)

// WithPrefix sets the key prefix of the stream.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithMaxLen bounds the stream length. Zero disables trimming.
func WithMaxLen(n int64) Option {
	return func(j *Journal) {
		j.maxLen = n
	}
}

// New creates a journal with its own client.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: defaultPrefix,
		maxLen: defaultMaxLen,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Key is the name of the backing stream.
func (j *Journal) Key() string {
	return j.prefix + "journal"
}

// Append adds the entry to the stream.
func (j *Journal) Append(ctx context.Context, entry domain.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	args := &backend.XAddArgs{
		Stream: j.Key(),
		Values: map[string]any{dataField: data},
	}
	if j.maxLen > 0 {
		args.MaxLen = j.maxLen
		args.Approx = true
	}

	if err := j.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Recent reads the newest n entries and returns them oldest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.Entry, error) {
	var (
		msgs []backend.XMessage
		err  error
	)
	if n > 0 {
		msgs, err = j.client.XRevRangeN(ctx, j.Key(), "+", "-", int64(n)).Result()
	} else {
		msgs, err = j.client.XRevRange(ctx, j.Key(), "+", "-").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	entries := make([]domain.Entry, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values[dataField].(string)
		if !ok {
			return nil, fmt.Errorf("stream message %s has no %q field", msg.ID, dataField)
		}
		var entry domain.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry %s: %w", msg.ID, err)
		}
		entries = append(entries, entry)
	}
	slices.Reverse(entries)
	return entries, nil
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}
