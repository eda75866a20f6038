// Package redis records tool invocations in a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/tickertape/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.InvocationJournal with XADD on a capped stream.
// It is append-only; nothing in the server reads it back to answer a tool call.
type Journal struct {
	client *backend.Client
	stream string
	maxLen int64
}

var _ ports.InvocationJournal = (*Journal)(nil)

type Option func(*Journal)

// WithStream sets the stream key.
func WithStream(stream string) Option {
	return func(j *Journal) {
		if stream != "" {
			j.stream = stream
		}
	}
}

// WithMaxLen caps the stream length (approximately). Zero disables trimming.
func WithMaxLen(n int64) Option {
	return func(j *Journal) {
		j.maxLen = n
	}
}

// New creates a journal connected to a Redis server.
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
		stream: "tickertape:invocations",
		maxLen: 10000,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Ping checks connectivity.
func (j *Journal) Ping(ctx context.Context) error {
	return j.client.Ping(ctx).Err()
}

// Close releases the client.
func (j *Journal) Close() error {
	return j.client.Close()
}

// Record appends one entry to the stream.
func (j *Journal) Record(ctx context.Context, e ports.JournalEntry) error {
	args, err := json.Marshal(e.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	err = j.client.XAdd(ctx, &backend.XAddArgs{
		Stream: j.stream,
		MaxLen: j.maxLen,
		Approx: j.maxLen > 0,
		Values: map[string]any{
			"id":          e.ID,
			"tool":        e.Tool,
			"arguments":   string(args),
			"outcome":     e.Outcome,
			"message":     e.Message,
			"duration_ms": strconv.FormatInt(e.Duration.Milliseconds(), 10),
			"at":          e.At.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append to redis stream: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int64) ([]ports.JournalEntry, error) {
	msgs, err := j.client.XRevRangeN(ctx, j.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read redis stream: %w", err)
	}

	entries := make([]ports.JournalEntry, 0, len(msgs))
	for _, msg := range msgs {
		e := ports.JournalEntry{
			ID:      str(msg.Values["id"]),
			Tool:    str(msg.Values["tool"]),
			Outcome: str(msg.Values["outcome"]),
			Message: str(msg.Values["message"]),
		}
		if raw := str(msg.Values["arguments"]); raw != "" && raw != "null" {
			if err := json.Unmarshal([]byte(raw), &e.Arguments); err != nil {
				return nil, fmt.Errorf("entry %s: bad arguments: %w", msg.ID, err)
			}
		}
		if ms, err := strconv.ParseInt(str(msg.Values["duration_ms"]), 10, 64); err == nil {
			e.Duration = time.Duration(ms) * time.Millisecond
		}
		if at, err := time.Parse(time.RFC3339Nano, str(msg.Values["at"])); err == nil {
			e.At = at
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
