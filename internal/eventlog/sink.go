package eventlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Sink appends events to a shared log target. Implementations must make each
// event land as one complete line when called from concurrent requests.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// FileSink appends lines to a text file. The file is opened in append mode on
// every write, so a target that was unwritable recovers on the next event.
type FileSink struct {
	path string
	mu   sync.Mutex
}

func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Append(_ context.Context, event Event) error {
	line, err := event.Line()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	return file.Close()
}

// MemorySink keeps events in memory. Used by tests and local runs.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByKind returns the recorded events of one kind, in append order.
func (s *MemorySink) ByKind(kind Kind) []Event {
	var out []Event
	for _, event := range s.Events() {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}

// RedisSink mirrors log lines into a Redis list. RPUSH is atomic per line.
type RedisSink struct {
	client *redis.Client
	key    string
}

func NewRedisSink(client *redis.Client, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Append(ctx context.Context, event Event) error {
	line, err := event.Line()
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.key, line).Err(); err != nil {
		return fmt.Errorf("redis rpush %s: %w", s.key, err)
	}
	return nil
}

// MultiSink writes every event to all of its sinks, even when one fails.
type MultiSink []Sink

func (m MultiSink) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
