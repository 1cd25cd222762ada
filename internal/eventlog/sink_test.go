package eventlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestFileSinkAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webhook_logs.txt")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Append(ctx, Event{Time: time.Now(), Kind: KindError, Data: "Corpo vazio"}))
	require.NoError(t, sink.Append(ctx, Event{Time: time.Now(), Kind: KindSent, Data: map[string]any{"http_code": 200}}))

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] ERRO: Corpo vazio"))
	assert.True(t, strings.HasSuffix(lines[1], `] WEBHOOK_ENVIADO: {"http_code":200}`))
}

func TestFileSinkConcurrentAppendsStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webhook_logs.txt")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	const writers = 20
	const perWriter = 25
	payload := strings.Repeat("x", 512)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				data := map[string]any{"writer": w, "seq": i, "pad": payload}
				assert.NoError(t, sink.Append(context.Background(), Event{Time: time.Now(), Kind: KindReceived, Data: data}))
			}
		}(w)
	}
	wg.Wait()

	lines := readLines(t, path)
	require.Len(t, lines, writers*perWriter)
	for _, line := range lines {
		assert.Contains(t, line, "] WEBHOOK_RECEIVED: {")
		assert.True(t, strings.HasSuffix(line, "}"), "truncated line: %s", line)
	}
}

func TestFileSinkRecoversWhenTargetBecomesWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	sink, err := NewFileSink(filepath.Join(dir, "webhook_logs.txt"))
	require.NoError(t, err)

	event := Event{Time: time.Now(), Kind: KindError, Data: "x"}
	assert.Error(t, sink.Append(context.Background(), event))

	require.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, sink.Append(context.Background(), event))
}

func TestNewFileSinkRequiresPath(t *testing.T) {
	_, err := NewFileSink("")
	assert.Error(t, err)
}

type failingSink struct{ err error }

func (f failingSink) Append(context.Context, Event) error { return f.err }

func TestMultiSinkWritesEverySink(t *testing.T) {
	first := NewMemorySink()
	second := NewMemorySink()
	boom := errors.New("disk full")

	sink := MultiSink{first, failingSink{err: boom}, second}
	err := sink.Append(context.Background(), Event{Time: time.Now(), Kind: KindFatal, Data: "x"})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
}

func TestMemorySinkByKind(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()
	for i, kind := range []Kind{KindReceived, KindSent, KindReceived} {
		require.NoError(t, sink.Append(ctx, Event{Kind: kind, Data: fmt.Sprint(i)}))
	}

	received := sink.ByKind(KindReceived)
	require.Len(t, received, 2)
	assert.Equal(t, "0", received[0].Data)
	assert.Equal(t, "2", received[1].Data)
}

func TestRedisSinkReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	sink := NewRedisSink(client, "webhook_logs")
	err := sink.Append(context.Background(), Event{Time: time.Now(), Kind: KindError, Data: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis rpush webhook_logs")
}
