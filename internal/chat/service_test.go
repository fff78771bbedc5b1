package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls    int
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type mapCache struct {
	entries map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func TestAsk_MemoizesPerPrompt(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "take paracetamol"}
	svc := NewService(completer, newMapCache())
	ctx := context.Background()

	first, err := svc.Ask(ctx, "what helps a fever?")
	require.NoError(t, err)
	second, err := svc.Ask(ctx, "what helps a fever?")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, completer.calls, "repeat prompt must be served from cache")

	_, err = svc.Ask(ctx, "a different question")
	require.NoError(t, err)
	assert.Equal(t, 2, completer.calls)
}

func TestAsk_StripsMarkdownAsterisks(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "**Rest** and *fluids*"}
	svc := NewService(completer, newMapCache())

	got, err := svc.Ask(context.Background(), "advice")
	require.NoError(t, err)
	assert.Equal(t, "Rest and fluids", got)
}

func TestAsk_UpstreamError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: errors.New("boom")}
	cache := newMapCache()
	svc := NewService(completer, cache)

	_, err := svc.Ask(context.Background(), "advice")
	require.Error(t, err)
	assert.Empty(t, cache.entries, "failures must not be cached")
}
