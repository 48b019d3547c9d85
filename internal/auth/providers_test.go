package auth_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/internal/auth"
)

var errTestPersist = errors.New("disk full")

type recordingPersister struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPersister) SaveAuthKey(authKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, authKey)

	return p.err
}

func TestSessionProvider_Apply(t *testing.T) {
	t.Parallel()

	t.Run("no key sends no header", func(t *testing.T) {
		t.Parallel()

		provider := auth.NewSessionProvider("", nil)
		header := make(http.Header)

		require.NoError(t, provider.Apply(context.Background(), header))
		assert.Empty(t, header.Get("auth-key"))
	})

	t.Run("seeded key is sent", func(t *testing.T) {
		t.Parallel()

		provider := auth.NewSessionProvider("key-1", nil)
		header := make(http.Header)

		require.NoError(t, provider.Apply(context.Background(), header))
		assert.Equal(t, "key-1", header.Get("auth-key"))
	})

	t.Run("cleared key stops the header", func(t *testing.T) {
		t.Parallel()

		provider := auth.NewSessionProvider("key-1", nil)
		require.NoError(t, provider.Clear())

		header := make(http.Header)
		require.NoError(t, provider.Apply(context.Background(), header))
		assert.Empty(t, header.Values("auth-key"))
	})
}

func TestSessionProvider_SetAuthKey(t *testing.T) {
	t.Parallel()

	t.Run("persists new keys", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{}
		provider := auth.NewSessionProvider("", persister)

		require.NoError(t, provider.SetAuthKey("key-2"))
		require.NoError(t, provider.Clear())

		assert.Equal(t, "", provider.AuthKey())
		assert.Equal(t, []string{"key-2", ""}, persister.keys)
	})

	t.Run("persist failure keeps the key in memory", func(t *testing.T) {
		t.Parallel()

		provider := auth.NewSessionProvider("", &recordingPersister{err: errTestPersist})

		err := provider.SetAuthKey("key-3")
		require.ErrorIs(t, err, errTestPersist)
		assert.Equal(t, "key-3", provider.AuthKey())
	})
}

func TestBasicProvider_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider *auth.BasicProvider
		expected string
	}{
		{
			name:     "static token",
			provider: auth.NewBasicProvider("dG9rZW4="),
			expected: "Basic dG9rZW4=",
		},
		{
			name:     "empty token",
			provider: auth.NewBasicProvider(""),
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header := make(http.Header)
			require.NoError(t, tt.provider.Apply(context.Background(), header))
			assert.Equal(t, tt.expected, header.Get("Authorization"))
		})
	}
}
