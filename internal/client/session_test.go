package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

//nolint:funlen
func TestSessionClient(t *testing.T) {
	t.Parallel()

	persister := &memoryPersister{}

	client, rec := newTestClient(t, func(w http.ResponseWriter, req recordedRequest) {
		switch req.Path {
		case "/console/home/login":
			w.Header().Set("auth-key", "fresh-key")
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "D1", "email": "dev@example.com"})
		case "/console/home/logout":
			w.WriteHeader(http.StatusOK)
		default:
			writeJSON(w, http.StatusOK, []console.App{})
		}
	}, func(config *console.Config) {
		config.AuthKey = "stale-key"
		config.SessionPersister = persister
	})

	ctx := context.Background()

	developer, err := client.Session().Login(ctx, "dev@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "D1", developer.ID)
	assert.Equal(t, "fresh-key", developer.AuthKey)
	assert.True(t, client.Session().LoggedIn())

	_, err = client.Apps().List(ctx)
	require.NoError(t, err)

	require.NoError(t, client.Session().Logout(ctx))
	assert.False(t, client.Session().LoggedIn())

	_, err = client.Apps().List(ctx)
	require.NoError(t, err)

	requests := rec.all()
	require.Len(t, requests, 4)

	assert.Empty(t, requests[0].AuthKey, "login is sent without a session")
	assert.JSONEq(t, `{"login":"dev@example.com","password":"secret"}`, requests[0].Body)
	assert.Equal(t, "fresh-key", requests[1].AuthKey)
	assert.Equal(t, "fresh-key", requests[2].AuthKey)
	assert.Empty(t, requests[3].AuthKey)

	assert.Equal(t, []string{"fresh-key", ""}, persister.keys)

	require.ErrorIs(t, client.Session().Logout(ctx), console.ErrNotLoggedIn)
}

func TestSessionClient_LoginFailures(t *testing.T) {
	t.Parallel()

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, req recordedRequest) {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"message": "Invalid login or password", "code": 3003})
		})

		_, err := client.Session().Login(context.Background(), "dev", "wrong")
		require.Error(t, err)
		assert.True(t, console.IsUnauthorized(err))
		assert.False(t, client.Session().LoggedIn())
	})

	t.Run("missing auth-key header", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, req recordedRequest) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "D1"})
		})

		_, err := client.Session().Login(context.Background(), "dev", "secret")
		require.ErrorIs(t, err, console.ErrUnexpectedResponse)
		assert.False(t, client.Session().LoggedIn())
	})

	t.Run("persister failure", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, req recordedRequest) {
			w.Header().Set("auth-key", "k")
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": "D1"})
		}, func(config *console.Config) {
			config.SessionPersister = &memoryPersister{err: ErrTestPersist}
		})

		_, err := client.Session().Login(context.Background(), "dev", "secret")
		require.ErrorIs(t, err, ErrTestPersist)
	})
}
