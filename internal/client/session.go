package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/console-client/internal/auth"
	"github.com/fivetwenty-io/console-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// SessionClient implements console.SessionClient. A successful login stores
// the auth-key response header, which the console dispatcher then sends with
// every request.
type SessionClient struct {
	httpClient *internalhttp.Client
	session    *auth.SessionProvider
}

// NewSessionClient creates a new session client.
func NewSessionClient(httpClient *internalhttp.Client, session *auth.SessionProvider) *SessionClient {
	return &SessionClient{
		httpClient: httpClient,
		session:    session,
	}
}

// Login implements console.SessionClient.Login.
func (c *SessionClient) Login(ctx context.Context, login, password string) (*console.Developer, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:   http.MethodPost,
		Path:     constants.APIPathLogin,
		Body:     console.JSON(&console.LoginRequest{Login: login, Password: password}),
		SkipAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	authKey := resp.Headers.Get(constants.AuthKeyHeader)
	if authKey == "" {
		return nil, fmt.Errorf("logging in: %w: missing %s header", console.ErrUnexpectedResponse, constants.AuthKeyHeader)
	}

	var developer console.Developer

	err = internalhttp.DecodeJSON(resp, &developer)
	if err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}

	developer.AuthKey = authKey

	err = c.session.SetAuthKey(authKey)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return &developer, nil
}

// Logout implements console.SessionClient.Logout. The local session is
// dropped even when the server call fails.
func (c *SessionClient) Logout(ctx context.Context) error {
	if !c.LoggedIn() {
		return console.ErrNotLoggedIn
	}

	_, callErr := c.httpClient.Get(ctx, constants.APIPathLogout, nil)

	err := c.session.Clear()
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	if callErr != nil {
		return fmt.Errorf("logging out: %w", callErr)
	}

	return nil
}

// LoggedIn implements console.SessionClient.LoggedIn.
func (c *SessionClient) LoggedIn() bool {
	return c.session.AuthKey() != ""
}
