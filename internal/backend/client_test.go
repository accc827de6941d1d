package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/juanbetancurm/frontBurger/internal/logging"
)

type stubTokens struct {
	token       string
	invalidated bool
}

func (s *stubTokens) Token() string { return s.token }
func (s *stubTokens) Invalidate()  { s.invalidated = true }

func newTestClient(t *testing.T, tokens *stubTokens, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second, tokens, logging.New("error"))
	require.NoError(t, err)
	return c
}

func TestDoJSONAttachesHeaders(t *testing.T) {
	var gotAuth, gotCID string
	tokens := &stubTokens{token: "tok-123"}
	c := newTestClient(t, tokens, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCID = r.Header.Get(HeaderCorrelationID)
		w.Write([]byte(`{}`))
	})

	var out map[string]any
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/cart", nil, nil, &out))
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotCID)
}

func TestDoJSONNoSessionNoAuthHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, &stubTokens{}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/", nil, nil, nil))
	require.Empty(t, gotAuth)
}

func TestDoJSONStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tc := range cases {
		tokens := &stubTokens{token: "tok"}
		c := newTestClient(t, tokens, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		require.Equal(t, tc.status == http.StatusUnauthorized, tokens.invalidated, "status %d", tc.status)
	}
}

func TestDoJSONMalformedBody(t *testing.T) {
	c := newTestClient(t, &stubTokens{}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	var out map[string]any
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	require.ErrorIs(t, err, ErrBadPayload)
}

func TestNewClientBadURL(t *testing.T) {
	_, err := NewClient("://bad", time.Second, &stubTokens{}, logging.New("error"))
	require.Error(t, err)
}
