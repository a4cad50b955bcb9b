package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailico/mailico/modules/dispatch"
)

// tokenVerifier resolves a fixed token table; anything else is rejected.
type tokenVerifier map[string]uuid.UUID

func (v tokenVerifier) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return uuid.Nil, errors.New("unknown token")
}

type routerFixture struct {
	*fixture
	handler http.Handler
	token   string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := newFixture(t)
	verifier := tokenVerifier{"session-token": f.accountID}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &routerFixture{
		fixture: f,
		handler: dispatch.Router(f.svc, verifier, log),
		token:   "session-token",
	}
}

func (rf *routerFixture) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if authed {
		req.Header.Set("Authorization", "Bearer "+rf.token)
	}
	w := httptest.NewRecorder()
	rf.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const validBody = `{"from":"alice@gatekeepr.live","fromName":"Alice","email":"someone@gmail.com","subject":"hello","message":"hi"}`

func TestSendEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "delivery-123", data["id"])
		assert.Equal(t, "sent", data["direction"])
	})

	t.Run("no auth header", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodPost, "/send", validBody, false)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
		assert.Zero(t, rf.sender.calls)
	})

	t.Run("bad token", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.token = "forged"
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, rf.sender.calls)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodPost, "/send", `{"from":"alice@gatekeepr.live"}`, true)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "Missing required fields")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodPost, "/send", `{"from":`, true)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodPost, "/send", `{"from":"a@x.com","email":"b@y.com","message":"hi","admin":true}`, true)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no credential configured", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.accounts.accounts[rf.accountID].ProviderAPIKey = ""
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "credential")
	})

	t.Run("quota exceeded", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.ledger.Set(rf.accountID, rf.periodKey, 3000)
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusForbidden, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Quota exceeded", body["error"])
		reason := body["reason"].(string)
		assert.Contains(t, reason, "free")
		assert.Contains(t, reason, "3,000")
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.sender.err = errors.New("invalid api key")
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "invalid api key")
	})

	t.Run("degraded bookkeeping still returns success", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.recorder.outErr = errors.New("records table unavailable")
		w := rf.do(t, http.MethodPost, "/send", validBody, true)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["success"])
	})
}

func TestUsageEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		rf.ledger.Set(rf.accountID, rf.periodKey, 120)
		w := rf.do(t, http.MethodGet, "/usage", "", true)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "free", body["plan"])
		assert.EqualValues(t, 120, body["emails_sent"])
		assert.EqualValues(t, 3000, body["limit"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		rf := newRouterFixture(t)
		w := rf.do(t, http.MethodGet, "/usage", "", false)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
