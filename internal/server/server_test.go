package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betbot/gobet-signer/clob/client"
	"github.com/betbot/gobet-signer/clob/signing"
	"github.com/betbot/gobet-signer/clob/types"
	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/betbot/gobet-signer/internal/order"
	"github.com/betbot/gobet-signer/internal/relay"
	"github.com/betbot/gobet-signer/internal/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testSecret = "s3cret"
	validOrder = `{"tokenID":"1234567890","price":"0.5","size":"10","side":"buy"}`
)

type countingSigner struct {
	inner gateway.Signer
	calls int
}

func (s *countingSigner) Sign(ctx context.Context, req order.Request) (gateway.SignedOrder, error) {
	s.calls++
	return s.inner.Sign(ctx, req)
}

type failingSigner struct{}

func (failingSigner) Sign(context.Context, order.Request) (gateway.SignedOrder, error) {
	return nil, errors.New("key unavailable")
}

type failingRelayer struct{}

func (failingRelayer) Relay(context.Context, gateway.SignedOrder) (*gateway.RelayResponse, error) {
	return nil, errors.New("connection refused")
}

func newClobSigner(t *testing.T) *countingSigner {
	t.Helper()
	key, err := signing.PrivateKeyFromHex(testKeyHex)
	require.NoError(t, err)
	ob, err := client.NewOrderBuilder(key, types.ChainPolygon, client.BuilderOptions{
		SaltFunc: func() int64 { return 7 },
	})
	require.NoError(t, err)
	return &countingSigner{inner: signer.New(ob)}
}

func newRouter(s gateway.Signer, r gateway.Relayer) http.Handler {
	svc := gateway.NewService(s, r, nil)
	srv := New(svc, gateway.NewAuthGate(testSecret), Info{
		Host:    "https://clob.polymarket.com",
		ChainID: types.ChainPolygon,
		Address: "0x0000000000000000000000000000000000000001",
	}, nil)
	return srv.Router()
}

func do(t *testing.T, h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type envelope struct {
	OK          bool            `json:"ok"`
	Error       string          `json:"error"`
	Errors      []string        `json:"errors"`
	Details     string          `json:"details"`
	SignedOrder json.RawMessage `json:"signedOrder"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth_NoAuth(t *testing.T) {
	h := newRouter(newClobSigner(t), nil)
	w := do(t, h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "https://clob.polymarket.com", body["host"])
	assert.Equal(t, float64(137), body["chainId"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestUnauthorized_NeverSigns(t *testing.T) {
	s := newClobSigner(t)
	h := newRouter(s, nil)

	for _, auth := range []string{"", "Bearer wrong", testSecret, "Bearer "} {
		for _, path := range []string{"/sign", "/place"} {
			w := do(t, h, http.MethodPost, path, auth, validOrder)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %q", path, auth)
			env := decode(t, w)
			assert.False(t, env.OK)
			assert.Equal(t, "Unauthorized", env.Error)
		}
	}
	assert.Zero(t, s.calls)
}

func TestSign_OK(t *testing.T) {
	s := newClobSigner(t)
	w := do(t, newRouter(s, nil), http.MethodPost, "/sign", "Bearer "+testSecret, validOrder)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.OK)
	var signed types.SignedOrder
	require.NoError(t, json.Unmarshal(env.SignedOrder, &signed))
	assert.Equal(t, "1234567890", signed.TokenID)
	assert.Equal(t, types.SideBuy, signed.Side)
	assert.Equal(t, int64(7), signed.Salt)
	assert.NotEmpty(t, signed.Signature)
	assert.Equal(t, 1, s.calls)
}

func TestSign_InvalidInput(t *testing.T) {
	s := newClobSigner(t)
	w := do(t, newRouter(s, nil), http.MethodPost, "/sign", "Bearer "+testSecret, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	assert.False(t, env.OK)
	assert.Equal(t, "Invalid input", env.Error)
	assert.Equal(t, []string{"tokenID is required", "price is required", "size is required"}, env.Errors)
	assert.Zero(t, s.calls)
}

func TestSign_MalformedBodyTreatedAsEmpty(t *testing.T) {
	s := newClobSigner(t)
	w := do(t, newRouter(s, nil), http.MethodPost, "/sign", "Bearer "+testSecret, `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, decode(t, w).Errors, 3)
	assert.Zero(t, s.calls)
}

func TestSign_Failed(t *testing.T) {
	w := do(t, newRouter(failingSigner{}, nil), http.MethodPost, "/sign", "Bearer "+testSecret, validOrder)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	env := decode(t, w)
	assert.False(t, env.OK)
	assert.Equal(t, "Sign failed", env.Error)
	assert.Contains(t, env.Details, "key unavailable")
}

func TestPlace_MisconfiguredReturnsSameSignedOrder(t *testing.T) {
	h := newRouter(newClobSigner(t), nil)

	signW := do(t, h, http.MethodPost, "/sign", "Bearer "+testSecret, validOrder)
	require.Equal(t, http.StatusOK, signW.Code)
	placeW := do(t, h, http.MethodPost, "/place", "Bearer "+testSecret, validOrder)
	require.Equal(t, http.StatusBadRequest, placeW.Code)

	placeEnv := decode(t, placeW)
	assert.False(t, placeEnv.OK)
	assert.Equal(t, "Relay target not configured on signer", placeEnv.Error)
	assert.Equal(t, string(decode(t, signW).SignedOrder), string(placeEnv.SignedOrder))
}

func TestPlace_PassesThroughRelayResponse(t *testing.T) {
	var forwarded relay.Envelope
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&forwarded)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	defer target.Close()

	h := newRouter(newClobSigner(t), relay.NewClient(target.URL, "relay-token", 0, nil))
	w := do(t, h, http.MethodPost, "/place", "Bearer "+testSecret, validOrder)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "down", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, relay.SubmitOrderPath, forwarded.Path)
	assert.NotEmpty(t, forwarded.Body)
}

func TestPlace_InvalidInputSkipsRelay(t *testing.T) {
	calls := 0
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer target.Close()

	h := newRouter(newClobSigner(t), relay.NewClient(target.URL, "relay-token", 0, nil))
	w := do(t, h, http.MethodPost, "/place", "Bearer "+testSecret, `{"tokenID":"1","price":"0.5","size":"1","side":"HOLD"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"side must be BUY or SELL"}, decode(t, w).Errors)
	assert.Zero(t, calls)
}

func TestPlace_RelayFailure(t *testing.T) {
	w := do(t, newRouter(newClobSigner(t), failingRelayer{}), http.MethodPost, "/place", "Bearer "+testSecret, validOrder)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	env := decode(t, w)
	assert.False(t, env.OK)
	assert.Equal(t, "Place failed", env.Error)
	assert.Contains(t, env.Details, "connection refused")
}

func TestRequestID_Echoed(t *testing.T) {
	h := newRouter(newClobSigner(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req_fixed")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "req_fixed", w.Header().Get(requestIDHeader))
}

func TestNoRoute(t *testing.T) {
	w := do(t, newRouter(newClobSigner(t), nil), http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).OK)
}
