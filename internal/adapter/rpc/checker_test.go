package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallet-wrapped/internal/domain/entity"
	"wallet-wrapped/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func jsonRPCServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckRPC_HTTP(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		working bool
		wantErr error
	}{
		{"head block", http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":"0x1234"}`, true, nil},
		{"json-rpc error", http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`, false, apperrors.ErrExternalServiceFailure},
		{"not json", http.StatusOK, `gateway`, false, apperrors.ErrExternalServiceFailure},
		{"http error", http.StatusBadGateway, ``, false, apperrors.ErrExternalServiceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonRPCServer(t, tt.status, tt.body)
			checker := NewChecker(2*time.Second, zap.NewNop())

			working, _, err := checker.CheckRPC(context.Background(), entity.RPCURL(srv.URL))

			assert.Equal(t, tt.working, working)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckRPC_WebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":1,"result":"0x10"}`))
	}))
	t.Cleanup(srv.Close)

	checker := NewChecker(2*time.Second, zap.NewNop())
	wsURL := entity.RPCURL("ws" + strings.TrimPrefix(srv.URL, "http"))

	working, latency, err := checker.CheckRPC(context.Background(), wsURL)

	require.NoError(t, err)
	assert.True(t, working)
	assert.Positive(t, latency)
}

func TestCheckRPC_UnsupportedProtocol(t *testing.T) {
	checker := NewChecker(time.Second, zap.NewNop())

	working, _, err := checker.CheckRPC(context.Background(), entity.RPCURL("ftp://node.example"))

	assert.False(t, working)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
