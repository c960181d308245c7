package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wallet-wrapped/internal/domain/entity"
	domainService "wallet-wrapped/internal/domain/service"
	"wallet-wrapped/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.RPCChecker = (*Checker)(nil)

const defaultProbeTimeout = 10 * time.Second

// blockNumberPayload asks the node for its head block, the cheapest call every EVM node serves.
var blockNumberPayload = []byte(`{"jsonrpc":"2.0","method":"eth_blockNumber","params":[],"id":1}`)

// Checker probes chain RPC endpoints over HTTP(S) or WS(S).
type Checker struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewChecker creates a new RPC checker instance.
func NewChecker(timeout time.Duration, logger *zap.Logger) *Checker {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Checker{
		client:  &fasthttp.Client{ReadTimeout: timeout},
		timeout: timeout,
		logger:  logger.Named("RPCChecker"),
	}
}

type jsonRPCResponse struct {
	ID      interface{}     `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckRPC reports whether the endpoint answers eth_blockNumber, and how fast.
func (c *Checker) CheckRPC(ctx context.Context, rpcURL entity.RPCURL) (bool, time.Duration, error) {
	timeout := c.effectiveTimeout(ctx)
	start := time.Now()

	var (
		body []byte
		err  error
	)
	switch rpcURL.Protocol() {
	case entity.ProtocolHTTP, entity.ProtocolHTTPS:
		body, err = c.postHTTP(rpcURL.String(), timeout)
	case entity.ProtocolWS, entity.ProtocolWSS:
		body, err = c.roundTripWS(ctx, rpcURL.String(), timeout)
	default:
		return false, 0, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, rpcURL)
	}
	latency := time.Since(start)
	if err != nil {
		c.logger.Debug("RPC probe failed", zap.String("url", rpcURL.String()), zap.Error(err))
		return false, latency, err
	}

	if err := validateResponse(body); err != nil {
		c.logger.Debug("RPC probe returned unusable response",
			zap.String("url", rpcURL.String()), zap.ByteString("body", body), zap.Error(err))
		return false, latency, fmt.Errorf("%w: rpc %s: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}

	c.logger.Debug("RPC probe succeeded", zap.String("url", rpcURL.String()), zap.Duration("latency", latency))
	return true, latency, nil
}

// effectiveTimeout is the configured timeout, shortened by an earlier context deadline.
func (c *Checker) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func (c *Checker) postHTTP(rpcURL string, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rpcURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(blockNumberPayload)

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: http request to %s timed out after %v", apperrors.ErrTimeout, rpcURL, timeout)
		}
		return nil, fmt.Errorf("%w: http request to %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: rpc %s returned non-OK http status: %d",
			apperrors.ErrExternalServiceFailure, rpcURL, resp.StatusCode(),
		)
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (c *Checker) roundTripWS(ctx context.Context, rpcURL string, timeout time.Duration) ([]byte, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, _, err := dialer.DialContext(dialCtx, rpcURL, nil)
	if err != nil {
		if errors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: wss dial to %s timed out: %v", apperrors.ErrTimeout, rpcURL, err)
		}
		return nil, fmt.Errorf("%w: wss dial to %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, blockNumberPayload); err != nil {
		return nil, fmt.Errorf("%w: wss write to %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}

	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: wss read from %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}
	return message, nil
}

func validateResponse(body []byte) error {
	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("json-rpc error: %d %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if rpcResp.Jsonrpc != "2.0" || rpcResp.Result == nil {
		return errors.New("invalid JSON-RPC structure")
	}
	return nil
}
