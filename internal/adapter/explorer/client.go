package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain/entity"
	domainService "wallet-wrapped/internal/domain/service"
	"wallet-wrapped/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.ExplorerClient = (*Client)(nil)

const (
	startBlock     = "0"
	endBlock       = "99999999"
	redactedAPIKey = "REDACTED"
)

// Client implements domainService.ExplorerClient against Etherscan-compatible account APIs.
type Client struct {
	client   *fasthttp.Client
	apiKey   string
	timeout  time.Duration
	pageSize int
	logger   *zap.Logger
}

// NewClient creates an explorer client. The API key is shared read-only by all requests.
func NewClient(cfg config.ExplorerConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10000
	}
	return &Client{
		client: &fasthttp.Client{
			ReadTimeout: timeout,
		},
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		pageSize: pageSize,
		logger:   logger.Named("ExplorerClient"),
	}
}

// envelope is the common response wrapper. Result is an array on success but may be a string
// carrying an explanation, whatever the status says.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// ListTransactions returns the wallet's native transactions on chain.
func (c *Client) ListTransactions(ctx context.Context, chain entity.Chain, address string) []entity.Transaction {
	return fetchRecords[entity.Transaction](ctx, c, chain, entity.ActionTxList, address)
}

// ListTokenTransfers returns the wallet's token transfer events on chain.
func (c *Client) ListTokenTransfers(ctx context.Context, chain entity.Chain, address string) []entity.TokenTransfer {
	return fetchRecords[entity.TokenTransfer](ctx, c, chain, entity.ActionTokenTx, address)
}

func fetchRecords[T any](
	ctx context.Context,
	c *Client,
	chain entity.Chain,
	action entity.ExplorerAction,
	address string,
) []T {
	log := c.logger.With(zap.String("chain", chain.Name), zap.String("action", string(action)))

	body, err := c.get(ctx, chain, action, address, log)
	if err != nil {
		log.Warn("Explorer request failed, treating as no data", zap.Error(err))
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Warn("Failed to unmarshal explorer envelope",
			zap.Error(err), zap.ByteString("bodySample", body[:min(512, len(body))]),
		)
		return nil
	}

	resultIsList := isJSONArray(env.Result)
	log.Debug("Explorer response received",
		zap.String("status", env.Status),
		zap.String("message", env.Message),
		zap.Bool("resultIsList", resultIsList),
	)

	if env.Status != "1" {
		c.logFailure(log, env)
		return nil
	}

	if !resultIsList {
		log.Warn("Explorer result is not a list", zap.ByteString("result", env.Result[:min(256, len(env.Result))]))
		return nil
	}

	var records []T
	if err := json.Unmarshal(env.Result, &records); err != nil {
		log.Warn("Failed to decode explorer records", zap.Error(err))
		return nil
	}

	log.Debug("Explorer records decoded", zap.Int("count", len(records)))
	return records
}

// get issues the GET request and returns the (decompressed) body of a 200 response.
func (c *Client) get(
	ctx context.Context,
	chain entity.Chain,
	action entity.ExplorerAction,
	address string,
	log *zap.Logger,
) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.requestURL(chain, action, address, c.apiKey))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := c.timeout
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline {
		requestTimeout := time.Until(deadline)
		if requestTimeout <= 0 {
			return nil, apperrors.ErrTimeout
		}
		if requestTimeout < timeout {
			timeout = requestTimeout
		}
	}

	log.Debug("Requesting explorer",
		zap.String("url", c.requestURL(chain, action, address, redactedAPIKey)),
		zap.Duration("timeout", timeout),
	)

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, errors.Join(apperrors.ErrTimeout, err)
		}
		return nil, errors.Join(apperrors.ErrExternalServiceFailure, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, errors.Join(apperrors.ErrExternalServiceFailure,
			errors.New("explorer returned http status "+strconv.Itoa(resp.StatusCode())),
		)
	}

	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		body, err := resp.BodyGunzip()
		if err != nil {
			return nil, errors.Join(apperrors.ErrExternalServiceFailure, err)
		}
		return body, nil
	}

	// resp is released on return, so the body must be copied out.
	return append([]byte(nil), resp.Body()...), nil
}

// requestURL builds the account query. apiKey is a parameter so the same builder produces the
// redacted form used in logs.
func (c *Client) requestURL(chain entity.Chain, action entity.ExplorerAction, address, apiKey string) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	if chain.ExplorerChainID != 0 {
		args.Add("chainid", strconv.FormatInt(chain.ExplorerChainID, 10))
	}
	args.Add("module", "account")
	args.Add("action", string(action))
	args.Add("address", address)
	args.Add("startblock", startBlock)
	args.Add("endblock", endBlock)
	args.Add("page", "1")
	args.Add("offset", strconv.Itoa(c.pageSize))
	args.Add("sort", "asc")
	args.Add("apikey", apiKey)

	base := chain.ExplorerURL.String()
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + args.String()
}

// logFailure records a non-success envelope at the level its cause deserves.
func (c *Client) logFailure(log *zap.Logger, env envelope) {
	detail := resultText(env.Result)
	switch classify(env.Message, detail) {
	case failureNoRecords:
		log.Debug("Explorer reported no records", zap.String("message", env.Message))
	case failureRejected:
		log.Warn("Explorer rejected request (rate limit, credential or plan)",
			zap.String("message", env.Message), zap.String("detail", detail),
		)
	default:
		log.Warn("Explorer reported failure",
			zap.String("message", env.Message), zap.String("detail", detail),
		)
	}
}

type failureKind int

const (
	failureOther failureKind = iota
	failureNoRecords
	failureRejected
)

var noRecordPhrases = []string{
	"no transactions found",
	"no record found",
	"no records found",
	"no token transfers found",
}

var rejectedPhrases = []string{
	"rate limit",
	"invalid api key",
	"missing/invalid api key",
	"paid plan",
	"api pro",
	"upgrade your api plan",
}

func classify(message, detail string) failureKind {
	text := strings.ToLower(message + " " + detail)
	for _, p := range noRecordPhrases {
		if strings.Contains(text, p) {
			return failureNoRecords
		}
	}
	for _, p := range rejectedPhrases {
		if strings.Contains(text, p) {
			return failureRejected
		}
	}
	return failureOther
}

// resultText returns the result when it is a JSON string, otherwise "".
func resultText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
