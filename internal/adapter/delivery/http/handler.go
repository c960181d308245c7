package http

import (
	"encoding/json"
	"errors"
	"strings"

	"wallet-wrapped/internal/application/port"
	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	"wallet-wrapped/internal/pkg/apperrors"
	"wallet-wrapped/internal/pkg/units"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// WalletHandler serves wallet analysis and chain registry endpoints.
type WalletHandler struct {
	wallets port.WalletService
	chains  port.ChainService
	logger  *zap.Logger
}

// NewWalletHandler creates the HTTP handler.
func NewWalletHandler(wallets port.WalletService, chains port.ChainService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		chains:  chains,
		logger:  logger.Named("WalletHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// walletResponse is WalletData plus display strings for the native-currency totals.
type walletResponse struct {
	*entity.WalletData
	Display displaySummary `json:"display"`
}

type displaySummary struct {
	Address             string `json:"address"`
	ValueSent           string `json:"valueSent"`
	ValueReceived       string `json:"valueReceived"`
	NetFlow             string `json:"netFlow"`
	GasSpent            string `json:"gasSpent"`
	AverageGasPriceGwei string `json:"averageGasPriceGwei"`
}

func newDisplaySummary(data *entity.WalletData) displaySummary {
	s := data.Stats
	return displaySummary{
		Address:             units.ShortenAddress(data.Address, 4),
		ValueSent:           units.FormatEther(s.TotalValueSent),
		ValueReceived:       units.FormatEther(s.TotalValueReceived),
		NetFlow:             units.FormatEther(s.NetFlow),
		GasSpent:            units.FormatEther(s.TotalGasSpent),
		AverageGasPriceGwei: units.FormatGwei(s.AverageGasPrice),
	}
}

// GetWallet handles GET /api/wallet?address=0x..&chains=eth,base.
func (h *WalletHandler) GetWallet(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	address := strings.TrimSpace(string(args.Peek("address")))
	if address == "" {
		h.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: "Wallet address is required"})
		return
	}

	var chainIDs []string
	for _, id := range strings.Split(string(args.Peek("chains")), ",") {
		if id = strings.TrimSpace(id); id != "" {
			chainIDs = append(chainIDs, id)
		}
	}

	data, err := h.wallets.GetWalletData(ctx, address, chainIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAddress):
			h.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: "Invalid Ethereum address format"})
		case errors.Is(err, domain.ErrChainNotFound), errors.Is(err, apperrors.ErrInvalidInput):
			h.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			h.logger.Error("Failed to fetch wallet data", zap.String("address", address), zap.Error(err))
			h.writeJSON(ctx, fasthttp.StatusInternalServerError,
				errorResponse{Error: "Failed to fetch wallet data. Please try again later."})
		}
		return
	}

	h.writeJSON(ctx, fasthttp.StatusOK, walletResponse{
		WalletData: data,
		Display:    newDisplaySummary(data),
	})
}

// GetChains handles GET /api/chains and lists the enabled chains.
func (h *WalletHandler) GetChains(ctx *fasthttp.RequestCtx) {
	chains, err := h.chains.GetEnabledChains(ctx)
	if err != nil {
		h.logger.Error("Failed to get chains", zap.Error(err))
		h.writeJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	summaries := make([]entity.ChainSummary, 0, len(chains))
	for _, c := range chains {
		summaries = append(summaries, c.Summary())
	}
	h.writeJSON(ctx, fasthttp.StatusOK, summaries)
}

// GetChainHealth handles GET /api/chains/{chainId}/health.
func (h *WalletHandler) GetChainHealth(ctx *fasthttp.RequestCtx) {
	chainID, ok := ctx.UserValue("chainId").(string)
	if !ok || chainID == "" {
		h.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: "Bad Request: Invalid chainId"})
		return
	}

	health, err := h.chains.CheckChainHealth(ctx, chainID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, domain.ErrChainNotFound) {
			h.writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{Error: "Not Found"})
			return
		}
		h.logger.Error("Failed to check chain health", zap.String("chainId", chainID), zap.Error(err))
		h.writeJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, health)
}

func (h *WalletHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
