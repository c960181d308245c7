package http

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RegisterRoutes sets up the wallet and chain routes and the health check.
func RegisterRoutes(r *router.Router, h *WalletHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/api/wallet", h.GetWallet)
	r.GET("/api/chains", h.GetChains)
	r.GET("/api/chains/{chainId}/health", h.GetChainHealth)

	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	logger.Info("All routes registered.")
}

// LoggingMiddleware logs every request with its final status code.
func LoggingMiddleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		next(ctx)
		logger.Info("Request served",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(ctx.Time())),
		)
	}
}
