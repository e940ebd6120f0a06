package api

import (
	"context"
	"time"

	"ChainHealth/internal/domain/models"
	"ChainHealth/internal/services/reorglog"
	"ChainHealth/internal/services/scoring"
	xhttp "ChainHealth/pkg/http"
	"ChainHealth/pkg/http/middleware"
	xlogger "ChainHealth/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthSource exposes the monitor's snapshot and on-demand refresh.
type HealthSource interface {
	Latest() *models.HealthScore
	Refresh(ctx context.Context) (*models.HealthScore, error)
}

// HealthHandler serves health snapshots, ad-hoc scoring and the snapshot stream.
type HealthHandler struct {
	logger  *xlogger.Logger
	monitor HealthSource
	hub     *Hub
	limiter *middleware.Limiter
	clock   func() time.Time
}

func NewHealthHandler(logger *xlogger.Logger, monitor HealthSource, hub *Hub, limiter *middleware.Limiter) *HealthHandler {
	return &HealthHandler{
		logger:  logger.Component("api"),
		monitor: monitor,
		hub:     hub,
		limiter: limiter,
		clock:   time.Now,
	}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/health", h.Health)
	g.GET("/health/market", h.Market)
	g.GET("/health/reorg", h.Reorg)
	g.POST("/health/refresh", h.Refresh)

	var limited []echo.MiddlewareFunc
	if h.limiter != nil {
		limited = append(limited, middleware.RateLimit(h.limiter, rateLimited))
	}
	g.POST("/score/market", h.ScoreMarket, limited...)
	g.POST("/score/reorg", h.ScoreReorg, limited...)
	g.POST("/score/composite", h.ScoreComposite, limited...)
	g.POST("/reorg/extract", h.ExtractReorgs, limited...)

	if h.hub != nil {
		e.GET("/ws/health", h.Stream)
	}
}

func rateLimited(c echo.Context) error {
	return xhttp.Fail(c, xhttp.TooManyRequestsError("rate limit exceeded"))
}

func noSnapshot(c echo.Context) error {
	return xhttp.Fail(c, xhttp.UnavailableError("no health snapshot yet"))
}

func (h *HealthHandler) Health(c echo.Context) error {
	snap := h.monitor.Latest()
	if snap == nil {
		return noSnapshot(c)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return xhttp.OK(c, snap)
}

func (h *HealthHandler) Market(c echo.Context) error {
	snap := h.monitor.Latest()
	if snap == nil {
		return noSnapshot(c)
	}
	return xhttp.OK(c, snap.Data.Market)
}

func (h *HealthHandler) Reorg(c echo.Context) error {
	snap := h.monitor.Latest()
	if snap == nil {
		return noSnapshot(c)
	}
	return xhttp.OK(c, snap.Data.Reorg)
}

func (h *HealthHandler) Refresh(c echo.Context) error {
	snap, err := h.monitor.Refresh(c.Request().Context())
	if err != nil {
		h.logger.Error("refresh failed", xlogger.Error(err))
		return xhttp.Fail(c, err)
	}
	return xhttp.OK(c, snap)
}

func (h *HealthHandler) ScoreMarket(c echo.Context) error {
	req := &models.MarketScoreRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.Invalid(c, verr)
	}
	res, err := scoring.MarketScore(req.Sample())
	if err != nil {
		return xhttp.Fail(c, err)
	}
	return xhttp.OK(c, res)
}

func (h *HealthHandler) ScoreReorg(c echo.Context) error {
	req := &models.ReorgScoreRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.Invalid(c, verr)
	}
	return xhttp.OK(c, scoring.ReorgScore(req.Count, req.Deepest))
}

func (h *HealthHandler) ScoreComposite(c echo.Context) error {
	req := &models.CompositeScoreRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.Invalid(c, verr)
	}
	score, err := scoring.CompositeScore(req.Market, req.Reorg)
	if err != nil {
		return xhttp.Fail(c, err)
	}
	return xhttp.OK(c, models.ScoreResponse{Score: score})
}

// ExtractReorgs summarizes posted log lines. Lines may omit their trailing newline.
func (h *HealthHandler) ExtractReorgs(c echo.Context) error {
	req := &models.ExtractRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.Invalid(c, verr)
	}
	now := h.clock()
	if req.Now != nil {
		now = *req.Now
	}

	summary, err := reorglog.Extract(reorglog.Terminate(req.Lines), now)
	if err != nil {
		return xhttp.Fail(c, err)
	}
	return xhttp.OK(c, models.ReorgReport{
		ReorgResult: scoring.ReorgScore(summary.Count, summary.Deepest),
		Summary:     summary,
		LastChecked: now,
	})
}

func (h *HealthHandler) Stream(c echo.Context) error {
	if err := h.hub.Serve(c.Response(), c.Request(), h.monitor.Latest()); err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
	}
	return nil
}
