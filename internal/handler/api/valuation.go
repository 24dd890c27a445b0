package api

import (
	"context"
	"strconv"
	"time"

	"marketcycle/internal/classify"
	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	"marketcycle/internal/service/ratelimit"
	"marketcycle/internal/usecase"
	"marketcycle/pkg/cache"
	xhttp "marketcycle/pkg/http"
	applogger "marketcycle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ValuationHandler exposes the engine's latest result and the supporting
// lookup endpoints.
type ValuationHandler struct {
	logger     *applogger.Logger
	engine     *usecase.Engine
	archive    drepo.HistoryArchive
	cache      cache.Service
	rl         *ratelimit.Limiter
	rlCapacity float64
	rlRefill   float64
	hub        *Hub
}

// NewValuationHandler wires the handler. rlCapacity and rlRefill shape the
// per-client classify bucket; non-positive values fall back to 10 tokens
// refilled at 5 per second.
func NewValuationHandler(logger *applogger.Logger, engine *usecase.Engine, archive drepo.HistoryArchive, c cache.Service, rlCapacity, rlRefill float64, hub *Hub) *ValuationHandler {
	if rlCapacity <= 0 {
		rlCapacity = 10
	}
	if rlRefill <= 0 {
		rlRefill = 5
	}
	return &ValuationHandler{
		logger:     logger,
		engine:     engine,
		archive:    archive,
		cache:      c,
		rl:         ratelimit.New(),
		rlCapacity: rlCapacity,
		rlRefill:   rlRefill,
		hub:        hub,
	}
}

func (h *ValuationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/valuation", h.Valuation)
	g.GET("/classify", h.Classify)
	g.GET("/history", h.History)
	e.GET("/healthz", h.Health)
	if h.hub != nil {
		e.GET("/ws", h.hub.Serve)
	}
}

// valuationView is the presentation-ready projection of an EngineResult.
type valuationView struct {
	OK                bool                  `json:"ok"`
	Error             string                `json:"error,omitempty"`
	Ratio             string                `json:"ratio,omitempty"`
	Percentile        string                `json:"percentile,omitempty"`
	HistoricalAverage string                `json:"historical_average,omitempty"`
	ExpectedReturn    string                `json:"expected_return,omitempty"`
	ImpliedReturn     *float64              `json:"implied_return,omitempty"`
	EarningsYield     *float64              `json:"earnings_yield,omitempty"`
	Zone              models.Classification `json:"zone"`
	LastUpdate        string                `json:"last_update,omitempty"`
	Warnings          []string              `json:"warnings,omitempty"`
}

func viewOf(res *models.EngineResult) valuationView {
	if !res.OK {
		return valuationView{OK: false, Error: res.Error, Warnings: res.Warnings}
	}
	return valuationView{
		OK:                true,
		Ratio:             res.FormattedRatio(),
		Percentile:        res.FormattedPercentile(),
		HistoricalAverage: res.FormattedAverage(),
		ExpectedReturn:    res.ExpectedReturn,
		ImpliedReturn:     res.ImpliedReturn,
		EarningsYield:     res.EarningsYield,
		Zone:              res.Zone,
		LastUpdate:        res.FormattedDate(),
		Warnings:          res.Warnings,
	}
}

// Valuation returns the latest assembled result. Before the first refresh,
// or after a fatal ingestion failure, the distinct unavailable state is
// returned so the caller never renders partial numbers.
func (h *ValuationHandler) Valuation(c echo.Context) error {
	res := h.engine.Latest()
	if res == nil {
		res = models.Unavailable("no refresh completed yet", nil)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, viewOf(res))
}

// Classify buckets an arbitrary ratio against a canonical table. Useful for
// the what-if widgets of the presentation layer.
func (h *ValuationHandler) Classify(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":classify", h.rlCapacity, h.rlRefill) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.ClassifyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	zone := classify.Classify(req.Ratio, classify.TableByName(req.Table))
	return xhttp.SuccessResponse(c, zone)
}

// History returns recent archived month-end observations, cached briefly to
// keep refresh-heavy dashboards off ClickHouse.
func (h *ValuationHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.archive == nil {
		return xhttp.NotFoundResponse(c, "history archive not configured")
	}

	cacheKey := "history:" + strconv.Itoa(req.Limit)
	if h.cache != nil {
		var cached []models.Observation
		if err := h.cache.Get(c.Request().Context(), cacheKey, &cached); err == nil {
			return xhttp.ListResponse(c, cached, int64(len(cached)))
		}
	}

	obs, err := h.archive.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("history query failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if h.cache != nil {
		if err := h.cache.Set(c.Request().Context(), cacheKey, obs, 5*time.Minute); err != nil {
			h.logger.Warn("history cache set failed", applogger.Error(err))
		}
	}
	return xhttp.ListResponse(c, obs, int64(len(obs)))
}

// Health reports archive connectivity. The engine itself has no failure
// mode to probe: its fallback chain always yields a result.
func (h *ValuationHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.archive != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.archive.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["archive"] = err.Error()
		}
	}
	return xhttp.SuccessResponse(c, status)
}
