package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/internal/adapter/dto/common"
	"github.com/johnquangdev/signal-pulse/internal/adapter/dto/pulse"
	"github.com/johnquangdev/signal-pulse/internal/adapter/presenter"
	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/internal/domain/repositories"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/http/middleware"
	pulseuse "github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/runcontext"
)

const defaultHistoryLimit = 20

// PulseService is the pipeline behind the pulse endpoints
type PulseService interface {
	Run(ctx context.Context, req pulseuse.Request) (*pulseuse.Result, error)
	Score(extraction, teamCSV string) (*signals.Evaluation, error)
	History(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
	Provider() string
}

// ScoreObserver records offline scoring results
type ScoreObserver interface {
	ObserveScores(scores entities.Scores)
}

// Pulse handles the signal pulse endpoints
type Pulse struct {
	svc      PulseService
	runs     repositories.RunRepository
	guard    *middleware.PasscodeGuard
	observer ScoreObserver
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewPulse creates a new pulse handler. runs and observer may be nil.
func NewPulse(
	svc PulseService,
	runs repositories.RunRepository,
	guard *middleware.PasscodeGuard,
	observer ScoreObserver,
	cfg *config.Config,
	logger *zap.Logger,
) *Pulse {
	return &Pulse{
		svc:      svc,
		runs:     runs,
		guard:    guard,
		observer: observer,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes the pulse pipeline for a set of meeting notes
// @Summary      Run signal pulse
// @Description  Extracts execution signals from meeting notes, scores them and writes the pulse report
// @Tags         Pulse
// @Accept       json
// @Produce      json
// @Param        request  body      pulse.RunRequest  true  "Meeting notes and options"
// @Success      200      {object}  common.SuccessResponse{data=pulse.RunResponse}
// @Failure      400      {object}  common.ErrorResponse  "Missing notes"
// @Failure      401      {object}  common.ErrorResponse  "Invalid passcode"
// @Failure      500      {object}  common.ErrorResponse  "Model not configured or extraction not JSON"
// @Failure      502      {object}  common.ErrorResponse  "Model call failed"
// @Router       /signal-pulse [post]
func (h *Pulse) Run(c echo.Context) error {
	var req pulse.RunRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if !h.guard.Verify(req.Passcode) {
		return HandleError(h.logger, c, errors.ErrInvalidPasscode())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingNotes())
	}

	result, err := h.svc.Run(c.Request().Context(), pulseuse.Request{
		Notes:       req.Notes,
		MeetingType: strings.TrimSpace(req.MeetingType),
		Team:        req.Team,
		Tone:        strings.TrimSpace(req.Tone),
		RunName:     strings.TrimSpace(req.RunName),
		Source:      runcontext.SourceHTTP,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRunResponse(result))
}

// Score normalizes and scores an extraction without calling the model
// @Summary      Score an extraction
// @Description  Runs the deterministic normalize, metrics and scoring engine on an extraction
// @Tags         Pulse
// @Accept       json
// @Produce      json
// @Param        request  body      pulse.ScoreRequest  true  "Extraction object or raw model answer"
// @Success      200      {object}  common.SuccessResponse{data=pulse.ScoreResponse}
// @Failure      400      {object}  common.ErrorResponse  "Missing extraction"
// @Failure      401      {object}  common.ErrorResponse  "Invalid passcode"
// @Failure      500      {object}  common.ErrorResponse  "Extraction not JSON"
// @Router       /signal-pulse/score [post]
func (h *Pulse) Score(c echo.Context) error {
	var req pulse.ScoreRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if !h.guard.Verify(req.Passcode) {
		return HandleError(h.logger, c, errors.ErrInvalidPasscode())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("extraction is required"))
	}

	eval, err := h.svc.Score(extractionText(req.Extraction), req.Team)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if h.observer != nil {
		h.observer.ObserveScores(eval.Scores)
	}
	return HandleSuccess(h.logger, c, presenter.ToScoreResponse(eval))
}

// History lists recent run summaries
// @Summary      Run history
// @Description  Lists recent pulse run summaries, newest first
// @Tags         Pulse
// @Produce      json
// @Param        limit                    query     int     false  "Maximum entries (default 20)"
// @Param        X-Signal-Pulse-Passcode  header    string  false  "Shared passcode"
// @Success      200  {object}  common.SuccessResponse{data=pulse.HistoryResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid limit"
// @Failure      401  {object}  common.ErrorResponse  "Invalid passcode"
// @Router       /signal-pulse/history [get]
func (h *Pulse) History(c echo.Context) error {
	limit, err := h.bindLimit(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	entries, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToHistoryResponse(entries))
}

// ListRuns lists stored run records
// @Summary      List runs
// @Description  Lists stored pulse run records, newest first
// @Tags         Pulse
// @Produce      json
// @Param        limit                    query     int     false  "Maximum runs (default 20)"
// @Param        X-Signal-Pulse-Passcode  header    string  false  "Shared passcode"
// @Success      200  {object}  common.SuccessResponse{data=common.ListResponse{data=[]pulse.RunRecordResponse}}
// @Failure      401  {object}  common.ErrorResponse  "Invalid passcode"
// @Failure      404  {object}  common.ErrorResponse  "Run store not configured"
// @Router       /signal-pulse/runs [get]
func (h *Pulse) ListRuns(c echo.Context) error {
	if h.runs == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("Run store"))
	}
	limit, err := h.bindLimit(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	runs, err := h.runs.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list pulse runs", err))
	}
	records := presenter.ToRunRecordResponses(runs)
	return HandleSuccess(h.logger, c, common.ListResponse{Data: records, Count: len(records)})
}

// GetRun returns one stored run record
// @Summary      Get run
// @Description  Returns a stored pulse run record by run id
// @Tags         Pulse
// @Produce      json
// @Param        run_id                   path      string  true   "Run ID"
// @Param        X-Signal-Pulse-Passcode  header    string  false  "Shared passcode"
// @Success      200  {object}  common.SuccessResponse{data=pulse.RunRecordResponse}
// @Failure      401  {object}  common.ErrorResponse  "Invalid passcode"
// @Failure      404  {object}  common.ErrorResponse  "Run not found"
// @Router       /signal-pulse/runs/{run_id} [get]
func (h *Pulse) GetRun(c echo.Context) error {
	if h.runs == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("Run store"))
	}
	runID := c.Param("run_id")

	run, err := h.runs.GetByRunID(c.Request().Context(), runID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrRunNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Run").WithDetail("run_id", runID))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("get pulse run", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToRunRecordResponse(run))
}

// Health reports configuration presence without exposing secrets
// @Summary      Pulse health
// @Description  Reports whether the model credential and passcode are configured
// @Tags         Pulse
// @Produce      json
// @Success      200  {object}  pulse.HealthResponse
// @Router       /signal-pulse/health [get]
func (h *Pulse) Health(c echo.Context) error {
	zoToken := h.cfg.ZoToken()
	return c.JSON(http.StatusOK, pulse.HealthResponse{
		OK:              true,
		ServerTimeISO:   h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		HasZoAPIKey:     zoToken != "",
		ZoAPIKeyLength:  len(zoToken),
		HasPasscode:     h.guard.Length() > 0,
		HasPasscodeKey:  h.cfg.Server.PasscodeSet,
		PasscodeLength:  h.guard.Length(),
		LLMProvider:     h.cfg.LLM.Provider,
		LLMConfigured:   h.svc.Provider() != "",
		DatabaseEnabled: h.runs != nil,
	})
}

func (h *Pulse) bindLimit(c echo.Context) (int, error) {
	q := pulse.HistoryQuery{Limit: defaultHistoryLimit}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return 0, errors.ErrInvalidArgument("limit must be a number")
	}
	if err := c.Validate(&q); err != nil {
		return 0, errors.ErrInvalidArgument("limit must be between 1 and 500")
	}
	return q.Limit, nil
}

// extractionText accepts either a JSON string holding the model's answer or
// the extraction value itself.
func extractionText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}
