package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/http/middleware"
	pulseuse "github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/validator"
)

type stubService struct {
	runReq    *pulseuse.Request
	runResult *pulseuse.Result
	runErr    error

	scoreInput string
	scoreTeam  string
	scoreErr   error

	historyLimit int
	history      []entities.HistoryEntry

	provider string
}

func (s *stubService) Run(_ context.Context, req pulseuse.Request) (*pulseuse.Result, error) {
	s.runReq = &req
	return s.runResult, s.runErr
}

func (s *stubService) Score(extraction, teamCSV string) (*signals.Evaluation, error) {
	s.scoreInput = extraction
	s.scoreTeam = teamCSV
	if s.scoreErr != nil {
		return nil, s.scoreErr
	}
	return &signals.Evaluation{Scores: entities.Scores{Overall: 91, Grade: entities.GradeA, ExecutionRisk: entities.RiskLevelLow}}, nil
}

func (s *stubService) History(_ context.Context, limit int) ([]entities.HistoryEntry, error) {
	s.historyLimit = limit
	return s.history, nil
}

func (s *stubService) Provider() string { return s.provider }

type stubRuns struct {
	runs []*entities.PulseRun
}

func (r *stubRuns) Save(_ context.Context, run *entities.PulseRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *stubRuns) GetByRunID(_ context.Context, runID string) (*entities.PulseRun, error) {
	for _, run := range r.runs {
		if run.RunID == runID {
			return run, nil
		}
	}
	return nil, entities.ErrRunNotFound
}

func (r *stubRuns) ListRecent(_ context.Context, limit int) ([]*entities.PulseRun, error) {
	return r.runs, nil
}

type scoreRecorder struct {
	scores []entities.Scores
}

func (o *scoreRecorder) ObserveScores(s entities.Scores) { o.scores = append(o.scores, s) }

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

type server struct {
	e        *echo.Echo
	svc      *stubService
	runs     *stubRuns
	observer *scoreRecorder
}

func newServer(t *testing.T, passcode string) *server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test", Passcode: passcode, PasscodeSet: passcode != ""},
		LLM:    config.LLMConfig{Provider: config.ProviderZo, ZoAPIKey: "zo_key_123"},
	}
	s := &server{
		svc:      &stubService{provider: "zo"},
		runs:     &stubRuns{},
		observer: &scoreRecorder{},
	}
	logger := zap.NewNop()
	guard := middleware.NewPasscodeGuard(cfg.Server.Passcode)
	h := NewPulse(s.svc, s.runs, guard, s.observer, cfg, logger)
	h.now = func() time.Time { return time.Date(2026, time.March, 5, 20, 15, 7, 0, time.UTC) }

	s.e = echo.New()
	s.e.Validator = validator.New()
	s.e.HTTPErrorHandler = HTTPErrorHandler(logger)
	NewRouter(cfg, h, guard, nil).Setup(s.e)
	return s
}

func (s *server) do(t *testing.T, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestPulse_Run(t *testing.T) {
	t.Run("Should reject a wrong passcode before checking notes", func(t *testing.T) {
		s := newServer(t, "s3cret")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse", `{"notes":"","passcode":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_PULSE_INVALID_PASSCODE), env.Code)
		assert.Nil(t, s.svc.runReq)
	})

	t.Run("Should reject blank notes", func(t *testing.T) {
		s := newServer(t, "")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse", `{"notes":"   "}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_PULSE_MISSING_NOTES), env.Code)
		assert.Equal(t, "Missing notes", env.Message)
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		s := newServer(t, "")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse", `{"notes":`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_INVALID_PAYLOAD), env.Code)
	})

	t.Run("Should run the pipeline and return the result", func(t *testing.T) {
		s := newServer(t, "s3cret")
		s.svc.runResult = &pulseuse.Result{
			Report:      "# Pulse\n",
			RunID:       "2026-03-05_151507_0a1b2c3d",
			MeetingType: "Standup",
			Saved:       entities.SavedPaths{Outdir: "runs/x"},
			Scores:      entities.Scores{Overall: 77, Grade: entities.GradeC},
		}

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse",
			`{"notes":"Alice ships Friday","meeting_type":" Standup ","team":"Alice","passcode":"s3cret","run_name":"Daily"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_HTTP_OK), env.Code)

		require.NotNil(t, s.svc.runReq)
		assert.Equal(t, pulseuse.Request{
			Notes:       "Alice ships Friday",
			MeetingType: "Standup",
			Team:        "Alice",
			RunName:     "Daily",
			Source:      "http",
		}, *s.svc.runReq)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "2026-03-05_151507_0a1b2c3d", data["run_id"])
		assert.Equal(t, "# Pulse\n", data["report"])
		assert.Equal(t, "runs/x", data["saved"].(map[string]any)["outdir"])
		assert.EqualValues(t, 77, data["scores"].(map[string]any)["overall"])
	})

	t.Run("Should surface the raw extraction on parse failure", func(t *testing.T) {
		s := newServer(t, "")
		s.svc.runErr = errors.ErrExtractionParseFailed("not json", stdErrors.New("invalid character")).
			WithDetail("raw_path", "runs/x/extraction_raw.txt")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse", `{"notes":"n"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to parse extracted JSON", env.Message)
		assert.Equal(t, "not json", env.Details["raw"])
		assert.Equal(t, "runs/x/extraction_raw.txt", env.Details["raw_path"])
	})

	t.Run("Should map unknown errors to internal", func(t *testing.T) {
		s := newServer(t, "")
		s.svc.runErr = stdErrors.New("boom")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse", `{"notes":"n"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_INTERNAL), env.Code)
		assert.Equal(t, "boom", env.Info)
	})
}

func TestPulse_Score(t *testing.T) {
	t.Run("Should accept an extraction object", func(t *testing.T) {
		s := newServer(t, "")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse/score",
			`{"extraction":{"action_items":[]},"team":"Alice"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"action_items":[]}`, s.svc.scoreInput)
		assert.Equal(t, "Alice", s.svc.scoreTeam)
		require.Len(t, s.observer.scores, 1)
		assert.Equal(t, 91, s.observer.scores[0].Overall)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "A", data["scores"].(map[string]any)["grade"])
	})

	t.Run("Should accept the raw model answer as a string", func(t *testing.T) {
		s := newServer(t, "")

		rec, _ := s.do(t, http.MethodPost, "/v1/signal-pulse/score",
			`{"extraction":"`+"```json\\n{}\\n```"+`"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "```json\n{}\n```", s.svc.scoreInput)
	})

	t.Run("Should require an extraction", func(t *testing.T) {
		s := newServer(t, "")

		rec, env := s.do(t, http.MethodPost, "/v1/signal-pulse/score", `{"team":"Alice"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
		assert.Empty(t, s.observer.scores)
	})

	t.Run("Should enforce the passcode", func(t *testing.T) {
		s := newServer(t, "s3cret")

		rec, _ := s.do(t, http.MethodPost, "/v1/signal-pulse/score", `{"extraction":{}}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPulse_History(t *testing.T) {
	t.Run("Should default the limit", func(t *testing.T) {
		s := newServer(t, "")
		s.svc.history = []entities.HistoryEntry{{MeetingType: "Retro", Score: 64, Grade: entities.GradeD}}

		rec, env := s.do(t, http.MethodGet, "/v1/signal-pulse/history", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, defaultHistoryLimit, s.svc.historyLimit)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.EqualValues(t, 1, data["count"])
	})

	t.Run("Should read the limit from the query", func(t *testing.T) {
		s := newServer(t, "")

		rec, _ := s.do(t, http.MethodGet, "/v1/signal-pulse/history?limit=5", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, s.svc.historyLimit)
	})

	t.Run("Should reject a bad limit", func(t *testing.T) {
		s := newServer(t, "")

		rec, _ := s.do(t, http.MethodGet, "/v1/signal-pulse/history?limit=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = s.do(t, http.MethodGet, "/v1/signal-pulse/history?limit=0", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should require the passcode header", func(t *testing.T) {
		s := newServer(t, "s3cret")

		rec, env := s.do(t, http.MethodGet, "/v1/signal-pulse/history", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_PULSE_INVALID_PASSCODE), env.Code)

		rec, _ = s.do(t, http.MethodGet, "/v1/signal-pulse/history", "",
			map[string]string{middleware.PasscodeHeader: "s3cret"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPulse_Runs(t *testing.T) {
	s := newServer(t, "")
	run := entities.NewPulseRun("2026-03-05_151507_0a1b2c3d", "Standup", "Direct", nil,
		entities.NormalizedSignals{}, entities.Metrics{}, entities.Scores{Overall: 88, Grade: entities.GradeB})
	require.NoError(t, s.runs.Save(context.Background(), run))

	t.Run("Should list stored runs", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/v1/signal-pulse/runs", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.EqualValues(t, 1, data["count"])
	})

	t.Run("Should get a run by id", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/v1/signal-pulse/runs/2026-03-05_151507_0a1b2c3d", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.EqualValues(t, 88, data["overall"])
	})

	t.Run("Should return 404 for an unknown run", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/v1/signal-pulse/runs/missing", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "missing", env.Details["run_id"])
	})
}

func TestPulse_Health(t *testing.T) {
	s := newServer(t, "s3cret")
	req := httptest.NewRequest(http.MethodGet, "/v1/signal-pulse/health", nil)
	rec := httptest.NewRecorder()

	s.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"ok": true,
		"server_time_iso": "2026-03-05T20:15:07.000Z",
		"has_zo_api_key": true,
		"zo_api_key_length": 10,
		"has_passcode": true,
		"has_passcode_key": true,
		"passcode_length": 6,
		"llm_provider": "zo",
		"llm_configured": true,
		"database_enabled": true
	}`, rec.Body.String())
}

func TestPulse_Health_BlankPasscode(t *testing.T) {
	s := newServer(t, "   ")
	req := httptest.NewRequest(http.MethodGet, "/v1/signal-pulse/health", nil)
	rec := httptest.NewRecorder()

	s.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["has_passcode"])
	assert.Equal(t, true, body["has_passcode_key"])
	assert.EqualValues(t, 0, body["passcode_length"])
}

func TestRouter_Liveness(t *testing.T) {
	s := newServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
