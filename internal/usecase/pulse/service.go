package pulse

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/internal/domain/repositories"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
	"github.com/johnquangdev/signal-pulse/pkg/ai"
	"github.com/johnquangdev/signal-pulse/pkg/runcontext"
)

// Model call stages
const (
	StageExtract = "extract"
	StageReport  = "report"
)

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

const rawExtractionFile = "extraction_raw.txt"

// Observer receives pipeline measurements
type Observer interface {
	ObserveModelCall(provider, stage, outcome string, elapsed time.Duration)
	ObserveRun(outcome string, elapsed time.Duration, scores *entities.Scores)
}

// Options are the pipeline defaults
type Options struct {
	DefaultTone      string
	Location         *time.Location
	SaveRawOnFailure bool
	// NotConfigured is returned by Run when no model client is available
	NotConfigured error
}

// Request is one pulse run
type Request struct {
	Notes       string
	MeetingType string
	Team        string
	Tone        string
	RunName     string
	Source      string
}

// Result is the outcome of a successful run
type Result struct {
	Report      string                     `json:"report"`
	Saved       entities.SavedPaths        `json:"saved"`
	RunID       string                     `json:"run_id"`
	MeetingType string                     `json:"meeting_type"`
	Normalized  entities.NormalizedSignals `json:"normalized"`
	Metrics     entities.Metrics           `json:"metrics"`
	Scores      entities.Scores            `json:"scores"`
}

// runRecord is the content of the run JSON artifact
type runRecord struct {
	RunID       string           `json:"run_id"`
	MeetingType string           `json:"meeting_type"`
	RunName     *string          `json:"run_name"`
	Metrics     entities.Metrics `json:"metrics"`
	Scores      entities.Scores  `json:"scores"`
}

// Service runs the extract, score, report and persist pipeline
type Service struct {
	asker     ai.Asker
	artifacts repositories.ArtifactStore
	history   repositories.HistoryStore
	runs      repositories.RunRepository
	observer  Observer
	logger    *zap.Logger
	opts      Options

	now      func() time.Time
	newShort func() string
}

// NewService creates a pulse service. history, runs and observer may be nil.
func NewService(
	asker ai.Asker,
	artifacts repositories.ArtifactStore,
	history repositories.HistoryStore,
	runs repositories.RunRepository,
	observer Observer,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		asker:     asker,
		artifacts: artifacts,
		history:   history,
		runs:      runs,
		observer:  observer,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
		newShort:  NewShortID,
	}
}

// Run executes the full pipeline for one set of meeting notes
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	started := s.now()

	result, err := s.run(ctx, req, started)

	if s.observer != nil {
		if err != nil {
			s.observer.ObserveRun(OutcomeFailure, time.Since(started), nil)
		} else {
			s.observer.ObserveRun(OutcomeSuccess, time.Since(started), &result.Scores)
		}
	}
	return result, err
}

func (s *Service) run(ctx context.Context, req Request, started time.Time) (*Result, error) {
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return nil, errors.ErrMissingNotes()
	}
	if s.asker == nil {
		if s.opts.NotConfigured != nil {
			return nil, s.opts.NotConfigured
		}
		return nil, errors.ErrLLMNotConfigured("model", "Configure LLM_PROVIDER and its API key.")
	}

	short := s.newShort()
	provisional := NewRunIdentity(started, s.opts.Location, req.RunName, req.MeetingType, short)
	ctx, cancel := runcontext.RunBegin(ctx, provisional.RunID, req.Source, 0)
	defer cancel()

	log := s.logger.With(zap.String("run_id", provisional.RunID))
	log.Info("🚀 Pulse run started",
		zap.String("source", req.Source),
		zap.Int("notes_length", len(notes)),
	)

	extraction, err := s.ask(ctx, StageExtract, ExtractionPrompt(notes, req.MeetingType, req.Team))
	if err != nil {
		log.Error("❌ Extraction call failed", zap.Error(err))
		return nil, err
	}

	raw, err := ParseExtraction(extraction)
	if err != nil {
		log.Error("❌ Extraction is not valid JSON", zap.Error(err))
		return nil, s.keepRawExtraction(ctx, log, provisional.Folder, extraction, err)
	}

	eval := signals.Evaluate(raw, entities.ParseRoster(req.Team))
	meetingType := req.MeetingType
	if meetingType == "" {
		meetingType = eval.Normalized.MeetingTypeOr(entities.DefaultMeetingType)
	}
	tone := req.Tone
	if tone == "" {
		tone = s.opts.DefaultTone
	}

	log.Info("📊 Signals scored",
		zap.String("meeting_type", meetingType),
		zap.Int("total_tasks", eval.Metrics.TotalTasks),
		zap.Int("overall", eval.Scores.Overall),
		zap.String("grade", string(eval.Scores.Grade)),
		zap.String("execution_risk", string(eval.Scores.ExecutionRisk)),
	)

	prompt, err := ReportPrompt(ReportPayload{
		MeetingType: meetingType,
		Tone:        tone,
		Normalized:  eval.Normalized,
		Metrics:     eval.Metrics,
		Scores:      eval.Scores,
	})
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	report, err := s.ask(ctx, StageReport, prompt)
	if err != nil {
		log.Error("❌ Report call failed", zap.Error(err))
		return nil, err
	}

	id := NewRunIdentity(started, s.opts.Location, req.RunName, meetingType, short)
	artifacts, err := s.buildArtifacts(id, meetingType, req.RunName, notes, report, eval)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	saved, err := s.artifacts.SaveRun(ctx, artifacts)
	if err != nil {
		log.Error("❌ Failed to save run artifacts", zap.String("folder", id.Folder), zap.Error(err))
		return nil, errors.ErrStorageFailed("save run artifacts", err)
	}

	s.record(ctx, log, id, meetingType, tone, req.RunName, saved, eval)

	meta := runcontext.GetRunMetadata(ctx)
	log.Info("✅ Pulse run completed",
		zap.String("source", meta.Source),
		zap.String("outdir", saved.Outdir),
		zap.Duration("elapsed", time.Since(meta.StartTime)),
	)

	return &Result{
		Report:      report,
		Saved:       saved,
		RunID:       id.RunID,
		MeetingType: meetingType,
		Normalized:  eval.Normalized,
		Metrics:     eval.Metrics,
		Scores:      eval.Scores,
	}, nil
}

// Score normalizes and scores an extraction without calling the model
func (s *Service) Score(extraction, teamCSV string) (*signals.Evaluation, error) {
	raw, err := ParseExtraction(extraction)
	if err != nil {
		return nil, err
	}
	eval := signals.Evaluate(raw, entities.ParseRoster(teamCSV))
	return &eval, nil
}

// History returns up to limit recent run summaries, newest first
func (s *Service) History(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if s.history == nil {
		return []entities.HistoryEntry{}, nil
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, errors.ErrCacheFailed("read history", err)
	}
	return entries, nil
}

// Provider names the configured model provider
func (s *Service) Provider() string {
	if s.asker == nil {
		return ""
	}
	return s.asker.Provider()
}

func (s *Service) ask(ctx context.Context, stage, prompt string) (string, error) {
	started := time.Now()
	out, err := s.asker.Ask(ctx, prompt)

	if s.observer != nil {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		}
		s.observer.ObserveModelCall(s.asker.Provider(), stage, outcome, time.Since(started))
	}

	if err != nil {
		return "", modelError(s.asker.Provider(), stage, err)
	}
	return out, nil
}

func modelError(provider, stage string, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}
	if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(err, context.Canceled) {
		return errors.ErrAIServiceUnavailable(provider, err)
	}
	if stage == StageExtract {
		return errors.ErrExtractionFailed(err)
	}
	return errors.ErrReportGenerationFailed(err)
}

// keepRawExtraction stores the unparseable answer for inspection when enabled
func (s *Service) keepRawExtraction(ctx context.Context, log *zap.Logger, folder, extraction string, parseErr error) error {
	var appErr errors.AppError
	if !stdErrors.As(parseErr, &appErr) {
		appErr = errors.ErrExtractionParseFailed(extraction, parseErr)
	}
	if !s.opts.SaveRawOnFailure {
		return appErr
	}

	rawPath, err := s.artifacts.SaveRaw(ctx, folder, rawExtractionFile, extraction)
	if err != nil {
		log.Warn("⚠️ Failed to save raw extraction", zap.Error(err))
		return appErr
	}
	log.Info("💾 Saved raw extraction", zap.String("path", rawPath))
	return appErr.WithDetail("raw_path", rawPath)
}

func (s *Service) buildArtifacts(id RunIdentity, meetingType, runName, notes, report string, eval signals.Evaluation) (entities.RunArtifacts, error) {
	signalsJSON, err := prettyJSON(eval.Normalized)
	if err != nil {
		return entities.RunArtifacts{}, err
	}

	var name *string
	if runName != "" {
		name = &runName
	}
	runJSON, err := prettyJSON(runRecord{
		RunID:       id.RunID,
		MeetingType: meetingType,
		RunName:     name,
		Metrics:     eval.Metrics,
		Scores:      eval.Scores,
	})
	if err != nil {
		return entities.RunArtifacts{}, err
	}

	return entities.RunArtifacts{
		RunID:         id.RunID,
		Folder:        id.Folder,
		Base:          id.Base,
		Date:          id.Date,
		Signals:       signalsJSON,
		Run:           runJSON,
		Report:        report,
		NotesMarkdown: NotesMarkdown(id, meetingType, runName, notes),
	}, nil
}

// record appends the history entry and the run record. Failures are logged
// only; the artifacts are already saved.
func (s *Service) record(ctx context.Context, log *zap.Logger, id RunIdentity, meetingType, tone, runName string, saved entities.SavedPaths, eval signals.Evaluation) {
	if s.history != nil {
		entry := entities.HistoryEntry{
			Timestamp:          id.Timestamp,
			MeetingType:        meetingType,
			Score:              eval.Scores.Overall,
			Grade:              eval.Scores.Grade,
			ExecutionRiskLevel: eval.Scores.ExecutionRisk,
			Metrics:            eval.Metrics,
		}
		if err := s.history.Append(ctx, entry); err != nil {
			log.Warn("⚠️ Failed to append history", zap.Error(err))
		}
	}

	if s.runs != nil {
		var name *string
		if runName != "" {
			name = &runName
		}
		run := entities.NewPulseRun(id.RunID, meetingType, tone, name, eval.Normalized, eval.Metrics, eval.Scores)
		run.ArtifactDir = saved.Outdir
		if err := s.runs.Save(ctx, run); err != nil {
			log.Warn("⚠️ Failed to save run record", zap.Error(err))
		}
	}
}
