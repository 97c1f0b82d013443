// Package service wires the report pipeline together: open the snapshot, run
// the report engine, write the document, then archive and record the run.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tinmanjk/msos/internal/formatter"
	"github.com/tinmanjk/msos/internal/report"
	"github.com/tinmanjk/msos/internal/repository"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/internal/storage"
	"github.com/tinmanjk/msos/pkg/config"
	apperrors "github.com/tinmanjk/msos/pkg/errors"
	"github.com/tinmanjk/msos/pkg/model"
	"github.com/tinmanjk/msos/pkg/utils"
	"github.com/tinmanjk/msos/pkg/writer"
)

// Service runs the report pipeline end to end.
type Service struct {
	config     *config.Config
	logger     utils.Logger
	clock      utils.Clock
	opener     snapshot.Opener
	generator  *report.Generator
	formatters *formatter.Registry
	storage    storage.Storage
	repo       repository.RunRepository
}

// Option configures the Service.
type Option func(*Service)

// WithClock sets the time source.
func WithClock(clock utils.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithGenerator replaces the default report generator.
func WithGenerator(g *report.Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithStorage injects an archive backend, bypassing Initialize.
func WithStorage(store storage.Storage) Option {
	return func(s *Service) {
		s.storage = store
	}
}

// WithRepository injects a run-history repository, bypassing Initialize.
func WithRepository(repo repository.RunRepository) Option {
	return func(s *Service) {
		s.repo = repo
	}
}

// New creates a Service. The opener is the snapshot provider registered by
// the caller; the service never parses process images itself.
func New(cfg *config.Config, opener snapshot.Opener, logger utils.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, apperrors.New(apperrors.CodeConfigError, "config is required")
	}
	if opener == nil {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "snapshot opener is required")
	}
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	s := &Service{
		config:     cfg,
		logger:     logger,
		clock:      utils.NewRealClock(),
		opener:     opener,
		formatters: formatter.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.generator == nil {
		components := report.ComponentsFor(report.RegistryConfig{
			TopConsumers: cfg.Report.TopConsumers,
		})
		s.generator = report.NewGenerator(
			report.WithComponents(components),
			report.WithClock(s.clock),
			report.WithLogger(logger),
		)
	}
	return s, nil
}

// Initialize connects the optional backends the configuration enables: the
// archive store and the run-history database. Safe to skip when neither is
// enabled.
func (s *Service) Initialize(ctx context.Context) error {
	if s.config.Report.Archive && s.storage == nil {
		s.logger.Info("Initializing archive storage (%s)...", s.config.Storage.Type)
		store, err := storage.New(&s.config.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		s.storage = store
	}

	if s.config.Report.History && s.repo == nil {
		s.logger.Info("Connecting to run-history database (%s)...", s.config.Database.Type)
		repo, err := repository.NewRunRepository(&s.config.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize run history: %w", err)
		}
		s.repo = repo
	}

	return nil
}

// RunResult is what one pipeline execution produced.
type RunResult struct {
	Document   *model.ReportDocument
	OutputFile string
	ArchiveURL string
	RunID      int64
}

// Run executes the pipeline for one process image. The report document is
// always written, InternalError outcomes included; only failures to open the
// image or to write the output file abort the run. Archive and history
// failures are logged and do not fail an already written report.
func (s *Service) Run(ctx context.Context, dumpPath string, outputPath string) (*RunResult, error) {
	if dumpPath == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "dump path is required")
	}
	if outputPath == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "output path is required")
	}

	timer := utils.NewTimer("report", utils.WithTimerClock(s.clock))

	phase := timer.Start("open")
	snap, err := s.opener.Open(dumpPath)
	phase.Stop()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotError, "failed to open process image", err)
	}
	s.logger.Info("Opened %s image of process %d (%s)",
		snap.TargetType(), snap.ProcessID(), snap.Architecture())

	phase = timer.Start("generate")
	doc := s.generator.Run(ctx, snap)
	phase.Stop()

	phase = timer.Start("write")
	outputFile, err := s.writeDocument(doc, outputPath)
	phase.Stop()
	if err != nil {
		return nil, err
	}
	s.logger.Info("Report written to %s", outputFile)

	s.formatters.FormatDocument(doc, s.logger)

	result := &RunResult{
		Document:   doc,
		OutputFile: outputFile,
	}

	if s.config.Report.Archive && s.storage != nil {
		phase = timer.Start("archive")
		key := archiveKey(doc, outputFile)
		if err := s.storage.UploadFile(ctx, key, outputFile); err != nil {
			s.logger.Warn("Failed to archive report: %v", err)
		} else {
			result.ArchiveURL = s.storage.GetURL(key)
			s.logger.Info("Report archived at %s", result.ArchiveURL)
		}
		phase.Stop()
	}

	if s.config.Report.History && s.repo != nil {
		phase = timer.Start("history")
		run := &model.ReportRun{
			DumpPath:         dumpPath,
			OutputFile:       outputFile,
			Result:           doc.Result,
			FailedComponents: doc.FailedComponents,
			SectionCount:     len(doc.Sections),
			StartedAt:        doc.StartedAt,
			EndedAt:          doc.EndedAt,
		}
		if err := s.repo.SaveRun(ctx, run); err != nil {
			s.logger.Warn("Failed to record run history: %v", err)
		} else {
			result.RunID = run.ID
		}
		phase.Stop()
	}

	s.logger.Debug("%s", timer.Summary())
	return result, nil
}

// ListHistory returns the most recent recorded runs, newest first.
func (s *Service) ListHistory(ctx context.Context, limit int) ([]*model.ReportRun, error) {
	if s.repo == nil {
		return nil, apperrors.New(apperrors.CodeDatabaseError, "run history is not enabled")
	}
	if limit < 1 {
		limit = 20
	}
	return s.repo.ListRuns(ctx, limit)
}

// writeDocument serializes the document to outputPath, honoring the pretty
// and gzip settings. Returns the actual file path written.
func (s *Service) writeDocument(doc *model.ReportDocument, outputPath string) (string, error) {
	if s.config.Report.Gzip {
		if !strings.HasSuffix(outputPath, ".gz") {
			outputPath += ".gz"
		}
		w := writer.NewGzipWriter[*model.ReportDocument]()
		if err := w.WriteToFile(doc, outputPath); err != nil {
			return "", apperrors.Wrap(apperrors.CodeWriteError, "failed to write report", err)
		}
		return outputPath, nil
	}

	var w *writer.JSONWriter[*model.ReportDocument]
	if s.config.Report.Pretty {
		w = writer.NewPrettyJSONWriter[*model.ReportDocument]()
	} else {
		w = writer.NewJSONWriter[*model.ReportDocument]()
	}
	if err := w.WriteToFile(doc, outputPath); err != nil {
		return "", apperrors.Wrap(apperrors.CodeWriteError, "failed to write report", err)
	}
	return outputPath, nil
}

// archiveKey builds the object key for an archived report, namespaced by the
// run date so archives stay browsable.
func archiveKey(doc *model.ReportDocument, outputFile string) string {
	return fmt.Sprintf("reports/%s/%s",
		doc.StartedAt.Format("2006-01-02"), filepath.Base(outputFile))
}
