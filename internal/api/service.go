package api

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"vidconv/internal/authoring"
	"vidconv/internal/config"
	"vidconv/internal/convert"
	"vidconv/internal/deps"
	"vidconv/internal/logging"
	"vidconv/internal/presets"
	"vidconv/internal/process"
	"vidconv/internal/shim"
	"vidconv/internal/transcode"
)

// ConversionRequest describes one conversion run.
type ConversionRequest struct {
	Queue     []string
	OutputDir string
	Config    presets.Configuration
}

// AuthoringRequest describes one disc authoring run.
type AuthoringRequest struct {
	Queue     []string
	OutputDir string
	Profile   presets.DiscProfile
}

// Option configures a Service.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	transcodeExec process.Executor
	authorExec    process.Executor
}

// WithLogger attaches a logger shared by the engine and pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTranscodeExecutor replaces the process executor used for ffmpeg.
func WithTranscodeExecutor(exec process.Executor) Option {
	return func(o *options) { o.transcodeExec = exec }
}

// WithAuthoringExecutor replaces the process executor used for dvdauthor.
func WithAuthoringExecutor(exec process.Executor) Option {
	return func(o *options) { o.authorExec = exec }
}

// Service runs conversions and authoring for one config.
type Service struct {
	ffmpeg     string
	logger     *slog.Logger
	engine     *convert.Engine
	pipeline   *authoring.Pipeline
	converting atomic.Bool
	authoring  atomic.Bool
}

// New builds a Service from cfg.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	transcoder, err := transcode.New(cfg.Tools.FFmpeg, cfg.KillGrace(),
		transcode.WithExecutor(o.transcodeExec),
		transcode.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}
	pipeline := authoring.New(cfg.Tools.DVDAuthor, shim.New(cfg.Tools.Shim, cfg.Tools.ShimWorkdir),
		authoring.WithExecutor(o.authorExec),
		authoring.WithLogger(o.logger),
	)
	return &Service{
		ffmpeg:   cfg.Tools.FFmpeg,
		logger:   o.logger,
		engine:   convert.NewEngine(transcoder, o.logger),
		pipeline: pipeline,
	}, nil
}

// FFmpegAvailable reports whether the configured ffmpeg resolves.
func (s *Service) FFmpegAvailable() bool {
	return deps.ProbeTool(s.ffmpeg)
}

// DiscAuthorAvailable reports whether dvdauthor is reachable natively or through the shim.
func (s *Service) DiscAuthorAvailable(ctx context.Context) bool {
	return s.pipeline.Available(ctx)
}

func (s *Service) checkConversion(req ConversionRequest) error {
	if !s.FFmpegAvailable() {
		return ErrFFmpegMissing
	}
	if len(req.Queue) == 0 {
		return ErrEmptyQueue
	}
	return nil
}

// Convert runs a conversion on the calling goroutine.
func (s *Service) Convert(ctx context.Context, req ConversionRequest, progress convert.ProgressFunc) (convert.Summary, error) {
	if err := s.checkConversion(req); err != nil {
		return convert.Summary{}, err
	}
	return s.engine.Run(ctx, req.Queue, req.OutputDir, req.Config, progress)
}

// StartConversion launches a conversion and returns a function that cancels
// it. done receives the run summary text, or the error text when the run
// could not execute. Neither callback is invoked after done.
func (s *Service) StartConversion(ctx context.Context, req ConversionRequest, progress convert.ProgressFunc, done func(string)) (context.CancelFunc, error) {
	if err := s.checkConversion(req); err != nil {
		return nil, err
	}
	if !s.converting.CompareAndSwap(false, true) {
		return nil, convert.ErrRunActive
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		summary, err := s.engine.Run(runCtx, req.Queue, req.OutputDir, req.Config, progress)
		s.converting.Store(false)
		if done == nil {
			return
		}
		if err != nil {
			done(err.Error())
			return
		}
		done(summary.String())
	}()
	return cancel, nil
}

// Author runs disc authoring on the calling goroutine.
func (s *Service) Author(ctx context.Context, req AuthoringRequest) (authoring.Result, error) {
	return s.pipeline.Author(ctx, authoring.Request{Queue: req.Queue, OutputDir: req.OutputDir, Profile: req.Profile})
}

// StartAuthoring launches disc authoring; done receives the outcome.
func (s *Service) StartAuthoring(ctx context.Context, req AuthoringRequest, done func(bool, string)) error {
	if !s.authoring.CompareAndSwap(false, true) {
		return authoring.ErrRunActive
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		res, err := s.Author(ctx, req)
		s.authoring.Store(false)
		if done == nil {
			return
		}
		if err != nil {
			done(false, err.Error())
			return
		}
		done(res.OK, res.Message)
	}()
	return nil
}
