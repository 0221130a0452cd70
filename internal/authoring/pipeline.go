package authoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vidconv/internal/deps"
	"vidconv/internal/logging"
	"vidconv/internal/presets"
	"vidconv/internal/process"
	"vidconv/internal/services"
	"vidconv/internal/shim"
)

// ErrRunActive is returned when Author is called while another authoring run is in progress.
var ErrRunActive = errors.New("authoring run already active")

const (
	msgToolMissing   = "Instale dvdauthor no PATH do Windows ou no WSL."
	msgNoCandidates  = "Nenhum .mpg encontrado. Converta em modo DVD antes de criar VIDEO_TS."
	msgShimMissing   = "dvdauthor nao encontrado no Windows e WSL nao disponivel."
	msgTitlesFailed  = "Falha ao criar titulos DVD."
	msgTableFailed   = "Falha ao criar tabela DVD."
	msgCanceled      = "Autoria de DVD cancelada."
	navigationFolder = "VIDEO_TS"
)

// Request describes one authoring run.
type Request struct {
	// Queue holds the source paths whose disc-target outputs should be authored.
	Queue     []string
	OutputDir string
	Profile   presets.DiscProfile
}

// Result reports how an authoring run ended.
type Result struct {
	RunID     string
	OK        bool
	Message   string
	OutputDir string
	VideoTS   string
	Sources   []string
	ViaShim   bool
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec process.Executor) Option {
	return func(p *Pipeline) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logging.NewComponentLogger(logger, "authoring")
	}
}

// Pipeline runs dvdauthor.
type Pipeline struct {
	mu     sync.Mutex
	binary string
	shim   shim.Shim
	exec   process.Executor
	logger *slog.Logger
}

// New constructs a Pipeline for binary, falling back to sh when binary is not
// installed natively.
func New(binary string, sh shim.Shim, opts ...Option) *Pipeline {
	p := &Pipeline{
		binary: strings.TrimSpace(binary),
		shim:   sh,
		exec:   process.NewRunner(process.DefaultGrace),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Available reports whether dvdauthor can be reached natively or through the shim.
func (p *Pipeline) Available(ctx context.Context) bool {
	return deps.ProbeDiscAuthor(ctx, p.binary, p.shim)
}

// Author builds VIDEO_TS from the disc-target outputs of req.Queue.
func (p *Pipeline) Author(ctx context.Context, req Request) (Result, error) {
	if !p.mu.TryLock() {
		return Result{}, ErrRunActive
	}
	defer p.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	result := Result{RunID: uuid.NewString()}
	ctx = services.WithStage(services.WithRunID(ctx, result.RunID), "authoring")
	logger := logging.WithContext(ctx, p.logger)

	if !p.Available(ctx) {
		return fail(logger, result, msgToolMissing), nil
	}

	sources, err := CollectCandidates(req.Queue, req.OutputDir)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "authoring", "collect", "scan for mpg files", err)
	}
	if len(sources) == 0 {
		return fail(logger, result, msgNoCandidates), nil
	}
	result.Sources = sources

	base := strings.TrimSpace(req.OutputDir)
	if base == "" {
		base = filepath.Dir(sources[0])
	}
	outDir, err := NextOutputDir(base)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "authoring", "allocate", "output directory", err)
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return Result{}, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "authoring", "allocate", "create output directory", err)
	}
	result.OutputDir = outDir

	useShim := !deps.ProbeTool(p.binary)
	if useShim && !p.shim.Available() {
		return fail(logger, result, msgShimMissing), nil
	}
	result.ViaShim = useShim

	format := req.Profile.AuthoringFormat()
	logger.Info("authoring started",
		logging.Int(logging.FieldItemCount, len(sources)),
		logging.String("video_format", format),
		logging.String("output_dir", outDir),
		logging.Bool("via_shim", useShim),
	)

	titles := append(p.baseArgs(outDir, format, useShim), "-t")
	for _, src := range sources {
		titles = append(titles, p.pathArg(src, useShim))
	}
	if msg, ok := p.runPhase(ctx, logger, "titles", titles, useShim, msgTitlesFailed); !ok {
		return fail(logger, result, msg), nil
	}

	table := append(p.baseArgs(outDir, format, useShim), "-T")
	if msg, ok := p.runPhase(ctx, logger, "table", table, useShim, msgTableFailed); !ok {
		return fail(logger, result, msg), nil
	}

	videoTS := filepath.Join(outDir, navigationFolder)
	if info, err := os.Stat(videoTS); err != nil || !info.IsDir() {
		return fail(logger, result, fmt.Sprintf("Processo concluido sem VIDEO_TS em %s.", outDir)), nil
	}

	result.OK = true
	result.VideoTS = videoTS
	result.Message = fmt.Sprintf("VIDEO_TS criado em: %s", videoTS)
	logger.Info("authoring finished", logging.String("video_ts", videoTS))
	return result, nil
}

func (p *Pipeline) baseArgs(outDir, format string, useShim bool) []string {
	binary := p.binary
	if useShim {
		binary = shim.ToolName(p.binary)
	}
	return []string{binary, "-o", p.pathArg(outDir, useShim), "-f", format}
}

func (p *Pipeline) pathArg(path string, useShim bool) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if useShim {
		return shim.TranslatePath(path)
	}
	return path
}

// runPhase executes argv (binary first) and returns the failure message when it does not exit cleanly.
func (p *Pipeline) runPhase(ctx context.Context, logger *slog.Logger, phase string, argv []string, useShim bool, fallback string) (string, bool) {
	cmd := process.Command{Binary: argv[0], Args: argv[1:]}
	if useShim {
		wrapped := p.shim.Wrap(argv)
		cmd = process.Command{Binary: wrapped[0], Args: wrapped[1:], Dir: p.shim.Workdir}
	}
	logger.Debug("dvdauthor phase starting", logging.String("phase", phase), logging.String("command", cmd.String()))

	res, err := p.exec.Run(ctx, cmd)
	if err != nil {
		logging.ErrorWithContext(logger, "dvdauthor could not start", "authoring_start_failed",
			logging.String("phase", phase),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check tools.dvdauthor, tools.shim, and tools.shim_workdir"),
		)
		return err.Error(), false
	}
	if res.Canceled {
		logger.Info("dvdauthor canceled", logging.String("phase", phase))
		return msgCanceled, false
	}
	if res.ExitCode != 0 {
		logging.WarnWithContext(logger, "dvdauthor phase failed", "authoring_phase_failed",
			logging.String("phase", phase),
			logging.Int("exit_code", res.ExitCode),
			logging.String(logging.FieldImpact, "no VIDEO_TS produced"),
		)
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			return msg, false
		}
		return fallback, false
	}
	return "", true
}

func fail(logger *slog.Logger, result Result, message string) Result {
	result.OK = false
	result.Message = message
	logger.Info("authoring stopped", logging.String("reason", message))
	return result
}
