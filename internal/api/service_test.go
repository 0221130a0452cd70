package api

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"vidconv/internal/config"
	"vidconv/internal/convert"
	"vidconv/internal/presets"
	"vidconv/internal/process"
	"vidconv/internal/services"
	"vidconv/internal/testsupport"
)

type recordingExecutor struct {
	mu    sync.Mutex
	calls []process.Command
	block chan struct{}
}

func (r *recordingExecutor) Run(ctx context.Context, cmd process.Command) (process.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return process.Result{ExitCode: -1, Canceled: true}, nil
		}
	}
	return process.Result{}, nil
}

func (r *recordingExecutor) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func defaultConfiguration(t *testing.T) presets.Configuration {
	t.Helper()
	defaults := config.Default()
	cfg, err := presets.Resolve(defaults.Selection())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return cfg
}

func newService(t *testing.T, cfg *config.Config, opts ...Option) *Service {
	t.Helper()
	svc, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestConvertPreconditions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("dvdauthor"))
	svc := newService(t, cfg)

	if svc.FFmpegAvailable() {
		t.Fatal("ffmpeg should not resolve")
	}
	_, err := svc.Convert(context.Background(), ConversionRequest{Queue: []string{"/x/a.mp4"}}, nil)
	if !errors.Is(err, ErrFFmpegMissing) || err.Error() != "Instale o FFmpeg e adicione ao PATH para converter." {
		t.Fatalf("expected ErrFFmpegMissing, got %v", err)
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("missing ffmpeg should classify as configuration: %v", err)
	}

	cfg = testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	svc = newService(t, cfg)
	if _, err := svc.StartConversion(context.Background(), ConversionRequest{}, nil, nil); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
	if ErrEmptyQueue.Error() != "Adicione videos na fila antes de converter." {
		t.Fatalf("unexpected message %q", ErrEmptyQueue.Error())
	}
}

func TestConvertRunsQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	exec := &recordingExecutor{}
	svc := newService(t, cfg, WithTranscodeExecutor(exec))
	dir := t.TempDir()
	sources := testsupport.WriteVideos(t, dir, "a.mp4", "b.mkv")

	var events []convert.ProgressEvent
	summary, err := svc.Convert(context.Background(), ConversionRequest{Queue: sources, Config: defaultConfiguration(t)}, func(ev convert.ProgressEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if summary.Succeeded() != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if exec.count() != 2 {
		t.Fatalf("expected two ffmpeg invocations, got %d", exec.count())
	}
	if len(events) == 0 || events[len(events)-1].Message != "Convertendo... 2/2" {
		t.Fatalf("unexpected progress events %+v", events)
	}
	if want := filepath.Join(dir, "a_convertido.mp4"); summary.Results[0].Destination != want {
		t.Fatalf("destination = %s, want %s", summary.Results[0].Destination, want)
	}
}

func TestStartConversionDeliversSummary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	svc := newService(t, cfg, WithTranscodeExecutor(&recordingExecutor{}))
	sources := testsupport.WriteVideos(t, t.TempDir(), "clip.mov")

	done := make(chan string, 1)
	cancel, err := svc.StartConversion(context.Background(), ConversionRequest{Queue: sources, Config: defaultConfiguration(t)}, nil, func(msg string) {
		done <- msg
	})
	if err != nil {
		t.Fatalf("StartConversion: %v", err)
	}
	defer cancel()

	select {
	case msg := <-done:
		if !strings.HasPrefix(msg, "Finalizado. Sucesso: 1 | Falhas: 0") {
			t.Fatalf("unexpected summary %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("conversion did not finish")
	}
}

func TestStartConversionCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	exec := &recordingExecutor{block: make(chan struct{})}
	svc := newService(t, cfg, WithTranscodeExecutor(exec))
	sources := testsupport.WriteVideos(t, t.TempDir(), "a.mp4", "b.mp4")
	req := ConversionRequest{Queue: sources, Config: defaultConfiguration(t)}

	done := make(chan string, 1)
	cancel, err := svc.StartConversion(context.Background(), req, nil, func(msg string) { done <- msg })
	if err != nil {
		t.Fatalf("StartConversion: %v", err)
	}
	if _, err := svc.StartConversion(context.Background(), req, nil, nil); !errors.Is(err, convert.ErrRunActive) {
		t.Fatalf("expected ErrRunActive for a second start, got %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for exec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case msg := <-done:
		if !strings.HasPrefix(msg, "Cancelado.") || !strings.Contains(msg, "CANCELADO: a.mp4") {
			t.Fatalf("unexpected summary %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("canceled conversion did not finish")
	}
	if exec.count() != 1 {
		t.Fatalf("second item must not start after cancel, got %d calls", exec.count())
	}
}

func TestStartAuthoringReportsOutcome(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	cfg.Tools.Shim = ""
	svc := newService(t, cfg)
	if svc.DiscAuthorAvailable(context.Background()) {
		t.Fatal("dvdauthor should not be reachable")
	}

	type outcome struct {
		ok  bool
		msg string
	}
	done := make(chan outcome, 1)
	if err := svc.StartAuthoring(context.Background(), AuthoringRequest{OutputDir: t.TempDir()}, func(ok bool, msg string) {
		done <- outcome{ok, msg}
	}); err != nil {
		t.Fatalf("StartAuthoring: %v", err)
	}
	select {
	case got := <-done:
		if got.ok || got.msg != "Instale dvdauthor no PATH do Windows ou no WSL." {
			t.Fatalf("unexpected outcome %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("authoring did not finish")
	}
}

func TestAuthorUsesInjectedExecutor(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	exec := &recordingExecutor{}
	svc := newService(t, cfg, WithAuthoringExecutor(exec))
	outDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(outDir, "x.mpg"), 4)

	res, err := svc.Author(context.Background(), AuthoringRequest{OutputDir: outDir})
	if err != nil {
		t.Fatalf("Author: %v", err)
	}
	if exec.count() != 2 {
		t.Fatalf("expected both dvdauthor phases, got %d", exec.count())
	}
	// The executor never creates VIDEO_TS.
	if res.OK || !strings.HasPrefix(res.Message, "Processo concluido sem VIDEO_TS em ") {
		t.Fatalf("unexpected result %+v", res)
	}
}
