package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"vidconv/internal/convert"
)

// progressPrinter renders engine progress with elapsed time and an ETA based
// on the average time per finished item. On a terminal the line is redrawn in
// place; otherwise each event is printed on its own line.
type progressPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	started  time.Time
	now      func() time.Time
	inPlace  bool
	colorize bool
	lastLen  int
}

func newProgressPrinter(out io.Writer, started time.Time) *progressPrinter {
	tty := shouldColorize(out)
	return &progressPrinter{
		out:      out,
		started:  started,
		now:      time.Now,
		inPlace:  tty,
		colorize: tty,
	}
}

func (p *progressPrinter) handle(ev convert.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := progressLine(ev, p.now().Sub(p.started))
	if !p.inPlace {
		fmt.Fprintln(p.out, line)
		return
	}
	pad := p.lastLen - len(line)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.out, "\r%s%*s", paint(line, ansiBlue, p.colorize), pad, "")
	p.lastLen = len(line)
}

func (p *progressPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inPlace && p.lastLen > 0 {
		fmt.Fprintln(p.out)
		p.lastLen = 0
	}
}

func progressLine(ev convert.ProgressEvent, elapsed time.Duration) string {
	line := fmt.Sprintf("%s | Tempo decorrido: %s", ev.Message, formatClock(elapsed))
	if eta, ok := estimateRemaining(elapsed, ev.Done, ev.Total); ok {
		line += " | Tempo restante: " + formatClock(eta)
	}
	return line
}

// estimateRemaining extrapolates elapsed/done over the items still pending.
// No estimate is possible before the first item finishes.
func estimateRemaining(elapsed time.Duration, done, total int) (time.Duration, bool) {
	if done <= 0 || total <= 0 {
		return 0, false
	}
	remaining := total - done
	if remaining < 0 {
		remaining = 0
	}
	perItem := elapsed / time.Duration(done)
	return perItem * time.Duration(remaining), true
}

// formatClock renders d as MM:SS, or HH:MM:SS from one hour up. Negative
// durations clamp to zero.
func formatClock(d time.Duration) string {
	sec := int64(d / time.Second)
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
