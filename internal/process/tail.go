package process

import (
	"sync"
	"unicode/utf8"
)

const defaultTailBytes = 64 << 10

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu        sync.Mutex
	buf       []byte
	max       int
	truncated bool
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(p)
	if len(p) >= t.max {
		t.buf = append(t.buf[:0], p[runeStart(p, len(p)-t.max):]...)
		t.truncated = true
		return n, nil
	}
	if overflow := len(t.buf) + len(p) - t.max; overflow > 0 {
		t.buf = append(t.buf[:0], t.buf[runeStart(t.buf, overflow):]...)
		t.truncated = true
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

// runeStart moves cut forward past continuation bytes so the kept tail never
// opens with half a multibyte character.
func runeStart(b []byte, cut int) int {
	for i := 0; i < utf8.UTFMax-1 && cut < len(b) && !utf8.RuneStart(b[cut]); i++ {
		cut++
	}
	return cut
}

// String returns the retained tail, marking dropped output with a leading ellipsis.
func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.truncated {
		return "..." + string(t.buf)
	}
	return string(t.buf)
}
