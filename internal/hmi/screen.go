package hmi

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// Screen is an in-memory character display.
// It is safe for concurrent use: the phase machine writes, a renderer reads.
type Screen struct {
	cells [DisplayRows][DisplayColumns]byte
	mu    sync.RWMutex
	// onChange is called after every update.
	onChange func()
}

// NewScreen returns a blank screen. onChange may be nil.
func NewScreen(onChange func()) *Screen {
	s := &Screen{onChange: onChange}
	s.blank()

	return s
}

// Clear blanks the whole screen.
func (s *Screen) Clear() {
	s.mu.Lock()
	s.blank()
	s.mu.Unlock()

	s.changed()
}

// Show writes text at row and col, dropping what does not fit.
func (s *Screen) Show(row, col int, text string) {
	if row < 0 || row >= DisplayRows || col < 0 {
		return
	}

	s.mu.Lock()

	for i := 0; i < len(text) && col+i < DisplayColumns; i++ {
		s.cells[row][col+i] = text[i]
	}

	s.mu.Unlock()

	s.changed()
}

// Lines returns the text of every row.
func (s *Screen) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, DisplayRows)
	for row := range s.cells {
		lines[row] = string(s.cells[row][:])
	}

	return lines
}

// Line returns one row without trailing blanks.
func (s *Screen) Line(row int) string {
	return strings.TrimRight(s.Lines()[row], " ")
}

func (s *Screen) blank() {
	for row := range s.cells {
		for col := range s.cells[row] {
			s.cells[row][col] = ' '
		}
	}
}

func (s *Screen) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// KeyQueue is a buffered Keypad fed by Press.
type KeyQueue struct {
	keys chan Key
}

// NewKeyQueue returns a queue holding up to size pending keys.
func NewKeyQueue(size int) *KeyQueue {
	return &KeyQueue{keys: make(chan Key, size)}
}

// Press queues k. It reports false when the queue is full.
func (q *KeyQueue) Press(k Key) bool {
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

// Key waits for the next queued key.
func (q *KeyQueue) Key(ctx context.Context) (Key, error) {
	select {
	case k := <-q.keys:
		return k, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Lamp is an in-memory Indicator.
type Lamp struct {
	lit     atomic.Bool
	toggles atomic.Int64
}

// Toggle flips the lamp.
func (l *Lamp) Toggle() {
	for {
		old := l.lit.Load()
		if l.lit.CompareAndSwap(old, !old) {
			break
		}
	}

	l.toggles.Add(1)
}

// Lit reports whether the lamp is on.
func (l *Lamp) Lit() bool {
	return l.lit.Load()
}

// Toggles returns how many times the lamp flipped.
func (l *Lamp) Toggles() int64 {
	return l.toggles.Load()
}
