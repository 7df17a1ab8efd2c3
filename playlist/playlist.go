// Package playlist implements the playback queue used by the console:
// an append-only ordered sequence with a cursor and a traversal mode.
//
// Navigation never mutates the sequence, only the cursor.  Running
// past either end is reported with errors.ErrExhausted, which callers
// treat as a normal boundary rather than a failure.
package playlist

import (
	"sync"

	"companiond/internal/errors"
)

// Mode governs how Next computes the following cursor position.
type Mode int

const (
	Sequential Mode = iota // stop after the last item
	Loop                   // wrap to the first item after the last
	Repeat                 // stay on the current item
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case Loop:
		return "loop"
	case Repeat:
		return "repeat"
	default:
		return "sequential"
	}
}

// ParseMode converts a string to a Mode.  Unknown strings fall back
// to Sequential.
func ParseMode(s string) Mode {
	switch s {
	case "loop":
		return Loop
	case "repeat":
		return Repeat
	default:
		return Sequential
	}
}

// notStarted is the cursor value before the first Next call.
const notStarted = -1

// Playlist is an ordered sequence of items with a playback cursor.
// All methods are safe for concurrent use.
type Playlist struct {
	mu     sync.Mutex
	items  []string
	cursor int // index of the current item, or notStarted
	mode   Mode
}

// New returns an empty playlist in sequential mode.
func New() *Playlist {
	return &Playlist{cursor: notStarted}
}

// Add appends an item to the end.  The cursor is unaffected.
func (p *Playlist) Add(item string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, item)
}

// Next advances the cursor according to the current mode and returns
// the item it lands on.  In sequential mode stepping past the last
// item returns ErrExhausted; in loop mode the cursor wraps to the
// first item; in repeat mode the cursor stays put (the very first call
// moves it to the first item).  An empty playlist is always exhausted.
func (p *Playlist) Next() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.items) == 0 {
		return "", errors.ErrExhausted
	}

	switch p.mode {
	case Loop:
		p.cursor = (p.cursor + 1) % len(p.items)
	case Repeat:
		if p.cursor == notStarted {
			p.cursor = 0
		}
	default: // Sequential
		if p.cursor+1 >= len(p.items) {
			return "", errors.ErrExhausted
		}
		p.cursor++
	}
	return p.items[p.cursor], nil
}

// Prev steps the cursor back one position and returns the item there.
// It returns ErrExhausted when no prior item exists, which includes a
// cursor on the first item or one that has not started.
func (p *Playlist) Prev() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor <= 0 {
		return "", errors.ErrExhausted
	}
	p.cursor--
	return p.items[p.cursor], nil
}

// Current returns the item under the cursor without moving it.  It
// returns ErrExhausted before the first Next call.
func (p *Playlist) Current() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor == notStarted {
		return "", errors.ErrExhausted
	}
	return p.items[p.cursor], nil
}

// LoopMode switches to loop traversal.  Cursor and contents are
// untouched.
func (p *Playlist) LoopMode() { p.setMode(Loop) }

// RepeatMode switches to repeat traversal.  Cursor and contents are
// untouched.
func (p *Playlist) RepeatMode() { p.setMode(Repeat) }

// SequentialMode switches back to the default traversal.
func (p *Playlist) SequentialMode() { p.setMode(Sequential) }

// SetMode switches to an arbitrary traversal mode.
func (p *Playlist) SetMode(m Mode) { p.setMode(m) }

func (p *Playlist) setMode(m Mode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// Mode returns the current traversal mode.
func (p *Playlist) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Items returns a copy of the sequence in order.
func (p *Playlist) Items() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}

// Clear empties the playlist and resets the cursor.
func (p *Playlist) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.cursor = notStarted
}
