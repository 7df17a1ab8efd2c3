// Package console dispatches companion commands to named handlers.
//
// The console owns an online flag that outer loops poll: the bridge
// keeps accepting companions for as long as the console is online, and
// the stop command is what takes it offline.
package console

import (
	"sync/atomic"

	"companiond/internal/errors"
	"companiond/internal/metrics"
	"companiond/playlist"
	"companiond/util"
)

// InputFunc produces the next command as a token sequence: the command
// name followed by its arguments.
type InputFunc func() ([]string, error)

// HandlerFunc executes one command.  Returned errors are logged, never
// fatal to the console loop.
type HandlerFunc func(c *Console, args []string) error

// Console pulls commands from an input source and dispatches them.
type Console struct {
	handlers map[string]HandlerFunc
	online   atomic.Bool
	queue    *playlist.Playlist
	logger   *util.Logger
	metrics  *metrics.Collector
}

// New creates an online Console with the built-in command set wired to
// the given playlist.  collector may be nil.
func New(queue *playlist.Playlist, logger *util.Logger, collector *metrics.Collector) *Console {
	c := &Console{
		handlers: make(map[string]HandlerFunc),
		queue:    queue,
		logger:   logger,
		metrics:  collector,
	}
	c.online.Store(true)
	registerBuiltins(c)
	return c
}

// Online reports whether the console should keep consuming input.
func (c *Console) Online() bool { return c.online.Load() }

// SetOnline flips the online flag.  Taking the console offline ends
// Start and, through it, the bridge's main loop.
func (c *Console) SetOnline(v bool) { c.online.Store(v) }

// Register binds a handler to a command name, replacing any existing
// binding.  Must be called before Start.
func (c *Console) Register(name string, h HandlerFunc) {
	c.handlers[name] = h
}

// Start pulls commands from next and dispatches them until next fails
// or the console goes offline.  The input error is returned as-is so
// the caller can distinguish a broken companion link from a normal
// shutdown (nil).
func (c *Console) Start(next func() ([]string, error)) error {
	for c.Online() {
		tokens, err := next()
		if err != nil {
			return err
		}
		c.Dispatch(tokens)
	}
	return nil
}

// Dispatch executes a single tokenized command.  Unknown commands and
// handler failures are logged and counted; playlist exhaustion is a
// normal boundary and only noted at verbose level.
func (c *Console) Dispatch(tokens []string) {
	if len(tokens) == 0 || tokens[0] == "" {
		c.logger.Debug("ignoring empty command")
		return
	}

	name := tokens[0]
	h, ok := c.handlers[name]
	if !ok {
		c.logger.Warn("unknown command %q", name)
		c.metrics.RecordError("unknown command " + name)
		return
	}

	if err := h(c, tokens[1:]); err != nil {
		if errors.Is(err, errors.ErrExhausted) {
			c.logger.Verbose("%s: end of playlist", name)
			return
		}
		c.logger.Error("command %s: %v", name, err)
		c.metrics.RecordError(name + ": " + err.Error())
	}
}
