package console

// commands.go - the built-in command set.
//
// The wire protocol splits on single spaces with no quoting, so an
// argument can never contain a space; "add" therefore takes exactly
// one token, typically a URL or track identifier.

import (
	"fmt"
	"strings"

	"companiond/internal/errors"
)

func registerBuiltins(c *Console) {
	c.Register("add", cmdAdd)
	c.Register("play", cmdNext)
	c.Register("next", cmdNext)
	c.Register("prev", cmdPrev)
	c.Register("loop", cmdLoop)
	c.Register("repeat", cmdRepeat)
	c.Register("sequential", cmdSequential)
	c.Register("list", cmdList)
	c.Register("status", cmdStatus)
	c.Register("stop", cmdStop)
}

func cmdAdd(c *Console, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("add takes exactly one item, got %d", len(args))
	}
	c.queue.Add(args[0])
	c.logger.Info("queued %s (%d in playlist)", args[0], c.queue.Len())
	return nil
}

func cmdNext(c *Console, args []string) error {
	item, err := c.queue.Next()
	if err != nil {
		return err
	}
	c.logger.Info("now playing %s", item)
	return nil
}

func cmdPrev(c *Console, args []string) error {
	item, err := c.queue.Prev()
	if err != nil {
		return err
	}
	c.logger.Info("now playing %s", item)
	return nil
}

func cmdLoop(c *Console, args []string) error {
	c.queue.LoopMode()
	c.logger.Info("playlist mode: loop")
	return nil
}

func cmdRepeat(c *Console, args []string) error {
	c.queue.RepeatMode()
	c.logger.Info("playlist mode: repeat")
	return nil
}

func cmdSequential(c *Console, args []string) error {
	c.queue.SequentialMode()
	c.logger.Info("playlist mode: sequential")
	return nil
}

func cmdList(c *Console, args []string) error {
	items := c.queue.Items()
	if len(items) == 0 {
		c.logger.Info("playlist is empty")
		return nil
	}
	c.logger.Info("playlist: %s", strings.Join(items, ", "))
	return nil
}

func cmdStatus(c *Console, args []string) error {
	current, err := c.queue.Current()
	if errors.Is(err, errors.ErrExhausted) {
		current = "(nothing)"
	}
	c.logger.Info("playing %s, mode %s, %d queued",
		current, c.queue.Mode(), c.queue.Len())
	return nil
}

func cmdStop(c *Console, args []string) error {
	c.logger.Info("console going offline")
	c.SetOnline(false)
	return nil
}
